package notify

import "context"

// Result reports whether the channel accepted the message.
type Result struct {
	Sent      bool   `json:"sent"`
	MessageID string `json:"message_id,omitempty"`
}

// Display fields shared by every stage message. The workflow engine is
// responsible for formatting these; the dispatcher only addresses and sends.
type DisplayFields struct {
	ApplicantName string
	CompanyName   string
	Amount        string // formatted, e.g. "USD 1,000"
	Tenure        string // formatted, e.g. "12 interest free months"
	LoanProduct   string
	UseOfFunds    string
	LoginURL      string
}

type StageReviewMessage struct {
	Recipient     string
	RecipientName string
	Stage         string
	DisplayFields
}

type TermSheetMessage struct {
	Recipient    string
	TermSheetURL string
	DisplayFields
}

type OfferApprovedMessage struct {
	Recipient string
	DisplayFields
}

// Dispatcher is the outbound fire-and-forget channel. Failures are reported
// to the caller for logging only; they must never fail or roll back a
// committed transition.
type Dispatcher interface {
	SendStageReview(ctx context.Context, m StageReviewMessage) (Result, error)
	SendTermSheetReady(ctx context.Context, m TermSheetMessage) (Result, error)
	SendOfferApproved(ctx context.Context, m OfferApprovedMessage) (Result, error)
}
