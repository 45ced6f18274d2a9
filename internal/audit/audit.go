package audit

import (
	"context"
	"time"
)

type EventType string

const (
	EventEligibilityAssessed     EventType = "loan_application.eligibility_assessed"
	EventCreditAnalysisCompleted EventType = "loan_application.credit_analysis_completed"
	EventHeadOfCreditReviewed    EventType = "loan_application.head_of_credit_reviewed"
	EventCEOApproved             EventType = "loan_application.ceo_approved"
	EventCommitteeDecided        EventType = "loan_application.committee_decided"
	EventSMEOfferApproved        EventType = "loan_application.sme_offer_approved"
)

var titles = map[EventType]string{
	EventEligibilityAssessed:     "Eligibility assessment completed",
	EventCreditAnalysisCompleted: "Credit analysis completed",
	EventHeadOfCreditReviewed:    "Head of credit review completed",
	EventCEOApproved:             "Internal CEO approval completed",
	EventCommitteeDecided:        "Committee decision recorded",
	EventSMEOfferApproved:        "SME offer approved",
}

// TitleFor keeps human-readable event titles in one place.
func TitleFor(t EventType) string {
	if s, ok := titles[t]; ok {
		return s
	}
	return string(t)
}

// Event is one immutable record of a stage transition.
type Event struct {
	ApplicationID  string         `json:"application_id"`
	ActorUserID    string         `json:"actor_user_id"`
	Type           EventType      `json:"event"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	PreviousStatus string         `json:"previous_status"`
	NewStatus      string         `json:"new_status"`
	Details        map[string]any `json:"details"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// Recorder is the append-only event sink. Called exactly once per successful
// transition, after commit.
type Recorder interface {
	LogEvent(ctx context.Context, e Event) error
}
