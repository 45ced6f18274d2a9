package workflow

import "time"

type SupportingDocument struct {
	DocURL  string `json:"doc_url"`
	DocName string `json:"doc_name,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// NextApprover is a notification-addressing hint only; it grants nothing.
type NextApprover struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type StageInput struct {
	ApplicationID string
	IdentityToken string

	Comment             string
	TermSheetURL        string
	SupportingDocuments []SupportingDocument
	NextApprover        *NextApprover
}

type ReviewerSummary struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type DocumentSummary struct {
	DocumentID string `json:"document_id"`
	DocURL     string `json:"doc_url"`
	DocName    string `json:"doc_name,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type StageResult struct {
	ApplicationID string            `json:"application_id"`
	Status        string            `json:"status"`
	Comment       string            `json:"comment,omitempty"`
	TermSheetURL  string            `json:"term_sheet_url,omitempty"`
	CompletedAt   time.Time         `json:"completed_at"`
	CompletedBy   ReviewerSummary   `json:"completed_by"`
	Documents     []DocumentSummary `json:"documents,omitempty"`
}
