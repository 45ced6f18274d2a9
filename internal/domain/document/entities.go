package document

import "time"

// Type tags a document with the stage that produced it.
type Type string

const (
	TypeEligibilityAssessment Type = "eligibility_assessment"
	TypeCreditAnalysis        Type = "credit_analysis"
	TypeHeadOfCreditReview    Type = "head_of_credit_review"
	TypeCEOInternalApproval   Type = "ceo_internal_approval"
	TypeTermSheet             Type = "term_sheet"
	TypeSMEOfferApproval      Type = "sme_offer_approval"
)

// Document references an externally stored file attached during a review
// stage. Rows are created atomically with the owning stage transition and
// never mutated afterwards.
type Document struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	DocumentID string `gorm:"column:document_id;type:char(32);not null;uniqueIndex:ux_loan_documents_doc_id"`
	// FK to loan_applications.id (numeric)
	ApplicationID uint64    `gorm:"column:application_id;not null;index"`
	DocType       Type      `gorm:"column:doc_type;type:varchar(32);not null"`
	DocURL        string    `gorm:"column:doc_url;type:text;not null"`
	DocName       string    `gorm:"column:doc_name;size:255"`
	Notes         string    `gorm:"column:notes;type:text"`
	UploadedBy    string    `gorm:"column:uploaded_by;type:char(32);not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Document) TableName() string { return "loan_documents" }
