package application

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("loan application not found")
	ErrInvalidStatus = errors.New("loan application is not in the required status")
)

type Status string

// Pipeline order. A completion action is only legal when the application
// currently sits at that stage's starting status.
const (
	StatusEligibilityCheck    Status = "eligibility_check"
	StatusCreditAnalysis      Status = "credit_analysis"
	StatusHeadOfCreditReview  Status = "head_of_credit_review"
	StatusInternalApprovalCEO Status = "internal_approval_ceo"
	StatusCommitteeDecision   Status = "committee_decision"
	StatusSMEOfferApproval    Status = "sme_offer_approval"
	StatusApproved            Status = "approved"
)

type Application struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string `gorm:"size:32;uniqueIndex:ux_loan_applications_app_id_active" json:"application_id"`
	BusinessID    string `gorm:"size:32;index:idx_loan_applications_business" json:"business_id"`
	ApplicantID   string `gorm:"size:32;index:idx_loan_applications_applicant" json:"applicant_id"`
	LoanProductID string `gorm:"size:32" json:"loan_product_id"`

	Amount     float64 `gorm:"type:decimal(18,2)" json:"amount"`
	Currency   string  `gorm:"size:3" json:"currency"`
	Tenure     int     `gorm:"column:tenure" json:"tenure"`
	TenureType string  `gorm:"size:32" json:"tenure_type"`
	UseOfFunds string  `gorm:"type:text" json:"use_of_funds"`

	Status          Status    `gorm:"type:varchar(32);default:'eligibility_check'" json:"status"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`

	// One completion slot per review stage: comment, completed-at, reviewer.
	EligibilityComment          string     `gorm:"type:text" json:"eligibility_comment"`
	EligibilityCompletedAt      *time.Time `json:"eligibility_completed_at"`
	EligibilityCompletedBy      string     `gorm:"size:32" json:"-"`
	CreditAnalysisComment       string     `gorm:"type:text" json:"credit_analysis_comment"`
	CreditAnalysisCompletedAt   *time.Time `json:"credit_analysis_completed_at"`
	CreditAnalysisCompletedBy   string     `gorm:"size:32" json:"-"`
	HeadOfCreditComment         string     `gorm:"type:text" json:"head_of_credit_comment"`
	HeadOfCreditCompletedAt     *time.Time `json:"head_of_credit_completed_at"`
	HeadOfCreditCompletedBy     string     `gorm:"size:32" json:"-"`
	CEOApprovalComment          string     `gorm:"type:text" json:"ceo_approval_comment"`
	CEOApprovalCompletedAt      *time.Time `json:"ceo_approval_completed_at"`
	CEOApprovalCompletedBy      string     `gorm:"size:32" json:"-"`
	SMEOfferApprovalComment     string     `gorm:"type:text" json:"sme_offer_approval_comment"`
	SMEOfferApprovalCompletedAt *time.Time `json:"sme_offer_approval_completed_at"`
	SMEOfferApprovalCompletedBy string     `gorm:"size:32" json:"-"`

	// Committee decision artifact.
	TermSheetURL        string     `gorm:"type:text" json:"term_sheet_url"`
	TermSheetUploadedAt *time.Time `json:"term_sheet_uploaded_at"`
	TermSheetUploadedBy string     `gorm:"size:32" json:"-"`

	LastUpdatedBy string         `gorm:"size:32" json:"-"`
	LastUpdatedAt time.Time      `json:"last_updated_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy     string         `gorm:"size:32" json:"-"`
}

func (Application) TableName() string { return "loan_applications" }
