package workflow

import (
	"time"

	"loanflow-backend/internal/audit"
	"loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/reviewer"
)

type StageKey string

const (
	StageEligibilityAssessment StageKey = "eligibility_assessment"
	StageCreditAnalysis        StageKey = "credit_analysis"
	StageHeadOfCreditReview    StageKey = "head_of_credit_review"
	StageCEOInternalApproval   StageKey = "ceo_internal_approval"
	StageCommitteeDecision     StageKey = "committee_decision"
	StageSMEOfferApproval      StageKey = "sme_offer_approval"
)

type notifyKind int

const (
	notifyNextApprover notifyKind = iota // 0..1 stage-review mail to the hinted approver
	notifyTermSheet                      // fixed internal recipient + applicant
	notifyApplicant                      // applicant only
)

// Stage describes one pipeline step. The engine is driven entirely by this
// table; per-stage behavior lives in data, not in hand-written methods.
type Stage struct {
	Key  StageKey
	From application.Status
	To   application.Status

	DocType document.Type
	Event   audit.EventType

	NeedsComment        bool
	NeedsTermSheet      bool
	AcceptsDocuments    bool
	AcceptsNextApprover bool

	notify notifyKind

	// apply writes the stage's own completion slot on the application.
	// Status advancement and the generic audit fields are handled by the
	// engine.
	apply func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time)
}

var stages = map[StageKey]Stage{
	StageEligibilityAssessment: {
		Key:                 StageEligibilityAssessment,
		From:                application.StatusEligibilityCheck,
		To:                  application.StatusCreditAnalysis,
		DocType:             document.TypeEligibilityAssessment,
		Event:               audit.EventEligibilityAssessed,
		NeedsComment:        true,
		AcceptsDocuments:    true,
		AcceptsNextApprover: true,
		notify:              notifyNextApprover,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.EligibilityComment = in.Comment
			a.EligibilityCompletedAt = &now
			a.EligibilityCompletedBy = rev.UserID
		},
	},
	StageCreditAnalysis: {
		Key:                 StageCreditAnalysis,
		From:                application.StatusCreditAnalysis,
		To:                  application.StatusHeadOfCreditReview,
		DocType:             document.TypeCreditAnalysis,
		Event:               audit.EventCreditAnalysisCompleted,
		NeedsComment:        true,
		AcceptsDocuments:    true,
		AcceptsNextApprover: true,
		notify:              notifyNextApprover,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.CreditAnalysisComment = in.Comment
			a.CreditAnalysisCompletedAt = &now
			a.CreditAnalysisCompletedBy = rev.UserID
		},
	},
	StageHeadOfCreditReview: {
		Key:                 StageHeadOfCreditReview,
		From:                application.StatusHeadOfCreditReview,
		To:                  application.StatusInternalApprovalCEO,
		DocType:             document.TypeHeadOfCreditReview,
		Event:               audit.EventHeadOfCreditReviewed,
		NeedsComment:        true,
		AcceptsDocuments:    true,
		AcceptsNextApprover: true,
		notify:              notifyNextApprover,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.HeadOfCreditComment = in.Comment
			a.HeadOfCreditCompletedAt = &now
			a.HeadOfCreditCompletedBy = rev.UserID
		},
	},
	StageCEOInternalApproval: {
		Key:                 StageCEOInternalApproval,
		From:                application.StatusInternalApprovalCEO,
		To:                  application.StatusCommitteeDecision,
		DocType:             document.TypeCEOInternalApproval,
		Event:               audit.EventCEOApproved,
		NeedsComment:        true,
		AcceptsDocuments:    true,
		AcceptsNextApprover: true,
		notify:              notifyNextApprover,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.CEOApprovalComment = in.Comment
			a.CEOApprovalCompletedAt = &now
			a.CEOApprovalCompletedBy = rev.UserID
		},
	},
	StageCommitteeDecision: {
		Key:            StageCommitteeDecision,
		From:           application.StatusCommitteeDecision,
		To:             application.StatusSMEOfferApproval,
		DocType:        document.TypeTermSheet,
		Event:          audit.EventCommitteeDecided,
		NeedsTermSheet: true,
		notify:         notifyTermSheet,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.TermSheetURL = in.TermSheetURL
			a.TermSheetUploadedAt = &now
			a.TermSheetUploadedBy = rev.UserID
		},
	},
	StageSMEOfferApproval: {
		Key:              StageSMEOfferApproval,
		From:             application.StatusSMEOfferApproval,
		To:               application.StatusApproved,
		DocType:          document.TypeSMEOfferApproval,
		Event:            audit.EventSMEOfferApproved,
		NeedsComment:     true,
		AcceptsDocuments: true,
		notify:           notifyApplicant,
		apply: func(a *application.Application, in StageInput, rev *reviewer.Reviewer, now time.Time) {
			a.SMEOfferApprovalComment = in.Comment
			a.SMEOfferApprovalCompletedAt = &now
			a.SMEOfferApprovalCompletedBy = rev.UserID
		},
	},
}

// StageByKey exposes the descriptor table read-only (handlers iterate it to
// register routes).
func StageByKey(k StageKey) (Stage, bool) {
	s, ok := stages[k]
	return s, ok
}

// StageKeys returns every stage key in pipeline order.
func StageKeys() []StageKey {
	return []StageKey{
		StageEligibilityAssessment,
		StageCreditAnalysis,
		StageHeadOfCreditReview,
		StageCEOInternalApproval,
		StageCommitteeDecision,
		StageSMEOfferApproval,
	}
}
