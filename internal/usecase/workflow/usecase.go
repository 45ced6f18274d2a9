package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"loanflow-backend/internal/audit"
	"loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/refdata"
	"loanflow-backend/internal/domain/reviewer"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/notify"
	"loanflow-backend/pkg/id"

	"gorm.io/gorm"
)

// Config carries the few knobs the engine needs. Injected at construction;
// business logic never reads process environment directly.
type Config struct {
	// LoginBaseURL is embedded in outbound notifications.
	LoginBaseURL string
	// InternalRecipient receives the term-sheet-ready copy.
	InternalRecipient string
}

type Usecase struct {
	uow       uow.UnitOfWork
	reviewers reviewer.Repository
	refdata   refdata.Repository
	audit     audit.Recorder
	notifier  notify.Dispatcher
	cfg       Config

	// spawn runs notification dispatch off the caller's goroutine; tests
	// swap in a synchronous version.
	spawn func(fn func())
}

func NewUsecase(tx uow.UnitOfWork, reviewers reviewer.Repository, ref refdata.Repository, rec audit.Recorder, d notify.Dispatcher, cfg Config) *Usecase {
	return &Usecase{
		uow:       tx,
		reviewers: reviewers,
		refdata:   ref,
		audit:     rec,
		notifier:  d,
		cfg:       cfg,
		spawn:     func(fn func()) { go fn() },
	}
}

// Per-stage entry points: the workflow orchestration facade.

func (u *Usecase) CompleteEligibilityAssessment(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageEligibilityAssessment, in)
}

func (u *Usecase) CompleteCreditAnalysis(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageCreditAnalysis, in)
}

func (u *Usecase) CompleteHeadOfCreditReview(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageHeadOfCreditReview, in)
}

func (u *Usecase) CompleteCEOInternalApproval(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageCEOInternalApproval, in)
}

func (u *Usecase) CompleteCommitteeDecision(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageCommitteeDecision, in)
}

func (u *Usecase) CompleteSMEOfferApproval(ctx context.Context, in StageInput) (*StageResult, error) {
	return u.CompleteStage(ctx, StageSMEOfferApproval, in)
}

// CompleteStage validates preconditions, performs the atomic transition, then
// records the audit event and hands notifications to the background.
func (u *Usecase) CompleteStage(ctx context.Context, key StageKey, in StageInput) (*StageResult, error) {
	st, ok := StageByKey(key)
	if !ok {
		return nil, internalErr(key, fmt.Errorf("unknown stage %q", key))
	}
	if u.uow == nil {
		return nil, internalErr(key, errors.New("unit of work not configured"))
	}
	if err := validateBody(st, in); err != nil {
		return nil, err
	}

	var (
		res     *StageResult
		prev    application.Status
		appCopy application.Application
		rev     reviewer.Reviewer
	)
	now := time.Now().UTC()

	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		// Single authoritative guard against skipped, repeated or
		// out-of-order transitions. The row is locked, so only one
		// concurrent caller observes the starting status.
		if a.Status != st.From {
			return invalidStatusErr(st.From, a.Status)
		}

		rv, err := r.Reviewers.GetByIdentityToken(ctx, in.IdentityToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, reviewer.ErrUnresolved) {
				return unauthorizedErr()
			}
			return err
		}

		docs := make([]DocumentSummary, 0, len(in.SupportingDocuments))
		for _, sd := range in.SupportingDocuments {
			d := &document.Document{
				DocumentID:    id.NewID32(),
				ApplicationID: a.ID,
				DocType:       st.DocType,
				DocURL:        sd.DocURL,
				DocName:       sd.DocName,
				Notes:         sd.Notes,
				UploadedBy:    rv.UserID,
			}
			if err := r.Documents.Create(ctx, d); err != nil {
				return err
			}
			docs = append(docs, DocumentSummary{DocumentID: d.DocumentID, DocURL: d.DocURL, DocName: d.DocName, Notes: d.Notes})
		}

		prev = a.Status
		st.apply(a, in, rv, now)
		a.Status = st.To
		a.StatusUpdatedAt = now
		a.LastUpdatedBy = rv.UserID
		a.LastUpdatedAt = now
		if err := r.Applications.Save(ctx, a); err != nil {
			return err
		}

		appCopy = *a
		rev = *rv
		res = &StageResult{
			ApplicationID: a.ApplicationID,
			Status:        string(a.Status),
			Comment:       in.Comment,
			TermSheetURL:  in.TermSheetURL,
			CompletedAt:   now,
			CompletedBy: ReviewerSummary{
				UserID:    rv.UserID,
				FirstName: rv.FirstName,
				LastName:  rv.LastName,
				Email:     rv.Email,
			},
			Documents: docs,
		}
		return nil
	})
	if err != nil {
		var we *Error
		if errors.As(err, &we) {
			return nil, we
		}
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, application.ErrNotFound) {
			return nil, notFoundErr(in.ApplicationID)
		}
		return nil, internalErr(key, err)
	}

	// Post-commit, best-effort: a transient audit outage must not report the
	// already-committed transition as failed.
	u.recordAudit(ctx, st, prev, appCopy, rev, in, len(res.Documents), now)

	app, rv := appCopy, rev
	u.spawn(func() { u.dispatchNotifications(context.Background(), st, app, rv, in) })

	return res, nil
}

func validateBody(st Stage, in StageInput) error {
	if strings.TrimSpace(in.ApplicationID) == "" {
		return validationErr("application_id is required")
	}
	if st.NeedsComment && strings.TrimSpace(in.Comment) == "" {
		return validationErr("comment is required")
	}
	if st.NeedsTermSheet && strings.TrimSpace(in.TermSheetURL) == "" {
		return validationErr("term_sheet_url is required")
	}
	if !st.AcceptsDocuments && len(in.SupportingDocuments) > 0 {
		return validationErr(fmt.Sprintf("stage %s does not accept supporting documents", st.Key))
	}
	if !st.AcceptsNextApprover && in.NextApprover != nil {
		return validationErr(fmt.Sprintf("stage %s does not accept a next approver", st.Key))
	}
	for _, d := range in.SupportingDocuments {
		if strings.TrimSpace(d.DocURL) == "" {
			return validationErr("doc_url is required for each supporting document")
		}
	}
	return nil
}

func (u *Usecase) recordAudit(ctx context.Context, st Stage, prev application.Status, a application.Application, rev reviewer.Reviewer, in StageInput, docCount int, now time.Time) {
	if u.audit == nil {
		return
	}
	details := map[string]any{"document_count": docCount}
	if in.Comment != "" {
		details["comment"] = in.Comment
	}
	if in.TermSheetURL != "" {
		details["term_sheet_url"] = in.TermSheetURL
	}
	e := audit.Event{
		ApplicationID:  a.ApplicationID,
		ActorUserID:    rev.UserID,
		Type:           st.Event,
		Title:          audit.TitleFor(st.Event),
		Description:    fmt.Sprintf("loan application %s moved from %s to %s", a.ApplicationID, prev, a.Status),
		PreviousStatus: string(prev),
		NewStatus:      string(a.Status),
		Details:        details,
		OccurredAt:     now,
	}
	if err := u.audit.LogEvent(ctx, e); err != nil {
		log.Printf("workflow: audit event %s for %s not recorded: %v", st.Event, a.ApplicationID, err)
	}
}

// dispatchNotifications runs detached from the request. Everything in here is
// best-effort; failures are logged and never reach the caller.
func (u *Usecase) dispatchNotifications(ctx context.Context, st Stage, a application.Application, rev reviewer.Reviewer, in StageInput) {
	if u.notifier == nil {
		return
	}
	fields, applicantEmail := u.displayFields(ctx, a)

	switch st.notify {
	case notifyNextApprover:
		if in.NextApprover == nil || strings.TrimSpace(in.NextApprover.Email) == "" {
			return
		}
		m := notify.StageReviewMessage{
			Recipient:     in.NextApprover.Email,
			RecipientName: in.NextApprover.Name,
			Stage:         string(st.Key),
			DisplayFields: fields,
		}
		if _, err := u.notifier.SendStageReview(ctx, m); err != nil {
			log.Printf("workflow: stage review notification for %s failed: %v", a.ApplicationID, err)
		}
	case notifyTermSheet:
		for _, rcpt := range []string{u.cfg.InternalRecipient, applicantEmail} {
			if strings.TrimSpace(rcpt) == "" {
				continue
			}
			m := notify.TermSheetMessage{
				Recipient:     rcpt,
				TermSheetURL:  a.TermSheetURL,
				DisplayFields: fields,
			}
			if _, err := u.notifier.SendTermSheetReady(ctx, m); err != nil {
				log.Printf("workflow: term sheet notification to %s for %s failed: %v", rcpt, a.ApplicationID, err)
			}
		}
	case notifyApplicant:
		if strings.TrimSpace(applicantEmail) == "" {
			return
		}
		m := notify.OfferApprovedMessage{Recipient: applicantEmail, DisplayFields: fields}
		if _, err := u.notifier.SendOfferApproved(ctx, m); err != nil {
			log.Printf("workflow: offer approved notification for %s failed: %v", a.ApplicationID, err)
		}
	}
}

// displayFields assembles the formatted values the dispatcher sends. Lookups
// are tolerant: a missing reference degrades the message, never the call.
func (u *Usecase) displayFields(ctx context.Context, a application.Application) (notify.DisplayFields, string) {
	f := notify.DisplayFields{
		ApplicantName: FormatName("", ""),
		Amount:        FormatCurrency(strconv.FormatFloat(a.Amount, 'f', -1, 64), a.Currency),
		Tenure:        FormatTenure(a.Tenure, a.TenureType),
		UseOfFunds:    a.UseOfFunds,
		LoginURL:      u.cfg.LoginBaseURL,
	}
	applicantEmail := ""
	if u.reviewers != nil && a.ApplicantID != "" {
		if applicant, err := u.reviewers.GetByUserID(ctx, a.ApplicantID); err == nil {
			f.ApplicantName = FormatName(applicant.FirstName, applicant.LastName)
			applicantEmail = applicant.Email
		} else {
			log.Printf("workflow: applicant %s lookup failed: %v", a.ApplicantID, err)
		}
	}
	if u.refdata != nil {
		if b, err := u.refdata.GetBusinessByBusinessID(ctx, a.BusinessID); err == nil {
			f.CompanyName = b.Name
		} else {
			log.Printf("workflow: business %s lookup failed: %v", a.BusinessID, err)
		}
		if p, err := u.refdata.GetLoanProductByProductID(ctx, a.LoanProductID); err == nil {
			f.LoanProduct = p.Name
		} else {
			log.Printf("workflow: loan product %s lookup failed: %v", a.LoanProductID, err)
		}
	}
	return f, applicantEmail
}
