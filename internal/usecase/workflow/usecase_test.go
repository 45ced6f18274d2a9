package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/refdata"
	"loanflow-backend/internal/domain/reviewer"
	"loanflow-backend/internal/domain/uow"
	"loanflow-backend/internal/testutil/appmock"
	"loanflow-backend/internal/testutil/auditmock"
	"loanflow-backend/internal/testutil/docmock"
	"loanflow-backend/internal/testutil/notifymock"
	"loanflow-backend/internal/testutil/refdatamock"
	"loanflow-backend/internal/testutil/reviewermock"
	"loanflow-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

// ---- fixture ----

const (
	testAppID = "a1b2c3d4a1b2c3d4a1b2c3d4a1b2c3d4"
	testToken = "tok-reviewer-1"
)

func newApp(status application.Status) *application.Application {
	return &application.Application{
		ID:            777,
		ApplicationID: testAppID,
		BusinessID:    "biz-1",
		ApplicantID:   "applicant-1",
		LoanProductID: "prod-1",
		Amount:        250000,
		Currency:      "usd",
		Tenure:        12,
		TenureType:    "interest_free_months",
		UseOfFunds:    "working capital",
		Status:        status,
	}
}

func newReviewer() *reviewer.Reviewer {
	return &reviewer.Reviewer{
		ID:            9,
		UserID:        "reviewer-user-1",
		IdentityToken: testToken,
		FirstName:     "Ada",
		LastName:      "Mwangi",
		Email:         "ada@lender.example",
	}
}

type fixture struct {
	uc       *Usecase
	app      *application.Application
	docs     *[]document.Document
	rec      *auditmock.Recorder
	notifier *notifymock.Dispatcher
}

// newFixture wires a usecase against an in-memory application. The uow mock
// passes the app pointer straight through, so committed mutations are
// observable and an fn error leaves the caller-side snapshot untouched by
// re-seeding in the test when rollback matters.
func newFixture(t *testing.T, app *application.Application) *fixture {
	t.Helper()

	created := []document.Document{}
	f := &fixture{app: app, docs: &created, rec: &auditmock.Recorder{}, notifier: &notifymock.Dispatcher{}}

	reviewers := &reviewermock.Repo{
		GetByIdentityTokenFn: func(ctx context.Context, token string) (*reviewer.Reviewer, error) {
			if token == testToken {
				return newReviewer(), nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		GetByUserIDFn: func(ctx context.Context, userID string) (*reviewer.Reviewer, error) {
			if userID == "applicant-1" {
				return &reviewer.Reviewer{UserID: userID, FirstName: "Binta", LastName: "Okafor", Email: "binta@smeshop.example"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	ref := &refdatamock.Repo{
		GetBusinessByBusinessIDFn: func(ctx context.Context, businessID string) (*refdata.Business, error) {
			return &refdata.Business{BusinessID: businessID, Name: "SME Shop Ltd"}, nil
		},
		GetLoanProductByProductIDFn: func(ctx context.Context, productID string) (*refdata.LoanProduct, error) {
			return &refdata.LoanProduct{ProductID: productID, Name: "Working Capital Loan"}, nil
		},
	}
	docsRepo := &docmock.Repo{
		CreateFn: func(ctx context.Context, d *document.Document) error {
			d.ID = uint64(len(created) + 1)
			created = append(created, *d)
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
			if applicationID != f.app.ApplicationID {
				return gorm.ErrRecordNotFound
			}
			return fn(uow.Repos{Applications: &appmock.Repo{}, Documents: docsRepo, Reviewers: reviewers, RefData: ref}, f.app)
		},
	}

	f.uc = NewUsecase(tx, reviewers, ref, f.rec, f.notifier, Config{
		LoginBaseURL:      "https://app.lender.example/login",
		InternalRecipient: "credit-ops@lender.example",
	})
	f.uc.spawn = func(fn func()) { fn() } // synchronous dispatch for assertions
	return f
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	var we *Error
	if !errors.As(err, &we) {
		t.Fatalf("want *Error with code %s, got %v", code, err)
	}
	if we.Code != code {
		t.Fatalf("code = %s, want %s (err: %v)", we.Code, code, we)
	}
}

// ---- tests ----

func TestCompleteStage_EligibilityHappyPath(t *testing.T) {
	f := newFixture(t, newApp(application.StatusEligibilityCheck))

	res, err := f.uc.CompleteEligibilityAssessment(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "ok",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Status != string(application.StatusCreditAnalysis) {
		t.Fatalf("status = %s, want credit_analysis", res.Status)
	}
	if f.app.Status != application.StatusCreditAnalysis {
		t.Fatalf("persisted status = %s", f.app.Status)
	}
	if f.app.EligibilityComment != "ok" {
		t.Fatalf("eligibility comment = %q, want ok", f.app.EligibilityComment)
	}
	if f.app.EligibilityCompletedAt == nil || f.app.EligibilityCompletedBy != "reviewer-user-1" {
		t.Fatalf("completion slot not written: %+v", f.app)
	}
	if f.app.LastUpdatedBy != "reviewer-user-1" {
		t.Fatalf("last_updated_by = %q", f.app.LastUpdatedBy)
	}
	if res.CompletedBy.Email != "ada@lender.example" {
		t.Fatalf("reviewer summary wrong: %+v", res.CompletedBy)
	}

	events := f.rec.Logged()
	if len(events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(events))
	}
	e := events[0]
	if e.PreviousStatus != "eligibility_check" || e.NewStatus != "credit_analysis" {
		t.Fatalf("audit status pair: %s -> %s", e.PreviousStatus, e.NewStatus)
	}
	if e.Details["comment"] != "ok" {
		t.Fatalf("audit comment missing: %v", e.Details)
	}
}

func TestCompleteStage_InvalidStatusReportsActual(t *testing.T) {
	f := newFixture(t, newApp(application.StatusCreditAnalysis))

	_, err := f.uc.CompleteEligibilityAssessment(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "ok",
	})
	wantCode(t, err, CodeInvalidStatus)
	if !strings.Contains(err.Error(), "credit_analysis") {
		t.Fatalf("message should cite current status: %v", err)
	}
	// Nothing committed, logged or sent.
	if f.app.Status != application.StatusCreditAnalysis || f.app.EligibilityComment != "" {
		t.Fatalf("application mutated on failed precondition: %+v", f.app)
	}
	if len(f.rec.Logged()) != 0 {
		t.Fatal("audit event logged for failed transition")
	}
}

func TestCompleteStage_NotFound(t *testing.T) {
	f := newFixture(t, newApp(application.StatusEligibilityCheck))

	_, err := f.uc.CompleteEligibilityAssessment(context.Background(), StageInput{
		ApplicationID: "ffffffffffffffffffffffffffffffff",
		IdentityToken: testToken,
		Comment:       "ok",
	})
	wantCode(t, err, CodeNotFound)
}

func TestCompleteStage_UnknownCallerIsUnauthorized(t *testing.T) {
	f := newFixture(t, newApp(application.StatusEligibilityCheck))

	_, err := f.uc.CompleteEligibilityAssessment(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: "tok-nobody",
		Comment:       "ok",
	})
	wantCode(t, err, CodeUnauthorized)
	if f.app.Status != application.StatusEligibilityCheck {
		t.Fatalf("status advanced for unauthorized caller: %s", f.app.Status)
	}
}

func TestCompleteStage_BodyValidation(t *testing.T) {
	tests := []struct {
		name   string
		stage  StageKey
		status application.Status
		in     StageInput
	}{
		{
			name:   "missing comment",
			stage:  StageEligibilityAssessment,
			status: application.StatusEligibilityCheck,
			in:     StageInput{ApplicationID: testAppID, IdentityToken: testToken, Comment: "   "},
		},
		{
			name:   "missing term sheet url",
			stage:  StageCommitteeDecision,
			status: application.StatusCommitteeDecision,
			in:     StageInput{ApplicationID: testAppID, IdentityToken: testToken},
		},
		{
			name:   "documents on committee decision",
			stage:  StageCommitteeDecision,
			status: application.StatusCommitteeDecision,
			in: StageInput{
				ApplicationID: testAppID, IdentityToken: testToken,
				TermSheetURL:        "https://files.example/ts.pdf",
				SupportingDocuments: []SupportingDocument{{DocURL: "https://x/doc.pdf"}},
			},
		},
		{
			name:   "next approver on sme offer approval",
			stage:  StageSMEOfferApproval,
			status: application.StatusSMEOfferApproval,
			in: StageInput{
				ApplicationID: testAppID, IdentityToken: testToken, Comment: "ok",
				NextApprover: &NextApprover{Email: "x@example.com"},
			},
		},
		{
			name:   "blank doc url",
			stage:  StageCreditAnalysis,
			status: application.StatusCreditAnalysis,
			in: StageInput{
				ApplicationID: testAppID, IdentityToken: testToken, Comment: "ok",
				SupportingDocuments: []SupportingDocument{{DocURL: " "}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, newApp(tt.status))
			_, err := f.uc.CompleteStage(context.Background(), tt.stage, tt.in)
			wantCode(t, err, CodeValidation)
			if f.app.Status != tt.status {
				t.Fatalf("status advanced on validation failure: %s", f.app.Status)
			}
		})
	}
}

// Scenario D: two supporting documents plus a next-approver hint.
func TestCompleteStage_HeadOfCreditWithDocumentsAndNextApprover(t *testing.T) {
	f := newFixture(t, newApp(application.StatusHeadOfCreditReview))

	res, err := f.uc.CompleteHeadOfCreditReview(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "financials verified",
		SupportingDocuments: []SupportingDocument{
			{DocURL: "https://files.example/balance.pdf", DocName: "Balance sheet"},
			{DocURL: "https://files.example/cashflow.pdf", Notes: "FY2025"},
		},
		NextApprover: &NextApprover{Email: "ceo@lender.example", Name: "The CEO"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Documents) != 2 {
		t.Fatalf("document summaries = %d, want 2", len(res.Documents))
	}
	for _, d := range res.Documents {
		if len(d.DocumentID) != 32 {
			t.Fatalf("generated id missing: %+v", d)
		}
	}
	if (*f.docs)[0].DocType != document.TypeHeadOfCreditReview {
		t.Fatalf("doc type = %s", (*f.docs)[0].DocType)
	}
	if (*f.docs)[0].UploadedBy != "reviewer-user-1" {
		t.Fatalf("uploaded_by = %s", (*f.docs)[0].UploadedBy)
	}

	reviews, _, _ := f.notifier.Sends()
	if reviews != 1 {
		t.Fatalf("stage review sends = %d, want 1", reviews)
	}
	m := f.notifier.StageReviews[0]
	if m.Recipient != "ceo@lender.example" {
		t.Fatalf("recipient = %s", m.Recipient)
	}
	if m.ApplicantName != "Binta Okafor" || m.CompanyName != "SME Shop Ltd" {
		t.Fatalf("display fields: %+v", m.DisplayFields)
	}
	if m.Amount != "USD 250,000" {
		t.Fatalf("amount = %q", m.Amount)
	}
	if m.Tenure != "12 interest free months" {
		t.Fatalf("tenure = %q", m.Tenure)
	}

	if e := f.rec.Logged()[0]; e.Details["document_count"] != 2 {
		t.Fatalf("audit document_count = %v", e.Details["document_count"])
	}
}

func TestCompleteStage_NoNextApproverSendsNothing(t *testing.T) {
	f := newFixture(t, newApp(application.StatusHeadOfCreditReview))

	_, err := f.uc.CompleteHeadOfCreditReview(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "fine",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if f.app.Status != application.StatusInternalApprovalCEO {
		t.Fatalf("status = %s", f.app.Status)
	}
	reviews, terms, offers := f.notifier.Sends()
	if reviews+terms+offers != 0 {
		t.Fatalf("sends = %d/%d/%d, want none", reviews, terms, offers)
	}
}

// Scenario C: committee decision notifies the fixed internal recipient plus
// the applicant; dispatch failures must not alter the success response.
func TestCompleteStage_CommitteeDecision(t *testing.T) {
	f := newFixture(t, newApp(application.StatusCommitteeDecision))
	f.notifier.Err = errors.New("smtp down")

	res, err := f.uc.CompleteCommitteeDecision(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		TermSheetURL:  "https://x/doc.pdf",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Status != string(application.StatusSMEOfferApproval) {
		t.Fatalf("status = %s", res.Status)
	}
	if res.TermSheetURL != "https://x/doc.pdf" {
		t.Fatalf("term sheet not echoed: %+v", res)
	}
	if f.app.TermSheetURL != "https://x/doc.pdf" || f.app.TermSheetUploadedAt == nil {
		t.Fatalf("term sheet slot not persisted: %+v", f.app)
	}

	_, terms, _ := f.notifier.Sends()
	if terms != 2 {
		t.Fatalf("term sheet sends attempted = %d, want 2", terms)
	}
	recipients := []string{f.notifier.TermSheetReady[0].Recipient, f.notifier.TermSheetReady[1].Recipient}
	if recipients[0] != "credit-ops@lender.example" || recipients[1] != "binta@smeshop.example" {
		t.Fatalf("recipients = %v", recipients)
	}
}

func TestCompleteStage_AuditOutageDoesNotFailCommittedTransition(t *testing.T) {
	f := newFixture(t, newApp(application.StatusEligibilityCheck))
	f.rec.Err = errors.New("audit sink unavailable")

	res, err := f.uc.CompleteEligibilityAssessment(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "ok",
	})
	if err != nil {
		t.Fatalf("committed transition reported as failed: %v", err)
	}
	if res.Status != string(application.StatusCreditAnalysis) {
		t.Fatalf("status = %s", res.Status)
	}
}

func TestCompleteStage_StorageFailureWrapsStageCode(t *testing.T) {
	f := newFixture(t, newApp(application.StatusCreditAnalysis))
	boom := errors.New("disk full")
	tx := &uowmock.UoW{
		WithinApplicationTxFn: func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
			return boom
		},
	}
	f.uc.uow = tx

	_, err := f.uc.CompleteCreditAnalysis(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "ok",
	})
	wantCode(t, err, "CREDIT_ANALYSIS_FAILED")
	if !errors.Is(err, boom) {
		t.Fatalf("cause not wrapped: %v", err)
	}
	if len(f.rec.Logged()) != 0 {
		t.Fatal("audit event logged for rolled-back transition")
	}
}

// At-most-once: the loser of a concurrent race observes the advanced status.
func TestCompleteStage_SecondCallerLosesRace(t *testing.T) {
	f := newFixture(t, newApp(application.StatusEligibilityCheck))
	in := StageInput{ApplicationID: testAppID, IdentityToken: testToken, Comment: "ok"}

	if _, err := f.uc.CompleteEligibilityAssessment(context.Background(), in); err != nil {
		t.Fatalf("first caller: %v", err)
	}
	_, err := f.uc.CompleteEligibilityAssessment(context.Background(), in)
	wantCode(t, err, CodeInvalidStatus)

	if got := len(f.rec.Logged()); got != 1 {
		t.Fatalf("audit events = %d, want exactly 1", got)
	}
}

func TestCompleteStage_SMEOfferApprovalNotifiesApplicant(t *testing.T) {
	f := newFixture(t, newApp(application.StatusSMEOfferApproval))

	res, err := f.uc.CompleteSMEOfferApproval(context.Background(), StageInput{
		ApplicationID: testAppID,
		IdentityToken: testToken,
		Comment:       "offer stands",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Status != string(application.StatusApproved) {
		t.Fatalf("status = %s", res.Status)
	}
	_, _, offers := f.notifier.Sends()
	if offers != 1 {
		t.Fatalf("offer sends = %d, want 1", offers)
	}
	if f.notifier.OffersApproved[0].Recipient != "binta@smeshop.example" {
		t.Fatalf("recipient = %s", f.notifier.OffersApproved[0].Recipient)
	}
}
