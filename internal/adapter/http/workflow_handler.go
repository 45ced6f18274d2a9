package http

import (
	"context"
	"errors"
	"net/http"

	"loanflow-backend/internal/usecase/workflow"

	"github.com/labstack/echo/v4"
)

// HeaderIdentityToken carries the opaque caller identity resolved to a
// reviewer by the engine.
const HeaderIdentityToken = "X-Identity-Token"

type WorkflowHandler struct{ uc *workflow.Usecase }

func NewWorkflowHandler(uc *workflow.Usecase) *WorkflowHandler { return &WorkflowHandler{uc: uc} }

type supportingDocReq struct {
	DocURL  string `json:"doc_url" validate:"required,url"`
	DocName string `json:"doc_name" validate:"omitempty,max=255"`
	Notes   string `json:"notes"`
}

type nextApproverReq struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type stageReviewReq struct {
	Comment             string             `json:"comment" validate:"required"`
	SupportingDocuments []supportingDocReq `json:"supporting_documents" validate:"omitempty,dive"`
	NextApprover        *nextApproverReq   `json:"next_approver"`
}

type committeeDecisionReq struct {
	TermSheetURL string `json:"term_sheet_url" validate:"required,url"`
}

type stageCall func(ctx context.Context, in workflow.StageInput) (*workflow.StageResult, error)

func (h *WorkflowHandler) Register(e *echo.Echo) {
	e.POST("/applications/:application_id/stages/eligibility-assessment", h.CompleteEligibilityAssessment)
	e.POST("/applications/:application_id/stages/credit-analysis", h.CompleteCreditAnalysis)
	e.POST("/applications/:application_id/stages/head-of-credit-review", h.CompleteHeadOfCreditReview)
	e.POST("/applications/:application_id/stages/ceo-internal-approval", h.CompleteCEOInternalApproval)
	e.POST("/applications/:application_id/stages/committee-decision", h.CompleteCommitteeDecision)
	e.POST("/applications/:application_id/stages/sme-offer-approval", h.CompleteSMEOfferApproval)
}

func (h *WorkflowHandler) CompleteEligibilityAssessment(c echo.Context) error {
	return h.reviewStage(c, h.uc.CompleteEligibilityAssessment)
}

func (h *WorkflowHandler) CompleteCreditAnalysis(c echo.Context) error {
	return h.reviewStage(c, h.uc.CompleteCreditAnalysis)
}

func (h *WorkflowHandler) CompleteHeadOfCreditReview(c echo.Context) error {
	return h.reviewStage(c, h.uc.CompleteHeadOfCreditReview)
}

func (h *WorkflowHandler) CompleteCEOInternalApproval(c echo.Context) error {
	return h.reviewStage(c, h.uc.CompleteCEOInternalApproval)
}

func (h *WorkflowHandler) CompleteSMEOfferApproval(c echo.Context) error {
	return h.reviewStage(c, func(ctx context.Context, in workflow.StageInput) (*workflow.StageResult, error) {
		// final review stage takes no next-approver hint
		in.NextApprover = nil
		return h.uc.CompleteSMEOfferApproval(ctx, in)
	})
}

// reviewStage handles every comment-style stage; per-stage differences live in
// the engine's descriptor table, not here.
func (h *WorkflowHandler) reviewStage(c echo.Context, call stageCall) error {
	applicationID, token, errResp := stageRequestMeta(c)
	if errResp != nil {
		return errResp
	}

	var req stageReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    workflow.CodeValidation,
			Details: ToFieldErrors(err),
		})
	}

	in := workflow.StageInput{
		ApplicationID: applicationID,
		IdentityToken: token,
		Comment:       req.Comment,
	}
	for _, d := range req.SupportingDocuments {
		in.SupportingDocuments = append(in.SupportingDocuments, workflow.SupportingDocument{
			DocURL:  d.DocURL,
			DocName: d.DocName,
			Notes:   d.Notes,
		})
	}
	if req.NextApprover != nil {
		in.NextApprover = &workflow.NextApprover{Email: req.NextApprover.Email, Name: req.NextApprover.Name}
	}

	res, err := call(c.Request().Context(), in)
	if err != nil {
		return writeWorkflowError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *WorkflowHandler) CompleteCommitteeDecision(c echo.Context) error {
	applicationID, token, errResp := stageRequestMeta(c)
	if errResp != nil {
		return errResp
	}

	var req committeeDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Code:    workflow.CodeValidation,
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.CompleteCommitteeDecision(c.Request().Context(), workflow.StageInput{
		ApplicationID: applicationID,
		IdentityToken: token,
		TermSheetURL:  req.TermSheetURL,
	})
	if err != nil {
		return writeWorkflowError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func stageRequestMeta(c echo.Context) (applicationID, token string, errResp error) {
	applicationID = c.Param("application_id")
	if applicationID == "" {
		return "", "", c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	if !reHex32.MatchString(applicationID) {
		return "", "", c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "application_id must be 32-char lowercase hex",
			Code:  workflow.CodeValidation,
		})
	}
	token = c.Request().Header.Get(HeaderIdentityToken)
	if token == "" {
		return "", "", c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "missing " + HeaderIdentityToken + " header",
			Code:  workflow.CodeUnauthorized,
		})
	}
	return applicationID, token, nil
}

// writeWorkflowError maps classified engine errors to HTTP statuses.
func writeWorkflowError(c echo.Context, err error) error {
	var we *workflow.Error
	if !errors.As(err, &we) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	status := http.StatusInternalServerError
	switch we.Code {
	case workflow.CodeNotFound:
		status = http.StatusNotFound
	case workflow.CodeInvalidStatus:
		status = http.StatusConflict
	case workflow.CodeUnauthorized:
		status = http.StatusUnauthorized
	case workflow.CodeValidation:
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, ErrorResponse{Error: we.Message, Code: we.Code})
}
