package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/catalog"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/service"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/response"
)

// FeedbackHandler handles the respondent-facing flow: token verification,
// session start/resume, and step submission. The catalog document is loaded
// once per request and passed into the service as an explicit snapshot.
type FeedbackHandler struct {
	tokenSvc    service.TokenService
	feedbackSvc service.FeedbackService
	store       *catalog.Store
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(tokenSvc service.TokenService, feedbackSvc service.FeedbackService, store *catalog.Store) *FeedbackHandler {
	return &FeedbackHandler{tokenSvc: tokenSvc, feedbackSvc: feedbackSvc, store: store}
}

// VerifyToken checks an access token at the entry point.
// POST /api/v1/tokens/verify
func (h *FeedbackHandler) VerifyToken(c *gin.Context) {
	var req dto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	valid, err := h.tokenSvc.Verify(c.Request.Context(), req.Token)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, dto.VerifyTokenResponse{Valid: valid})
}

// StartSession creates or resumes the feedback session for a token.
// POST /api/v1/feedback/session
func (h *FeedbackHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	snap, err := h.store.Load()
	if err != nil {
		response.InternalError(c)
		return
	}

	result, err := h.feedbackSvc.StartSession(c.Request.Context(), req.Token, snap)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, result)
}

// SubmitStep submits the ratings for one combo step.
// POST /api/v1/feedback/submit
func (h *FeedbackHandler) SubmitStep(c *gin.Context) {
	var req dto.SubmitStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "all ten ratings must be integers between 1 and 10")
		return
	}

	snap, err := h.store.Load()
	if err != nil {
		response.InternalError(c)
		return
	}

	result, err := h.feedbackSvc.SubmitStep(c.Request.Context(), &req, snap)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *FeedbackHandler) handleFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenNotUsable):
		response.BadRequest(c, 12001, "token invalid or already used")
	case errors.Is(err, service.ErrCatalogEmpty):
		response.Error(c, 503, 14001, "feedback is not configured yet, try again later")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "session not found")
	case errors.Is(err, service.ErrSessionComplete):
		response.Conflict(c, 13002, "session already complete")
	case errors.Is(err, service.ErrSessionTokenMismatch):
		response.BadRequest(c, 13005, "token does not match session")
	case errors.Is(err, service.ErrIndexOutOfRange):
		response.BadRequest(c, 13003, "combo index out of range")
	case errors.Is(err, service.ErrStepAlreadySubmitted):
		response.Conflict(c, 13004, "this step was already submitted")
	default:
		response.InternalError(c)
	}
}
