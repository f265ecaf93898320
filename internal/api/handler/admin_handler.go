package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/YuvrajS01/Anon-Feedback-System/internal/dto"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/service"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/response"
)

// AdminHandler serves the operator dashboard: counters, aggregates, raw
// listings, token generation, and the full data reset.
type AdminHandler struct {
	tokenSvc service.TokenService
	statsSvc service.StatsService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(tokenSvc service.TokenService, statsSvc service.StatsService) *AdminHandler {
	return &AdminHandler{tokenSvc: tokenSvc, statsSvc: statsSvc}
}

// GetStats returns token and session counters.
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	result, err := h.statsSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetTeacherSummary returns per-(teacher, subject) aggregates.
// GET /api/v1/admin/summary
func (h *AdminHandler) GetTeacherSummary(c *gin.Context) {
	result, err := h.statsSvc.TeacherSummary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// GetQuestionAverages returns the global per-question means.
// GET /api/v1/admin/questions
func (h *AdminHandler) GetQuestionAverages(c *gin.Context) {
	result, err := h.statsSvc.QuestionAverages(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, result)
}

// ListRatings returns raw rating rows, optionally filtered.
// GET /api/v1/admin/ratings?teacher=...&subject=...
func (h *AdminHandler) ListRatings(c *gin.Context) {
	ratings, err := h.statsSvc.ListRatings(c.Request.Context(), c.Query("teacher"), c.Query("subject"))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, ratings)
}

// GenerateTokens bulk-creates access tokens.
// POST /api/v1/admin/tokens/generate
func (h *AdminHandler) GenerateTokens(c *gin.Context) {
	var req dto.GenerateTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.tokenSvc.Generate(c.Request.Context(), req.Count, req.Length)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Reset wipes all ratings, sessions and tokens.
// POST /api/v1/admin/reset
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.statsSvc.Reset(c.Request.Context()); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
