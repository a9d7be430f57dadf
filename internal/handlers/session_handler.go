package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieltslab/practice-service/internal/explain"
	"github.com/ieltslab/practice-service/internal/services"
	"github.com/ieltslab/practice-service/internal/utils"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

type startSessionRequest struct {
	CatalogID string `json:"catalog_id" binding:"required"`
}

type setAnswerRequest struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Value      string `json:"value"`
}

type assignTokenRequest struct {
	TokenID    string `json:"token_id" binding:"required"`
	QuestionID int    `json:"question_id" binding:"required"`
}

type unassignTokenRequest struct {
	TokenID string `json:"token_id" binding:"required"`
}

type gotoRequest struct {
	QuestionID int `json:"question_id" binding:"required"`
}

// Start creates a session in the tutorial phase
func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	state, err := h.sessionService.Start(c.Request.Context(), userID, req.CatalogID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// Begin dismisses the tutorial and starts the countdown
func (h *SessionHandler) Begin(c *gin.Context) {
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.Begin(c.Request.Context(), userID, sessionID)
	})
}

// State returns the live session snapshot
func (h *SessionHandler) State(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	state, err := h.sessionService.State(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetAnswer records a response for one question
func (h *SessionHandler) SetAnswer(c *gin.Context) {
	var req setAnswerRequest
	if !h.bind(c, &req) {
		return
	}
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.SetAnswer(c.Request.Context(), userID, sessionID, req.QuestionID, req.Value)
	})
}

// AssignToken drops a draggable token onto a question slot
func (h *SessionHandler) AssignToken(c *gin.Context) {
	var req assignTokenRequest
	if !h.bind(c, &req) {
		return
	}
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.AssignToken(c.Request.Context(), userID, sessionID, req.TokenID, req.QuestionID)
	})
}

// UnassignToken returns a token to the pool
func (h *SessionHandler) UnassignToken(c *gin.Context) {
	var req unassignTokenRequest
	if !h.bind(c, &req) {
		return
	}
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.UnassignToken(c.Request.Context(), userID, sessionID, req.TokenID)
	})
}

// GoTo jumps the current position to a question
func (h *SessionHandler) GoTo(c *gin.Context) {
	var req gotoRequest
	if !h.bind(c, &req) {
		return
	}
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.GoTo(c.Request.Context(), userID, sessionID, req.QuestionID)
	})
}

// Next advances to the adjacent question
func (h *SessionHandler) Next(c *gin.Context) {
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.Next(c.Request.Context(), userID, sessionID)
	})
}

// Prev moves to the previous question
func (h *SessionHandler) Prev(c *gin.Context) {
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.Prev(c.Request.Context(), userID, sessionID)
	})
}

// ToggleReview flips the review flag for a question
func (h *SessionHandler) ToggleReview(c *gin.Context) {
	var req gotoRequest
	if !h.bind(c, &req) {
		return
	}
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.ToggleReview(c.Request.Context(), userID, sessionID, req.QuestionID)
	})
}

// Submit finalizes the session on the user's explicit action
func (h *SessionHandler) Submit(c *gin.Context) {
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.Submit(c.Request.Context(), userID, sessionID)
	})
}

// Results returns the score and per-question review
func (h *SessionHandler) Results(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	results, err := h.sessionService.Results(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// TimeRemaining reports the countdown for polling clients that do not want
// the full snapshot.
func (h *SessionHandler) TimeRemaining(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	state, err := h.sessionService.State(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"phase":          state.Phase,
		"time_remaining": state.TimeRemaining,
	})
}

type explanationEntry struct {
	QuestionID  int                  `json:"question_id"`
	Explanation *explain.Explanation `json:"explanation,omitempty"`
}

// Explanations returns whichever explanations have been generated so far.
func (h *SessionHandler) Explanations(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	results, err := h.sessionService.Results(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	entries := make([]explanationEntry, 0, len(results.Rows))
	for _, row := range results.Rows {
		entries = append(entries, explanationEntry{
			QuestionID:  row.QuestionID,
			Explanation: row.Explanation,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"ready":        results.ExplanationsReady,
		"explanations": entries,
	})
}

// Close tears the session down
func (h *SessionHandler) Close(c *gin.Context) {
	h.mutate(c, func(userID, sessionID string) error {
		return h.sessionService.Close(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// mutate runs a session operation identified by the path id and answers with
// the refreshed snapshot.
func (h *SessionHandler) mutate(c *gin.Context, op func(userID, sessionID string) error) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}
	sessionID := ParseStringIDParam(c, "id")
	if sessionID == "" {
		return
	}

	if err := op(userID, sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	state, err := h.sessionService.State(c.Request.Context(), userID, sessionID)
	if err != nil {
		// Close removed the session; there is no snapshot left to return.
		c.JSON(http.StatusOK, SuccessResponse{Message: "OK"})
		return
	}
	c.JSON(http.StatusOK, state)
}
