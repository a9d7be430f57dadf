package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ieltslab/practice-service/internal/repositories"
	"github.com/ieltslab/practice-service/internal/services"
	"github.com/ieltslab/practice-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
	}
}

// SignUp registers a new account and returns its bearer token
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// SignIn exchanges credentials for a bearer token
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SignOut revokes the caller's token
func (h *AuthHandler) SignOut(c *gin.Context) {
	token := c.GetString("token")
	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Signed out"})
}

// Me returns the authenticated identity
func (h *AuthHandler) Me(c *gin.Context) {
	token := c.GetString("token")
	identity, err := h.authService.Verify(c.Request.Context(), token)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, identity)
}

// Stats returns the caller's practice aggregates
func (h *AuthHandler) Stats(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	stats, err := h.authService.Stats(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// History lists the caller's submitted results, newest first
func (h *AuthHandler) History(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		return
	}

	filters := repositories.ResultFilters{UserID: userID}
	if catalogID := c.Query("catalog_id"); catalogID != "" {
		filters.CatalogID = &catalogID
	}

	results, err := h.authService.History(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: results})
}
