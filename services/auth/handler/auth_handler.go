package handler

import (
	"context"
	"net/http"

	"auction-marketplace/services/auth/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type AuthServiceInterface interface {
	Signup(ctx context.Context, username, password string) error
	Signin(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupHandler handles POST /signup
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req helpers.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SignupHandler", err)
		return
	}

	if err := h.service.Signup(c.Request.Context(), req.Username, req.Password); err != nil {
		// Every signup failure, duplicate usernames included, surfaces
		// the same way to the caller.
		utils.JSONError(c, http.StatusInternalServerError, "Signup failed")
		utils.Warn("SignupHandler: signup failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "User signed up successfully", nil)
	helpers.LogSuccess("SignupHandler", "user signed up", map[string]any{"username": req.Username})
}

// SigninHandler handles POST /signin
func (h *AuthHandler) SigninHandler(c *gin.Context) {
	var req helpers.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SigninHandler", err)
		return
	}

	token, err := h.service.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapSigninError(err)
		utils.JSONError(c, status, message)
		utils.Warn("SigninHandler: signin failed", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "Signin successful", gin.H{"token": token})
	helpers.LogSuccess("SigninHandler", "user signed in", map[string]any{"username": req.Username})
}

// MeHandler handles GET /me. The route is guarded by RequireAuth, which
// stores the verified username in the request context.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		utils.JSONError(c, http.StatusUnauthorized, "authorization required")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}
