package handler

import (
	"net/http"
	"strconv"

	"payment-portal/internal/adapter/http/dto"
	"payment-portal/internal/core/ports"
	"payment-portal/pkg/apperror"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and user lookup.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup handles POST /api/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	user, err := h.authSvc.Signup(c.Request.Context(), ports.SignupRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.SignupResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		UserID:   result.User.ID,
		Username: result.User.Username,
		Token:    result.Token,
		Expiry:   result.Expiry.Unix(),
	})
}

// CurrentUser handles GET /api/currentUser/:user_id.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, err := userIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CurrentUserResponse{Username: user.Username})
}

func userIDParam(c *gin.Context) (int64, error) {
	return parseUserID(c.Param("user_id"))
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("Invalid user id")
	}
	return id, nil
}

// HealthCheck handles GET /health: a deep check of every dependency.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps := make(map[string]string, len(checkers))
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = "unhealthy: " + err.Error()
				allHealthy = false
				continue
			}
			deps[checker.Name()] = "healthy"
		}

		body := dto.HealthResponse{Status: "healthy", Dependencies: deps}
		httpCode := http.StatusOK
		if !allHealthy {
			body.Status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}
		c.JSON(httpCode, body)
	}
}
