package handler

import (
	"payment-portal/internal/adapter/http/middleware"
	"payment-portal/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxUploadBytes = 5 << 20
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	QRSvc          ports.QRCodeService
	PortalSvc      ports.PortalService
	TokenSvc       ports.TokenService
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Mode           string // gin mode; empty keeps the current one
	MaxBodyBytes   int64
	MaxUploadBytes int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	if deps.Mode != "" {
		gin.SetMode(deps.Mode)
	}
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if a store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimiter == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	bodyLimit := middleware.MaxBodySize(orDefault(deps.MaxBodyBytes, defaultMaxBodyBytes))
	uploadLimit := middleware.MaxBodySize(orDefault(deps.MaxUploadBytes, defaultMaxUploadBytes))

	api := r.Group("/api")

	// --- Public routes ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	accountHandler := NewAccountHandler(deps.AccountSvc)
	qrHandler := NewQRHandler(deps.QRSvc)

	api.POST("/signup", bodyLimit, rl(middleware.GroupSignup), authHandler.Signup)
	api.POST("/login", bodyLimit, rl(middleware.GroupLogin), authHandler.Login)
	api.GET("/currentUser/:user_id", authHandler.CurrentUser)
	api.GET("/account/:user_id", accountHandler.GetSummary)

	api.POST("/upload-qr", uploadLimit, rl(middleware.GroupQRUpload), qrHandler.Upload)
	api.GET("/user-qr/:user_id", qrHandler.Latest)
	api.GET("/qr-codes/:user_id", qrHandler.List)

	// --- JWT-authenticated portal page ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	portalHandler := NewPortalHandler(deps.PortalSvc)

	portal := api.Group("/portal", jwtAuth, bodyLimit, rl(middleware.GroupPortal))
	{
		portal.POST("/session", portalHandler.Open)
		portal.GET("/session", portalHandler.Snapshot)
		portal.DELETE("/session", portalHandler.Close)
		portal.GET("/recipients", portalHandler.Recipients)
		portal.PUT("/selection", portalHandler.Select)
		portal.DELETE("/selection", portalHandler.ClearSelection)
		portal.POST("/transfers", rl(middleware.GroupTransfer), portalHandler.Submit)
	}

	return r
}

func orDefault(v, def int64) int64 {
	if v <= 0 {
		return def
	}
	return v
}
