// Package auth registers the authentication API surface: OTP send/verify,
// registration, login, and the mock social login consent page.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/linguo-app/linguo-auth/internal/http/api/auth/handlers"
	"github.com/linguo-app/linguo-auth/internal/otp"
	"github.com/linguo-app/linguo-auth/internal/store"
)

// RegisterRoutes registers auth routes and handlers. The store and OTP
// service are injected; nothing here reaches for global state.
func RegisterRoutes(r *gin.Engine, st store.Store, otpSvc *otp.Service, echoCode bool) {
	if r == nil || st == nil || otpSvc == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api")

	otpHandler := handlers.NewOTPHandler(otpSvc, echoCode)
	api.POST("/otp/send", otpHandler.Send)
	api.POST("/otp/verify", otpHandler.Verify)

	oauthHandler := handlers.NewOAuthHandler()
	api.GET("/auth/mock/:provider", oauthHandler.Consent)

	userHandler := handlers.NewUserHandler(st)
	api.POST("/register", userHandler.Register)
	api.POST("/login", userHandler.Login)
}
