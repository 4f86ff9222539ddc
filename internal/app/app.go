// Package app wires configuration, the store, and the HTTP server together.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authapi "github.com/linguo-app/linguo-auth/internal/http/api/auth"
	"github.com/linguo-app/linguo-auth/internal/config"
	"github.com/linguo-app/linguo-auth/internal/db"
	"github.com/linguo-app/linguo-auth/internal/otp"
	"github.com/linguo-app/linguo-auth/internal/store"
	log "github.com/sirupsen/logrus"
)

// RunServer boots the auth API server and blocks until ctx is canceled or
// the listener fails.
func RunServer(ctx context.Context, cfg config.Config) error {
	st, errStore := BuildStore(cfg)
	if errStore != nil {
		return errStore
	}

	engine := NewEngine(cfg, st)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			log.Errorf("server shutdown error: %v", errShutdown)
		}
	}()

	log.Infof("starting auth server on %s (store=%s)", addr, cfg.Store.Backend)
	if errListen := srv.ListenAndServe(); errListen != nil && errListen != http.ErrServerClosed {
		return errListen
	}
	return nil
}

// NewEngine builds the gin engine with middleware and routes. Split from
// RunServer so tests can drive the full router without a listener.
func NewEngine(cfg config.Config, st store.Store) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogMiddleware())
	engine.Use(corsMiddleware())

	otpSvc := otp.NewService(st, otp.Policy{
		Digits:    cfg.OTP.Digits,
		TTL:       cfg.OTP.TTL,
		SingleUse: cfg.OTP.SingleUse,
	})
	authapi.RegisterRoutes(engine, st, otpSvc, cfg.OTP.EchoCode)
	return engine
}

// BuildStore constructs the store backend selected by the config.
func BuildStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory, "":
		return store.NewMemoryStore(), nil
	case config.StoreBackendSQLite:
		conn, errOpen := db.Open(cfg.Store.DSN)
		if errOpen != nil {
			return nil, errOpen
		}
		if errMigrate := db.Migrate(conn); errMigrate != nil {
			return nil, errMigrate
		}
		return store.NewGormStore(conn), nil
	default:
		return nil, fmt.Errorf("app: unsupported store backend: %s", cfg.Store.Backend)
	}
}

// corsMiddleware enables permissive CORS for the auth API.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestLogMiddleware logs each request with method, path, status, and latency.
func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}
