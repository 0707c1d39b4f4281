package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/config"
	"github.com/Abdulah-eng/driverApp/internal/earnings"
	"github.com/Abdulah-eng/driverApp/internal/infra"
	"github.com/Abdulah-eng/driverApp/internal/notifications"
	"github.com/Abdulah-eng/driverApp/internal/ratings"
	"github.com/Abdulah-eng/driverApp/internal/security"
	"github.com/Abdulah-eng/driverApp/internal/server/handlers"
	"github.com/Abdulah-eng/driverApp/internal/server/mw"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
	"github.com/Abdulah-eng/driverApp/internal/store"
	"github.com/Abdulah-eng/driverApp/internal/telegram"
	"github.com/Abdulah-eng/driverApp/internal/trips"
	"github.com/Abdulah-eng/driverApp/internal/users"
)

func NewRouter(cfg config.Config, deps *infra.Infra, logger *zap.Logger) http.Handler {
	if cfg.AppEnv == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	r.GET("/health", func(c *gin.Context) {
		resp.OK(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	usersRepo := users.NewRepo(deps.PG)
	tripsRepo := trips.NewRepo(deps.PG)
	earningsRepo := earnings.NewRepo(deps.PG)
	ratingsRepo := ratings.NewRepo(deps.PG)
	notifsRepo := notifications.NewRepo(deps.PG)

	jwtm := security.NewJWTManager(cfg.JWTSigningKey, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	otpStore := store.NewOTPStore(deps.Redis, cfg.JWTSigningKey, cfg.OTPTTL, cfg.OTPResendCooldown, cfg.OTPMaxAttempts)
	sessionStore := store.NewSignupSessionStore(deps.Redis, 15*time.Minute)
	refreshStore := store.NewRefreshStore(deps.Redis, cfg.JWTRefreshTTL)
	resetStore := store.NewResetStore(deps.Redis, cfg.JWTSigningKey, cfg.OTPTTL, cfg.OTPMaxAttempts)
	tgClient := telegram.NewGatewayClient(cfg.TelegramGatewayBaseURL, cfg.TelegramGatewayToken, cfg.TelegramGatewaySenderID)

	authH := handlers.NewAuthHandler(logger, usersRepo, otpStore, sessionStore, refreshStore, resetStore, jwtm, tgClient, cfg.OTPTTL, cfg.OTPLength)
	profileH := handlers.NewProfileHandler(logger, usersRepo)
	tripsH := handlers.NewTripsHandler(logger, tripsRepo)
	earningsH := handlers.NewEarningsHandler(logger, earningsRepo)
	ratingsH := handlers.NewRatingsHandler(logger, ratingsRepo, tripsRepo)
	notifsH := handlers.NewNotificationsHandler(logger, notifsRepo, cfg.InternalToken)

	// API v1
	v1 := r.Group("/v1")
	v1.Use(mw.RequireBaseHeaders(cfg))
	v1.Use(mw.RateLimit(deps.Redis, cfg.RateLimitRPS))

	v1.POST("/auth/signup", authH.Signup)
	v1.POST("/auth/login", authH.Login)
	v1.POST("/auth/phone", authH.SendOTP)
	v1.POST("/auth/otp/verify", authH.VerifyOTP)
	v1.POST("/auth/otp/signup", authH.CompleteSignup)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.POST("/auth/logout", authH.Logout)
	v1.POST("/auth/reset-password/request", authH.ResetPasswordRequest)
	v1.POST("/auth/reset-password/confirm", authH.ResetPasswordConfirm)

	authed := v1.Group("")
	authed.Use(mw.RequireUser(jwtm))

	authed.GET("/profile", profileH.Get)
	authed.PATCH("/profile", profileH.Patch)

	authed.POST("/trips", tripsH.Create)
	authed.GET("/trips", tripsH.List)
	authed.GET("/trips/:id", tripsH.Get)
	authed.PATCH("/trips/:id/status", tripsH.UpdateStatus)
	authed.POST("/trips/:id/rating", ratingsH.Submit)
	authed.GET("/ratings", ratingsH.List)

	authed.GET("/earnings", earningsH.Summary)
	authed.GET("/earnings/entries", earningsH.Entries)
	authed.POST("/earnings", earningsH.Create)

	authed.GET("/notifications", notifsH.List)
	authed.PATCH("/notifications/:id/read", notifsH.MarkRead)
	authed.POST("/notifications/read-all", notifsH.MarkAllRead)
	authed.POST("/notifications", notifsH.Create)

	return r
}
