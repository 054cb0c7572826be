package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mindhaven/wellness-api/docs"
	"github.com/mindhaven/wellness-api/internal/api/handler"
	"github.com/mindhaven/wellness-api/internal/api/middleware"
	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
	"github.com/mindhaven/wellness-api/internal/core/service"
	"github.com/mindhaven/wellness-api/internal/infrastructure/config"
	mongorepo "github.com/mindhaven/wellness-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/mindhaven/wellness-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every route registered. The token
// service and mail queue are constructed by the caller: the token service can
// fail on missing secrets and the queue owns background workers.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	tokens ports.TokenService,
	mailQueue ports.MailQueue,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("wellness"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	otpRepo := mongorepo.NewOtpRepository(db)
	checkInRepo := mongorepo.NewCheckInRepository(db)
	onboardingRepo := mongorepo.NewOnboardingRepository(db)
	journalRepo := mongorepo.NewJournalRepository(db)
	limiter := redisinfra.NewRateLimiter(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, otpRepo, tokens, limiter, mailQueue, cfg.DefaultAvatarURL, log)
	profileService := service.NewProfileService(userRepo, cfg.DefaultAvatarURL, log)
	wellnessService := service.NewWellnessService(checkInRepo, onboardingRepo, log)
	journalService := service.NewJournalService(journalRepo, log)
	adminService := service.NewAdminService(userRepo, checkInRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.JWT.RefreshTTL, cfg.IsProduction())
	profileHandler := handler.NewProfileHandler(profileService)
	wellnessHandler := handler.NewWellnessHandler(wellnessService)
	journalHandler := handler.NewJournalHandler(journalService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMiddleware := middleware.Auth(tokens)

	// --- Probes, metrics, docs (no auth) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes (public) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/register/verify-otp", authHandler.VerifyRegisterOtp)
	auth.POST("/register/resend-otp", authHandler.ResendRegisterOtp)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/forgot-password/verify-otp", authHandler.VerifyForgotOtp)
	auth.POST("/forgot-password/reset", authHandler.ResetPassword)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// --- Authenticated routes ---
	api := e.Group("/api", authMiddleware)

	api.GET("/profile", profileHandler.GetProfile)
	api.PUT("/profile", profileHandler.UpdateProfile)
	api.PUT("/profile/change-password", profileHandler.ChangePassword)
	api.PUT("/profile/app-lock", profileHandler.SetAppLockPin)
	api.POST("/profile/app-lock/verify", profileHandler.VerifyAppLockPin)
	api.DELETE("/profile/avatar", profileHandler.ResetAvatar)

	api.GET("/onboarding/status", wellnessHandler.OnboardingStatus)
	api.GET("/onboarding", wellnessHandler.GetOnboarding)
	api.POST("/onboarding", wellnessHandler.SaveOnboarding)

	api.GET("/checkins/today", wellnessHandler.TodayCheckIn)
	api.POST("/checkins", wellnessHandler.SaveCheckIn)
	api.GET("/checkins/mood-flow", wellnessHandler.MoodFlow)

	api.POST("/journal", journalHandler.CreateEntry)
	api.GET("/journal", journalHandler.ListEntries)
	api.GET("/journal/search", journalHandler.SearchEntries)
	api.GET("/journal/:id", journalHandler.GetEntry)
	api.PUT("/journal/:id", journalHandler.UpdateEntry)
	api.DELETE("/journal/:id", journalHandler.DeleteEntry)
	api.POST("/journal/:id/restore", journalHandler.RestoreEntry)

	// --- Admin routes (role-gated) ---
	admin := api.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stats", adminHandler.Stats)

	return e
}
