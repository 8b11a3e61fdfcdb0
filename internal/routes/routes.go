package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-bridge/internal/audit"
	"github.com/BruksfildServices01/booking-bridge/internal/calendar"
	"github.com/BruksfildServices01/booking-bridge/internal/config"
	"github.com/BruksfildServices01/booking-bridge/internal/handlers"
	infraCache "github.com/BruksfildServices01/booking-bridge/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/booking-bridge/internal/infra/repository"
	"github.com/BruksfildServices01/booking-bridge/internal/middleware"
	"github.com/BruksfildServices01/booking-bridge/internal/timezone"
	ucBooking "github.com/BruksfildServices01/booking-bridge/internal/usecase/booking"
	ucConversation "github.com/BruksfildServices01/booking-bridge/internal/usecase/conversation"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	logger zerolog.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	conversationRepo := infraRepo.NewConversationGormRepository(db)
	lastSeen := infraCache.NewRedisLastSeen(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, logger)

	provider := calendar.NewGoogleProvider(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		logger,
	)

	loc := timezone.Location(cfg.DefaultTimezone)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createUC := ucBooking.NewCreateAppointment(
		bookingRepo,
		provider,
		auditDispatcher,
		logger,
		loc,
	)

	rescheduleUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		provider,
		auditDispatcher,
		logger,
		loc,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		provider,
		auditDispatcher,
		logger,
		loc,
	)

	availabilityUC := ucBooking.NewCheckAvailability(
		bookingRepo,
		provider,
		loc,
	)

	slotsUC := ucBooking.NewFindAvailableSlots(
		bookingRepo,
		provider,
		loc,
	)

	// ======================================================
	// USE CASES — CONVERSATION
	// ======================================================
	aggregator := ucConversation.NewAggregator(
		conversationRepo,
		lastSeen,
		logger,
		cfg.DebounceWindow,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	webhookHandler := handlers.NewWebhookHandler(
		createUC,
		rescheduleUC,
		cancelUC,
		availabilityUC,
		slotsUC,
	)

	conversationHandler := handlers.NewConversationHandler(aggregator)
	authHandler := handlers.NewAuthHandler(db, cfg)
	oauthHandler := handlers.NewOAuthHandler(db, cfg, provider)
	meHandler := handlers.NewMeHandler(db, cfg)

	// ======================================================
	// WEBHOOK ROUTES (shared-secret)
	// ======================================================
	webhook := r.Group("/")
	webhook.Use(middleware.WebhookAuth(cfg))
	{
		webhook.POST("/client-appointment", webhookHandler.ClientAppointment)
		webhook.POST("/check-availability", webhookHandler.CheckAvailability)
		webhook.POST("/find-available-slots", webhookHandler.FindAvailableSlots)

		webhook.POST("/conversation/store-message", conversationHandler.StoreMessage)
		webhook.POST("/conversation/process-message", conversationHandler.ProcessMessage)
		webhook.GET("/conversation/history", conversationHandler.History)
		webhook.POST("/conversation/clear", conversationHandler.Clear)
	}

	// ======================================================
	// OAUTH (calendar connect)
	// ======================================================
	r.GET("/auth/google", oauthHandler.Connect)
	r.GET("/oauth2callback", oauthHandler.Callback)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/appointments", meHandler.ListAppointments)
			secured.PATCH("/me/calendar", meHandler.UpdateCalendar)
			secured.GET("/me/audit-logs", meHandler.ListAuditLogs)
		}
	}
}
