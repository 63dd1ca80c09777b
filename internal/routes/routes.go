package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitcoachbr/coach-api/internal/audit"
	"github.com/fitcoachbr/coach-api/internal/cache"
	"github.com/fitcoachbr/coach-api/internal/config"
	"github.com/fitcoachbr/coach-api/internal/handlers"
	infraRepo "github.com/fitcoachbr/coach-api/internal/infra/repository"
	"github.com/fitcoachbr/coach-api/internal/middleware"
	"github.com/fitcoachbr/coach-api/internal/payments"
	"github.com/fitcoachbr/coach-api/internal/storage"
	ucAppointment "github.com/fitcoachbr/coach-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	storageClient := storage.NewClient(cfg)
	redisClient := cache.NewClient(cfg)
	urlCache := cache.NewSignedURLCache(redisClient, cfg.SignedURLTTL)

	var gateway *payments.Gateway
	if cfg.MercadoPagoToken != "" {
		g, err := payments.NewGateway(cfg.MercadoPagoToken)
		if err != nil {
			log.Printf("payments disabled: %v", err)
		} else {
			gateway = g
		}
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher)
	confirmAppointmentUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	listAppointmentsUC := ucAppointment.NewListAppointmentsInRange(appointmentRepo)
	freeSlotsUC := ucAppointment.NewFreeSlots(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	studentHandler := handlers.NewStudentHandler(db)
	blockHandler := handlers.NewAvailabilityBlockHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
		freeSlotsUC,
	)

	videoHandler := handlers.NewWorkoutVideoHandler(db, storageClient, urlCache)
	pdfHandler := handlers.NewWorkoutPDFHandler(db, storageClient, urlCache)
	sheetHandler := handlers.NewWorkoutSheetHandler(db)
	mealPlanHandler := handlers.NewMealPlanHandler(db)

	paymentHandler := handlers.NewPaymentHandler(db, gateway, auditDispatcher, cfg.WebhookBaseURL)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOKS (PUBLIC)
		// ------------------------------
		api.POST("/payments/webhook", paymentHandler.Webhook)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)

			// ------------------------------
			// STUDENTS
			// ------------------------------
			secured.GET("/students", studentHandler.List)
			secured.POST("/students", studentHandler.Create)
			secured.PUT("/students/:id", studentHandler.Update)
			secured.DELETE("/students/:id", studentHandler.Delete)

			// ------------------------------
			// AVAILABILITY BLOCKS
			// ------------------------------
			secured.GET("/availability-blocks", blockHandler.List)
			secured.GET("/availability-blocks/:id", blockHandler.Get)
			secured.POST("/availability-blocks", blockHandler.Create)
			secured.PUT("/availability-blocks/:id", blockHandler.Update)
			secured.DELETE("/availability-blocks/:id", blockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/free-slots", appointmentHandler.FreeSlots)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// WORKOUT VIDEOS
			// ------------------------------
			secured.GET("/videos", videoHandler.List)
			secured.POST("/videos", videoHandler.Create)
			secured.PUT("/videos/:id", videoHandler.Update)
			secured.DELETE("/videos/:id", videoHandler.Delete)
			secured.POST("/videos/:id/upload", videoHandler.Upload)
			secured.POST("/videos/:id/thumbnail", videoHandler.UploadThumbnail)
			secured.GET("/videos/:id/stream", videoHandler.Stream)

			// ------------------------------
			// WORKOUT PDFS
			// ------------------------------
			secured.GET("/pdfs", pdfHandler.List)
			secured.POST("/pdfs", pdfHandler.Create)
			secured.DELETE("/pdfs/:id", pdfHandler.Delete)
			secured.POST("/pdfs/:id/upload", pdfHandler.Upload)
			secured.GET("/pdfs/:id/download", pdfHandler.Download)

			// ------------------------------
			// WORKOUT SHEETS
			// ------------------------------
			secured.GET("/workout-sheets", sheetHandler.List)
			secured.GET("/workout-sheets/:id", sheetHandler.Get)
			secured.POST("/workout-sheets", sheetHandler.Create)
			secured.PUT("/workout-sheets/:id", sheetHandler.Update)
			secured.DELETE("/workout-sheets/:id", sheetHandler.Delete)

			// ------------------------------
			// MEAL PLANS
			// ------------------------------
			secured.GET("/meal-plans", mealPlanHandler.List)
			secured.GET("/meal-plans/:id", mealPlanHandler.Get)
			secured.POST("/meal-plans", mealPlanHandler.Create)
			secured.PUT("/meal-plans/:id", mealPlanHandler.Update)
			secured.DELETE("/meal-plans/:id", mealPlanHandler.Delete)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.GET("/payments", paymentHandler.List)
			secured.POST("/payments", paymentHandler.Create)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
