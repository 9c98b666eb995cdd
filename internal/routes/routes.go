package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/salonware/salon-manager/internal/audit"
	"github.com/salonware/salon-manager/internal/config"
	"github.com/salonware/salon-manager/internal/handlers"
	infraRepo "github.com/salonware/salon-manager/internal/infra/repository"
	"github.com/salonware/salon-manager/internal/media"
	"github.com/salonware/salon-manager/internal/middleware"
	"github.com/salonware/salon-manager/internal/payments"
	ucAppointment "github.com/salonware/salon-manager/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// Payments and media are optional: when unconfigured the handlers
	// answer their endpoints with an explicit error instead of panicking.
	var provider payments.Provider
	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Warn().Err(err).Msg("mercadopago disabled")
		} else {
			provider = mp
		}
	}

	var uploader *media.Uploader
	if cfg.S3Bucket != "" {
		uploader = media.NewUploader(
			cfg.S3Region,
			cfg.S3Bucket,
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			cfg.S3BaseURL,
		)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(db, auditDispatcher)
	financialHandler := handlers.NewFinancialEntryHandler(db, auditDispatcher, provider)

	workingHoursHandler := handlers.NewWorkingHoursHandler(db, auditDispatcher)
	mediaHandler := handlers.NewMediaHandler(db, uploader, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		auditDispatcher,
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		availabilityUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

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

			secured.GET("/me/salon", salonHandler.GetMySalon)
			secured.PUT("/me/salon", salonHandler.UpdateMySalon)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.GET("/products/:id", productHandler.Get)
			secured.PUT("/products/:id", productHandler.Update)
			secured.DELETE("/products/:id", productHandler.Delete)
			secured.POST("/products/:id/image", mediaHandler.UploadProductImage)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/professionals", professionalHandler.List)
			secured.POST("/professionals", professionalHandler.Create)
			secured.GET("/professionals/:id", professionalHandler.Get)
			secured.PUT("/professionals/:id", professionalHandler.Update)
			secured.DELETE("/professionals/:id", professionalHandler.Delete)
			secured.POST("/professionals/:id/image", mediaHandler.UploadProfessionalImage)
			secured.GET("/professionals/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/professionals/:id/working-hours", workingHoursHandler.Update)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/agenda", appointmentHandler.Agenda)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/financial-entries", financialHandler.List)
			secured.POST("/financial-entries", financialHandler.Create)
			secured.GET("/financial-entries/:id", financialHandler.Get)
			secured.PUT("/financial-entries/:id", financialHandler.Update)
			secured.DELETE("/financial-entries/:id", financialHandler.Delete)
			secured.POST("/financial-entries/:id/checkout", financialHandler.Checkout)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
