package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/keechi-app/keechi-api/internal/audit"
	"github.com/keechi-app/keechi-api/internal/cache"
	"github.com/keechi-app/keechi-api/internal/config"
	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/handlers"
	infraRepo "github.com/keechi-app/keechi-api/internal/infra/repository"
	"github.com/keechi-app/keechi-api/internal/middleware"
	"github.com/keechi-app/keechi-api/internal/models"
	"github.com/keechi-app/keechi-api/internal/storage"
	ucAppointment "github.com/keechi-app/keechi-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	availabilityCache *cache.AvailabilityCache,
	images storage.ImageStore,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	hours := domain.BusinessHours{Open: cfg.OpenHour, Close: cfg.CloseHour}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		hours,
		cfg.SlotIntervalMin,
		cfg.StrictOverlap,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	listAppointmentsUC := ucAppointment.NewListForRequester(appointmentRepo)

	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
		cfg.StrictTransitions,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	shopHandler := handlers.NewShopHandler(db, images, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	teamMemberHandler := handlers.NewTeamMemberHandler(db)
	adminHandler := handlers.NewAdminHandler(cfg)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	webHandler := handlers.NewWebHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
		updateStatusUC,
		deleteAppointmentUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC, availabilityCache)

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/web/shops/:id", webHandler.ShowShopPage)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/user/signup", authHandler.UserSignup)
			auth.POST("/user/login", authHandler.UserLogin)
			auth.POST("/shop/signup", authHandler.ShopSignup)
			auth.POST("/shop/login", authHandler.ShopLogin)
			auth.GET("/me", middleware.RequireAuth(cfg), authHandler.Me)
		}

		// ------------------------------
		// SHOPS
		// ------------------------------
		shops := api.Group("/shops")
		{
			shops.GET("", shopHandler.List)
			shops.GET("/:id", shopHandler.Get)
			shops.PATCH("/:id",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				shopHandler.Update)
			shops.GET("/owner/me",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				shopHandler.OwnerShop)
		}

		// ------------------------------
		// SERVICES
		// ------------------------------
		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/owner/my-services",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				serviceHandler.MyServices)
			services.POST("",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				serviceHandler.Create)
			services.PATCH("/:id",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				serviceHandler.Update)
			services.DELETE("/:id",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				serviceHandler.Delete)
		}

		// ------------------------------
		// AVAILABILITY
		// ------------------------------
		api.GET("/availability", availabilityHandler.Get)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		appointments := api.Group("/appointments")
		{
			// Guests book too; a valid token just binds the booking.
			appointments.POST("", middleware.OptionalAuth(cfg), appointmentHandler.Create)
			appointments.GET("", middleware.RequireAuth(cfg), appointmentHandler.List)
			appointments.GET("/:id", middleware.OptionalAuth(cfg), appointmentHandler.Get)
			appointments.PATCH("/:id",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleShopOwner),
				appointmentHandler.UpdateStatus)
			appointments.DELETE("/:id", middleware.RequireAuth(cfg), appointmentHandler.Delete)
		}

		// ------------------------------
		// REVIEWS
		// ------------------------------
		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewHandler.List)
			reviews.POST("",
				middleware.RequireAuth(cfg),
				middleware.RequireRoles(models.RoleUser),
				reviewHandler.Create)
			reviews.DELETE("/:id", middleware.RequireAuth(cfg), reviewHandler.Delete)
		}

		// ------------------------------
		// ANALYTICS
		// ------------------------------
		analytics := api.Group("/analytics")
		analytics.Use(middleware.RequireAuth(cfg), middleware.RequireRoles(models.RoleShopOwner))
		{
			analytics.GET("/dashboard", analyticsHandler.Dashboard)
			analytics.GET("/revenue", analyticsHandler.Revenue)
		}

		// ------------------------------
		// TEAM MEMBERS
		// ------------------------------
		team := api.Group("/team-members")
		{
			team.GET("/shop/:shopId", teamMemberHandler.ListByShop)

			owner := team.Group("")
			owner.Use(middleware.RequireAuth(cfg), middleware.RequireRoles(models.RoleShopOwner))
			{
				owner.POST("", teamMemberHandler.Create)
				owner.GET("/my-team", teamMemberHandler.MyTeam)
				owner.PATCH("/:id", teamMemberHandler.Update)
				owner.DELETE("/:id", teamMemberHandler.Delete)
			}
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)
			admin.GET("/verify", middleware.RequireAdmin(cfg), adminHandler.Verify)
			admin.GET("/audit-logs", middleware.RequireAdmin(cfg), auditLogsHandler.List)
		}
	}
}
