package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dmejia/opsledger-api/internal/config"
	"github.com/dmejia/opsledger-api/internal/database"
	"github.com/dmejia/opsledger-api/internal/handlers"
	"github.com/dmejia/opsledger-api/internal/jobs"
	"github.com/dmejia/opsledger-api/internal/middleware"
	"github.com/dmejia/opsledger-api/internal/repository"
	"github.com/dmejia/opsledger-api/internal/seed"
	"github.com/dmejia/opsledger-api/internal/services"
	"github.com/dmejia/opsledger-api/internal/storage"
	"github.com/dmejia/opsledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := seed.EnsureDefaultCatalogs(db); err != nil {
		logger.Error("Failed to seed catalogs", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, store)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs, store)

	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		customers := v1.Group("/customers")
		{
			customers.GET("", h.Customer.Index)
			customers.POST("", h.Customer.Create)
			customers.GET("/:customer_id", h.Customer.Show)
			customers.PUT("/:customer_id", h.Customer.Update)
			customers.DELETE("/:customer_id", h.Customer.Delete)
		}

		leads := v1.Group("/leads")
		{
			leads.GET("", h.Lead.Index)
			leads.POST("", h.Lead.Create)
			leads.GET("/:lead_id", h.Lead.Show)
			leads.PUT("/:lead_id", h.Lead.Update)
			leads.POST("/:lead_id/convert", h.Lead.Convert)
			leads.DELETE("/:lead_id", h.Lead.Delete)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.GET("", h.Booking.Index)
			bookings.POST("", h.Booking.Create)
			bookings.GET("/:booking_id", h.Booking.Show)
			bookings.PUT("/:booking_id", h.Booking.Update)
			bookings.PATCH("/:booking_id/payment_status", h.Booking.UpdatePaymentStatus)
			bookings.DELETE("/:booking_id", h.Booking.Delete)
		}

		workOrders := v1.Group("/work_orders")
		{
			workOrders.GET("", h.WorkOrder.Index)
			workOrders.POST("", h.WorkOrder.Create)
			workOrders.GET("/:work_order_id", h.WorkOrder.Show)
			workOrders.PUT("/:work_order_id", h.WorkOrder.Update)
			workOrders.POST("/:work_order_id/attachment", h.WorkOrder.UploadAttachment)
			workOrders.DELETE("/:work_order_id", h.WorkOrder.Delete)
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("", h.Invoice.Index)
			invoices.POST("", h.Invoice.Create)
			invoices.GET("/:invoice_id", h.Invoice.Show)
			invoices.POST("/:invoice_id/items", h.Invoice.AddItem)
			invoices.PUT("/:invoice_id/items/:item_id", h.Invoice.UpdateItem)
			invoices.DELETE("/:invoice_id/items/:item_id", h.Invoice.RemoveItem)
			invoices.POST("/:invoice_id/mark_paid", h.Invoice.MarkPaid)
			invoices.GET("/:invoice_id/pdf", h.Invoice.DownloadPDF)
			invoices.DELETE("/:invoice_id", h.Invoice.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			// Static export routes first so they are not matched as an id
			transactions.GET("/export_csv", h.Transaction.ExportCSV)
			transactions.GET("/export_xlsx", h.Transaction.ExportXLSX)
			transactions.GET("", h.Transaction.Index)
			transactions.POST("", h.Transaction.Create)
			transactions.GET("/:transaction_id", h.Transaction.Show)
			transactions.PUT("/:transaction_id", h.Transaction.Update)
			transactions.POST("/:transaction_id/receipt", h.Transaction.UploadReceipt)
			transactions.GET("/:transaction_id/receipt", h.Transaction.DownloadReceipt)
			transactions.DELETE("/:transaction_id", h.Transaction.Delete)
		}

		catalogs := v1.Group("/catalogs")
		{
			catalogs.GET("/booking_types", h.Catalog.BookingTypes)
			catalogs.POST("/booking_types", h.Catalog.CreateBookingType)
			catalogs.GET("/work_order_types", h.Catalog.WorkOrderTypes)
			catalogs.POST("/work_order_types", h.Catalog.CreateWorkOrderType)
			catalogs.GET("/job_types", h.Catalog.JobTypes)
			catalogs.POST("/job_types", h.Catalog.CreateJobType)
		}

		v1.GET("/dashboard", h.Dashboard.Stats)
		v1.POST("/dashboard/refresh", h.Dashboard.Refresh)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Drop expired dashboard snapshots every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Cleaning expired dashboard cache...")
		return svcs.Dashboard.CleanExpiredCache(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
