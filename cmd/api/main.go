package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"petcarehub/internal/database"
	"petcarehub/internal/middleware"
	"petcarehub/internal/modules/auth"
	"petcarehub/internal/modules/booking"
	"petcarehub/internal/modules/catalog"
	"petcarehub/internal/modules/cleanup"
	"petcarehub/internal/modules/notification"
	"petcarehub/internal/modules/payment"
	"petcarehub/internal/modules/reconcile"
	jwtsvc "petcarehub/internal/pkg/jwt"
	"petcarehub/internal/pkg/processor"
	"petcarehub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := envOrDefault("DATABASE_URL", "petcarehub.db")
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	proc := processor.NewSandboxClient()
	hub := notification.NewHub()
	defer hub.Close()

	notifService := notification.NewService(hub, log.Printf)
	wsHandler := notification.NewWSHandler(hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(petRepo, serviceRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, serviceRepo, petRepo)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, serviceRepo, proc, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	reconcileService := reconcile.NewService(paymentRepo, bookingRepo, serviceRepo, notifService, log.Printf)
	reconcileHandler := reconcile.NewHandler(reconcileService)

	cleanupService := cleanup.NewService(bookingRepo, log.Printf)
	cleanupHandler := cleanup.NewHandler(cleanupService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		internal := v1.Group("/")
		internal.Use(middleware.WebhookTokenAuth())
		{
			reconcileHandler.RegisterRoutes(internal)
			cleanupHandler.RegisterRoutes(internal)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)

			owners := protected.Group("/")
			owners.Use(middleware.OwnerOnly())
			{
				catalogHandler.RegisterOwnerRoutes(owners)
			}

			providers := protected.Group("/")
			providers.Use(middleware.ProviderOnly())
			{
				catalogHandler.RegisterProviderRoutes(providers)
			}
		}
	}

	addr := ":" + envOrDefault("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
