package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"connectzen/internal/handlers"
	"connectzen/internal/middleware"
	"connectzen/internal/models"
	"connectzen/internal/repositories"
	"connectzen/internal/services"
	"connectzen/pkg/intasend"
	"connectzen/pkg/mailer"
	"connectzen/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_URL", "http://localhost:8080")
	viper.SetDefault("STORE_NAME", "ConnectZen Store")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "connectzen.db")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("SMTP_PORT", 587)
	viper.AutomaticEnv()

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.PaymentEvent{},
		&models.User{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	paymentRepo := repositories.NewGORMPaymentRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	// --- Collaborator clients ---
	checkoutClient, err := intasend.NewClient(intasend.Config{
		APIKey:    viper.GetString("INTASEND_API_KEY"),
		SecretKey: viper.GetString("INTASEND_SECRET_KEY"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize IntaSend client: %v", err)
	}

	var sender mailer.Sender
	smtpMailer, err := mailer.New(mailer.Config{
		Host:     viper.GetString("SMTP_HOST"),
		Port:     viper.GetInt("SMTP_PORT"),
		Username: viper.GetString("SMTP_USER"),
		Password: viper.GetString("SMTP_PASSWORD"),
		From:     viper.GetString("SMTP_FROM"),
	})
	if err != nil {
		// Notifications are best-effort; boot without a relay in dev.
		log.Printf("SMTP not configured (%v), order emails will only be logged", err)
		sender = logSender{}
	} else {
		sender = smtpMailer
	}

	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events will not be published")
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	if err := authService.EnsureAdmin(
		viper.GetString("ADMIN_USERNAME"),
		viper.GetString("ADMIN_PASSWORD"),
		viper.GetString("ADMIN_EMAIL"),
	); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	notificationService := services.NewNotificationService(
		sender,
		viper.GetString("STORE_NAME"),
		viper.GetString("ADMIN_EMAIL"),
		viper.GetString("APP_URL"),
	)

	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	orderService := services.NewOrderService(orderRepo, productRepo, checkoutClient, notificationService, events)
	paymentService := services.NewPaymentService(paymentRepo, orderService)

	// --- Handlers ---
	authRequired := middleware.AuthRequired(authService)
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(paymentService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1, authRequired)
	orderHandler.RegisterRoutes(apiV1, authRequired)
	notificationHandler.RegisterRoutes(apiV1)
	webhookHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			err := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
				log.Printf("Order event %s (tag %d): %s", msg.RoutingKey, msg.DeliveryTag, string(msg.Body))
				return nil
			})
			if err != nil {
				log.Printf("RabbitMQ consumer stopped: %v", err)
			}
		}()
	}

	// --- Start HTTP server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured GORM driver.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// logSender is the dev fallback when no SMTP relay is configured.
type logSender struct{}

func (logSender) Send(to, subject, _ string) error {
	log.Printf("Email (not sent, SMTP unconfigured) to %s: %s", to, subject)
	return nil
}
