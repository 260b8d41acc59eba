package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"polarizados_ya/internal/adapter/http/handlers"
	"polarizados_ya/internal/adapter/http/routes"
	"polarizados_ya/internal/adapter/persistence/memory"
	"polarizados_ya/internal/adapter/persistence/repository"
	"polarizados_ya/internal/config"
	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/infrastructure/database"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/messaging"
	"polarizados_ya/internal/infrastructure/security"
	"polarizados_ya/internal/infrastructure/storage"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/internal/usecase/interfaces"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// @title           PolarizadosYA! API
// @version         1.0
// @description     Window-tinting shop backend: vehicles, appointments, 360 inspections, quotes and service orders.

// @host localhost:8080

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo         interfaces.IUserRepository
		vehicleRepo      interfaces.IVehicleRepository
		appointmentRepo  interfaces.IAppointmentRepository
		inspectionRepo   interfaces.IInspectionRepository
		quoteRepo        interfaces.IQuoteRepository
		orderRepo        interfaces.IServiceOrderRepository
		notificationRepo interfaces.INotificationRepository
		photos           interfaces.IPhotoStore
	)
	if cfg.StorageBackend == config.StorageMemory {
		logger.Get().Warn("[startup] using in-memory storage, data is lost on restart")
		repos := memory.NewRepositories()
		userRepo, vehicleRepo, appointmentRepo = repos.Users, repos.Vehicles, repos.Appointments
		inspectionRepo, quoteRepo, orderRepo = repos.Inspections, repos.Quotes, repos.ServiceOrders
		notificationRepo = repos.Notifications
		photos = storage.NewMemoryPhotoStore()
	} else {
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			logger.Get().Fatal("[startup] dynamodb", zap.Error(err))
		}
		s3Photos, err := storage.NewS3PhotoStore(ctx, cfg)
		if err != nil {
			logger.Get().Fatal("[startup] s3", zap.Error(err))
		}
		photos = s3Photos

		userRepo = repository.NewUserDynamoRepository(ddb, cfg.Tables.Users)
		vehicleRepo = repository.NewVehicleDynamoRepository(ddb, cfg.Tables.Vehicles)
		appointmentRepo = repository.NewAppointmentDynamoRepository(ddb, cfg.Tables.Appointments)
		inspectionRepo = repository.NewInspectionDynamoRepository(ddb, cfg.Tables.Inspections)
		quoteRepo = repository.NewQuoteDynamoRepository(ddb, cfg.Tables.Quotes)
		orderRepo = repository.NewServiceOrderDynamoRepository(ddb, cfg.Tables.ServiceOrders)
		notificationRepo = repository.NewNotificationDynamoRepository(ddb, cfg.Tables.Notifications)
	}

	var email interfaces.IEmailSender = messaging.NoopEmailClient{}
	if cfg.EmailEnabled() {
		email = messaging.NewEmailClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail)
	} else {
		logger.Get().Warn("[startup] SMTP not configured, client emails are disabled")
	}
	var whatsapp interfaces.IWhatsAppSender = messaging.NoopWhatsAppClient{}
	if cfg.WhatsAppEnabled() {
		whatsapp = messaging.NewWhatsAppClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNum)
	} else {
		logger.Get().Warn("[startup] Twilio not configured, WhatsApp messages are disabled")
	}

	tokens := security.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	hasher := security.NewPasswordHasher(bcrypt.DefaultCost)

	authUseCase := usecase.NewAuthUseCase(userRepo, tokens, hasher)
	userUseCase := usecase.NewUserUseCase(userRepo)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo, userRepo, notificationRepo)
	appointmentUseCase := usecase.NewAppointmentUseCase(appointmentRepo, vehicleRepo, email)
	inspectionUseCase := usecase.NewInspectionUseCase(inspectionRepo, vehicleRepo, photos,
		entities.DamagePolicy{RequireNotes: cfg.RequireDamageNotes})
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, vehicleRepo)
	orderUseCase := usecase.NewServiceOrderUseCase(orderRepo, vehicleRepo, userRepo, notificationRepo, email, whatsapp)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	dashboardUseCase := usecase.NewDashboardUseCase(appointmentRepo, orderRepo, vehicleRepo, quoteRepo)

	router := routes.NewRouter(ctx, cfg, authUseCase, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authUseCase),
		Users:        handlers.NewUserHandler(userUseCase),
		Vehicles:     handlers.NewVehicleHandler(vehicleUseCase),
		Appointments: handlers.NewAppointmentHandler(appointmentUseCase),
		Inspections:  handlers.NewInspectionHandler(inspectionUseCase),
		Quotes:       handlers.NewQuoteHandler(quoteUseCase),
		ServiceOrder: handlers.NewServiceOrderHandler(orderUseCase),
		Notification: handlers.NewNotificationHandler(notificationUseCase),
		Dashboard:    handlers.NewDashboardHandler(dashboardUseCase),
	})

	if err := routes.Run(ctx, cfg, router); err != nil {
		logger.Get().Fatal("[http] server stopped", zap.Error(err))
	}
}
