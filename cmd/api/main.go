package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	handlerHttp "github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http"
	redisclient "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/cache"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/config"
	database "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/database"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/external_services"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/jwt"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/logger"
	passwordservice "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/password_service"
	randomgenerator "github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/random_generator"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/repository/memory"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/repository/mongodb"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/store"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/uuidgen"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/validator"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	appConfig := config.NewConfig()

	appLogger, err := logger.NewZapLogger(appConfig.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if appConfig.JWTSecret == "" {
		appLogger.Fatalf("JWT_SECRET environment variable not set")
	}

	// Register custom validators
	validator.RegisterCustomValidators()

	// Dependency Injection: Repositories
	var (
		userRepo    contract.IUserRepository
		brokerRepo  contract.IBrokerRepository
		listingRepo contract.IListingRepository
	)
	switch appConfig.StoreDriver {
	case "memory":
		appLogger.Warnf("using in-memory store, data is lost on restart")
		brokers := memory.NewBrokerRepository()
		userRepo = memory.NewUserRepository()
		brokerRepo = brokers
		listingRepo = memory.NewListingRepository(brokers)
	case "mongo":
		mongoClient, err := database.NewMongoDBClient(context.Background(), appConfig.MongoURI)
		if err != nil {
			appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer mongoClient.Disconnect()

		db := mongoClient.Database(appConfig.MongoDBName)
		if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
			appLogger.Fatalf("Failed to create indexes: %v", err)
		}
		userRepo = mongodb.NewMongoUserRepository(db.Collection("users"))
		brokerRepo = mongodb.NewBrokerRepository(db)
		listingRepo = mongodb.NewListingRepository(db)
	default:
		appLogger.Fatalf("unknown STORE_DRIVER %q (want mongo or memory)", appConfig.StoreDriver)
	}

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher(bcrypt.DefaultCost)
	jwtManager, err := jwt.NewJWTManager(appConfig.JWTSecret, appConfig.AccessTokenExpiry)
	if err != nil {
		appLogger.Fatalf("Failed to initialize JWT manager: %v", err)
	}
	jwtService := jwt.NewJWTService(jwtManager)
	randomGenerator := randomgenerator.NewRandomGenerator()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Dependency Injection: Usecases
	userUsecase := usecase.NewUserUsecase(userRepo, brokerRepo, hasher, jwtService, appLogger, appValidator, uuidGenerator)
	listingUsecase := usecase.NewListingUseCase(listingRepo, brokerRepo, userRepo, uuidGenerator, appLogger)
	brokerUsecase := usecase.NewBrokerUseCase(brokerRepo, userRepo, uuidGenerator, appLogger)

	// Optional Dependency Injection: Redis cache
	if appConfig.RedisURL != "" {
		rdb, err := redisclient.NewRedisFromURL(context.Background(), appConfig.RedisURL)
		if err != nil {
			appLogger.Warnf("redis unavailable, listing cache disabled: %v", err)
		} else {
			defer redisclient.Close(rdb)
			listingCache := store.NewListingCacheStore(rdb, appConfig.ListingCacheTTL)
			listingUsecase.SetListingCache(listingCache)
			brokerUsecase.SetListingCache(listingCache)
			userUsecase.SetListingCache(listingCache)
		}
	}

	// Bootstrap admin, so moderation is reachable on an empty store
	if appConfig.AdminSeedEnabled() {
		if _, created, err := userUsecase.EnsureAdmin(context.Background(), appConfig.AdminName, appConfig.AdminEmail, appConfig.AdminPhone, appConfig.AdminPassword); err != nil {
			appLogger.Fatalf("Failed to seed admin account: %v", err)
		} else if created {
			appLogger.Infof("admin account %s created", appConfig.AdminEmail)
		}
	} else if appConfig.StoreDriver == "memory" {
		appLogger.Warnf("ADMIN_EMAIL/ADMIN_PASSWORD not set, no admin can approve listings")
	}

	// Optional Dependency Injection: moderation mail
	if appConfig.MailEnabled() {
		listingUsecase.SetMailer(external_services.NewEmailService(
			appConfig.EmailHost, appConfig.EmailPort, appConfig.EmailUsername, appConfig.EmailAppPassword, appConfig.EmailFrom,
		))
	}

	if appConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Setup API routes
	appRouter := handlerHttp.NewRouter(userUsecase, listingUsecase, brokerUsecase, randomGenerator, appLogger, handlerHttp.RouterConfig{
		CORSAllowedOrigins: appConfig.CORSAllowedOrigins,
		RateLimitPerSecond: appConfig.RateLimitPerSecond,
		Cookie: handlerHttp.CookieOptions{
			MaxAge: appConfig.AccessTokenExpiry,
			Secure: appConfig.CookieSecure,
		},
		Google: handlerHttp.GoogleOAuthConfig{
			ClientID:     appConfig.GoogleClientID,
			ClientSecret: appConfig.GoogleClientSecret,
			BaseURL:      appConfig.AppBaseURL,
		},
		OAuthEnabled: appConfig.OAuthEnabled(),
	})
	appRouter.SetupRoutes(router)

	// Start the server
	appLogger.Infof("Server running on port %s (store=%s)", appConfig.Port, appConfig.StoreDriver)
	if err := router.Run(":" + appConfig.Port); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}
}
