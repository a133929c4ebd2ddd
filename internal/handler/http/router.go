package http

import (
	"net/http"
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/contract"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/middleware"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/logger"
	usecasecontract "github.com/CHANDU-143-ashok/mangocropconnect/internal/usecase/contract"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the transport settings read from configuration.
type RouterConfig struct {
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	Cookie             CookieOptions
	Google             GoogleOAuthConfig
	OAuthEnabled       bool
}

type Router struct {
	userHandler    *UserHandler
	listingHandler *ListingHandler
	brokerHandler  *BrokerHandler
	authHandler    *AuthHandler
	userUsecase    usecasecontract.IUserUseCase
	logger         *logger.ZapLogger
	config         RouterConfig
}

func NewRouter(
	userUsecase usecasecontract.IUserUseCase,
	listingUsecase usecasecontract.IListingUseCase,
	brokerUsecase usecasecontract.IBrokerUseCase,
	randomGen contract.IRandomGenerator,
	log *logger.ZapLogger,
	config RouterConfig,
) *Router {
	if len(config.CORSAllowedOrigins) == 0 {
		config.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}
	userHandler := NewUserHandler(userUsecase, config.Cookie)
	return &Router{
		userHandler:    userHandler,
		listingHandler: NewListingHandler(listingUsecase),
		brokerHandler:  NewBrokerHandler(brokerUsecase),
		authHandler:    NewAuthHandler(userUsecase, userHandler, randomGen, config.Google),
		userUsecase:    userUsecase,
		logger:         log,
		config:         config,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestID(), middleware.RequestLogger(r.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     r.config.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimiter(middleware.NewLimiter(r.config.RateLimitPerSecond)))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	optional := middleware.OptionalAuth(r.userUsecase)
	required := middleware.AuthMiddleWare(r.userUsecase)
	admin := middleware.RequireAdmin()

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.userHandler.CreateUser)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/logout", r.userHandler.Logout)
		auth.GET("/profile", required, r.userHandler.GetCurrentUser)
		auth.PUT("/profile", required, r.userHandler.UpdateUser)

		if r.config.OAuthEnabled {
			auth.GET("/google/login", r.authHandler.HandleGoogleLogin)
			auth.GET("/google/callback", r.authHandler.HandleGoogleCallback)
		}

		users := auth.Group("/users", required, admin)
		users.GET("", r.userHandler.ListUsers)
		users.GET("/:id", r.userHandler.GetUser)
		users.DELETE("/:id", r.userHandler.DeleteUser)
		users.PUT("/:id/role", r.userHandler.ChangeRole)
	}

	listings := api.Group("/listings")
	{
		listings.GET("", optional, r.listingHandler.ListListings)
		listings.GET("/:id", optional, r.listingHandler.GetListing)
		listings.POST("", optional, r.listingHandler.CreateListing)
		listings.PUT("/:id", required, r.listingHandler.UpdateListing)
		listings.DELETE("/:id", required, r.listingHandler.DeleteListing)
		listings.PUT("/:id/approve", required, admin, r.listingHandler.ApproveListing)
		listings.PUT("/:id/reject", required, admin, r.listingHandler.RejectListing)
		listings.PUT("/:id/feature", required, admin, r.listingHandler.FeatureListing)
	}

	api.GET("/admin/listings/stats", required, admin, r.listingHandler.ListingStats)

	brokers := api.Group("/brokers")
	{
		brokers.GET("", r.brokerHandler.ListBrokers)
		brokers.GET("/:id", r.brokerHandler.GetBroker)
		brokers.POST("", required, r.brokerHandler.CreateBroker)
		brokers.PUT("/:id", required, r.brokerHandler.UpdateBroker)
		brokers.DELETE("/:id", required, r.brokerHandler.DeleteBroker)
		brokers.PUT("/:id/verify", required, admin, r.brokerHandler.VerifyBroker)
		brokers.POST("/:id/ratings", required, r.brokerHandler.RateBroker)
	}
}
