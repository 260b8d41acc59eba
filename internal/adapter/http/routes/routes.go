package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "polarizados_ya/docs"
	"polarizados_ya/internal/adapter/http/handlers"
	"polarizados_ya/internal/adapter/http/middleware"
	"polarizados_ya/internal/config"
	"polarizados_ya/internal/infrastructure/logger"
	"polarizados_ya/internal/infrastructure/metrics"
	"polarizados_ya/internal/usecase"
	"polarizados_ya/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const apiBanner = "PolarizadosYA! API v1.0"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Users        *handlers.UserHandler
	Vehicles     *handlers.VehicleHandler
	Appointments *handlers.AppointmentHandler
	Inspections  *handlers.InspectionHandler
	Quotes       *handlers.QuoteHandler
	ServiceOrder *handlers.ServiceOrderHandler
	Notification *handlers.NotificationHandler
	Dashboard    *handlers.DashboardHandler
}

// NewRouter builds the gin engine with the middleware chain and every route.
// Background upkeep started here stops when ctx is done.
func NewRouter(ctx context.Context, cfg *config.Config, auth usecase.IAuthUseCase, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	setMiddlewares(router, cfg)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": apiBanner})
	})

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	go loginLimiter.Run(ctx, time.Minute)
	addAuthRoutes(api, h.Auth, middleware.Auth(auth), loginLimiter.Middleware())

	// Everything below requires a bearer token.
	private := api.Group("", middleware.Auth(auth))
	addUserRoutes(private, h.Users)
	addVehicleRoutes(private, h.Vehicles)
	addAppointmentRoutes(private, h.Appointments)
	addInspectionRoutes(private, h.Inspections)
	addQuoteRoutes(private, h.Quotes)
	addServiceOrderRoutes(private, h.ServiceOrder)
	addNotificationRoutes(private, h.Notification)
	addDashboardRoutes(private, h.Dashboard)

	return router
}

// Run serves router until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Get().Info("[http] listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Get().Info("[http] shutting down")
	return srv.Shutdown(shutdownCtx)
}

func setMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithContext(c.Request.Context()).Error("[http] recovered from panic", zap.Any("panic", recovered))
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	}))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	router.Use(metrics.GinMiddleware())
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.CorrelationIDHeader)
	c.ExposeHeaders = []string{middleware.CorrelationIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
