package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/inkwell/blog-api/docs"
	"github.com/inkwell/blog-api/internal/api/handler"
	"github.com/inkwell/blog-api/internal/api/middleware"
	"github.com/inkwell/blog-api/internal/core/ports"
	"github.com/inkwell/blog-api/internal/infrastructure/http/handlers"
)

// RouterConfig holds the HTTP-level settings.
type RouterConfig struct {
	ClientURI                string
	RegistrationRequiresAuth bool
	UploadMaxSize            string
	LoginRateLimit           float64
	LoginRateBurst           int

	// Metrics registry for HTTP metrics. Nil uses the Prometheus default
	// registry, which also carries the service's own metrics.
	MetricsRegistry *prometheus.Registry
}

// Services are the use cases and collaborators the routes are wired to.
type Services struct {
	Auth     ports.AuthService
	Posts    ports.PostService
	Images   ports.ImageService
	Sessions ports.SessionIssuer
	Users    middleware.UserLookup
	// Readiness checks are keyed by dependency name.
	Readiness map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(corsConfig(cfg.ClientURI)))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if cfg.MetricsRegistry != nil {
		registerer, gatherer = cfg.MetricsRegistry, cfg.MetricsRegistry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "blog",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	postHandler := handler.NewPostHandler(svc.Posts)
	imageHandler := handler.NewImageHandler(svc.Images)
	guard := middleware.Auth(svc.Sessions, svc.Users)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, middleware.Optional(cfg.RegistrationRequiresAuth, guard))
	auth.POST("/login", authHandler.Login, loginLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst))
	auth.GET("/user/:id", authHandler.GetUser)

	// --- Post routes ---
	api.GET("/posts", postHandler.List)
	api.GET("/posts/dashboard", postHandler.Dashboard, guard)
	api.GET("/posts/:id", postHandler.Get)
	api.POST("/posts", postHandler.Create, guard)
	api.PUT("/posts/:id", postHandler.Update, guard)
	api.DELETE("/posts/:id", postHandler.Delete, guard)

	// --- Image routes ---
	uploads := api.Group("/uploadImage", guard)
	uploads.POST("/imageByFile", imageHandler.UploadDraft, echomiddleware.BodyLimit(uploadLimit(cfg.UploadMaxSize)))
	uploads.POST("/imageByFilePublished", imageHandler.Publish)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(svc.Readiness)

	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(clientURI string) echomiddleware.CORSConfig {
	origins := []string{"*"}
	if clientURI != "" {
		origins = []string{clientURI}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}
}

// loginLimiter throttles login attempts per client IP.
func loginLimiter(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 5
	}
	if burst <= 0 {
		burst = 10
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		},
	})
}

func uploadLimit(size string) string {
	if size == "" {
		return "10M"
	}
	return size
}
