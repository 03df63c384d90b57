package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/PabloST8/xcorte-sub001/internal/account"
	accountHttp "github.com/PabloST8/xcorte-sub001/internal/account/http"
	"github.com/PabloST8/xcorte-sub001/internal/auth"
	"github.com/PabloST8/xcorte-sub001/internal/booking"
	bookingHttp "github.com/PabloST8/xcorte-sub001/internal/booking/http"
)

// Config holds everything the router needs from the container.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	AccountService account.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
	Health         HealthSource
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins(cfg.IsProduction, cfg.ProdOrigins)
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) == 0 {
		// No cross-origin callers configured
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// enterpriseMiddleware: the token must belong to the enterprise in the path.
	enterpriseMiddleware := auth.RequireEnterprise("email")
	// activeMiddleware: the account behind the token must still be active.
	activeMiddleware := RequireActiveAccount(cfg.AccountService)

	accountHandler := accountHttp.NewHandler(cfg.AccountService, cfg.JWTManager)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	if cfg.Health != nil {
		r.GET("/healthz", Health(cfg.Health))
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		accountHttp.RegisterRoutes(v1, accountHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, enterpriseMiddleware, activeMiddleware)
	}

	return r
}

func allowedOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8081", // Swagger
		}
	}

	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
