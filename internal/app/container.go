package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PabloST8/xcorte-sub001/internal/account"
	"github.com/PabloST8/xcorte-sub001/internal/api"
	"github.com/PabloST8/xcorte-sub001/internal/auth"
	"github.com/PabloST8/xcorte-sub001/internal/booking"
	"github.com/PabloST8/xcorte-sub001/internal/docstore"
	"github.com/PabloST8/xcorte-sub001/internal/metrics"
)

const metricsNamespace = "xcorte"

// Config holds the dependencies and settings required to start the application.
// DBPool may be nil, in which case bookings are held by the fallback store only.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	Location             *time.Location
	ConflictMode         string
	PrimaryPingTimeout   time.Duration
	PrimaryStoreDisabled bool
	MetricsEnabled       bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	AccountService account.Service
	BookingService booking.Service
	Fallback       *booking.MemoryStore
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	mode, err := booking.ParseConflictMode(cfg.ConflictMode)
	if err != nil {
		return nil, fmt.Errorf("invalid conflict mode: %w", err)
	}

	// Session gate over the primary store
	var session booking.SessionProvider = auth.StaticSession(false)
	var primary booking.Store
	if cfg.DBPool != nil && !cfg.PrimaryStoreDisabled {
		ps := auth.NewPoolSession(cfg.DBPool, cfg.PrimaryPingTimeout)
		ps.HasSession(context.Background())
		session = ps
		primary = booking.NewDocumentStore(docstore.NewPgxRepository(cfg.DBPool))
	}

	// Account Module
	accountRepo := account.NewPgxRepository(cfg.DBPool)
	accountService := account.NewService(accountRepo, passwordHasher)

	// Metrics
	var m *metrics.Metrics
	var observer booking.FallbackObserver
	if cfg.MetricsEnabled {
		m = metrics.New(metricsNamespace)
		observer = m
	}

	// Booking Module
	fallback := booking.NewMemoryStore()
	bookingService := booking.NewService(primary, fallback, session, booking.Options{
		Validator: booking.Validator{Mode: mode},
		Location:  cfg.Location,
		Observer:  observer,
	})

	health := &healthSource{session: session, bookings: bookingService}

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		AccountService: accountService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Health:         health,
	}
	if m != nil {
		m.RegisterPending(metricsNamespace, bookingService.PendingLocal)
		m.RegisterPrimaryUp(metricsNamespace, health.PrimaryUp)
		routerParams.Metrics = m.Handler()
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		AccountService: accountService,
		BookingService: bookingService,
		Fallback:       fallback,
	}, nil
}
