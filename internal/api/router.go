package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fleetyard/rental-backend/internal/auth"
	"github.com/fleetyard/rental-backend/internal/booking"
	bookingHttp "github.com/fleetyard/rental-backend/internal/booking/http"
	"github.com/fleetyard/rental-backend/internal/client"
	clientHttp "github.com/fleetyard/rental-backend/internal/client/http"
	exportHttp "github.com/fleetyard/rental-backend/internal/export/http"
	"github.com/fleetyard/rental-backend/internal/metrics"
	"github.com/fleetyard/rental-backend/internal/pkg/logger"
	"github.com/fleetyard/rental-backend/internal/user"
	userHttp "github.com/fleetyard/rental-backend/internal/user/http"
	"github.com/fleetyard/rental-backend/internal/vehicle"
	vehicleHttp "github.com/fleetyard/rental-backend/internal/vehicle/http"
)

// Config carries everything the router needs to assemble middleware and
// register module routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	VehicleService vehicle.Service
	ClientService  client.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
	Logger         zerolog.Logger
}

// NewRouter initializes the HTTP router engine: global middleware (request
// logging, recovery, CORS, metrics), the /metrics and /healthz endpoints,
// and the /v1 module routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(logger.RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	metrics.Register()
	r.Use(metrics.Middleware())
	r.GET("/metrics", metrics.Handler())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	vehicleHandler := vehicleHttp.NewHandler(cfg.VehicleService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	exportHandler := exportHttp.NewHandler(cfg.BookingService, cfg.VehicleService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		exportHttp.RegisterRoutes(v1, exportHandler, authMiddleware)
	}

	return r
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
