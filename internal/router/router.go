package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/larder/backend/internal/api"
	"github.com/pageza/larder/backend/internal/middleware"
	"github.com/pageza/larder/backend/internal/service"
)

// Dependencies holds everything the HTTP surface is built from.
// Redis and PhotoStore are optional.
type Dependencies struct {
	DB              *gorm.DB
	Redis           *redis.Client
	Logger          *slog.Logger
	AllowedOrigins  []string
	AuthService     service.IAuthService
	RecipeService   service.IRecipeService
	PantryService   service.IPantryService
	ExternalService service.IExternalRecipeService
	PhotoStore      service.IPhotoStore
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Logger(logger),
		middleware.Metrics(),
		middleware.CORS(deps.AllowedOrigins),
		middleware.ErrorHandler(),
	)

	router.GET("/health", api.NewHealthHandler(deps.DB, deps.Redis).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.AuthMiddleware(deps.AuthService)

	apiGroup := router.Group("/api")
	api.NewAuthHandler(deps.AuthService).RegisterRoutes(apiGroup, requireAuth)

	protected := apiGroup.Group("")
	protected.Use(requireAuth)
	{
		api.NewRecipeHandler(deps.RecipeService, deps.PhotoStore).RegisterRoutes(protected)
		api.NewPantryHandler(deps.PantryService).RegisterRoutes(protected)
		api.NewExternalHandler(deps.ExternalService).RegisterRoutes(protected)
	}

	return router
}
