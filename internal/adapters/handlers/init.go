package handlers

import (
	"net/http"

	"github.com/iwtcode/velvetpour/internal/adapters/observers"
	"github.com/iwtcode/velvetpour/internal/config"
	"github.com/iwtcode/velvetpour/internal/interfaces"
	"github.com/iwtcode/velvetpour/internal/middleware/logging"
	"github.com/iwtcode/velvetpour/internal/middleware/swagger"

	"github.com/gin-gonic/gin"
)

const welcomeMessage = "Benvenuto nelle API di VelvetPour"

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase interfaces.Usecases
	status  interfaces.StatusService
	hub     *observers.Hub
	logger  *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, status interfaces.StatusService, hub *observers.Hub, logger *logging.Logger) *Handler {
	return &Handler{
		usecase: usecase,
		status:  status,
		hub:     hub,
		logger:  logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Swagger
	swagger.Setup(router, swagCfg)

	router.GET("/", h.Welcome)

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		bottles := v1.Group("/bottles")
		{
			bottles.GET("", h.GetBottles)
			bottles.GET("/mounted", h.GetMountedBottles)
		}

		drinks := v1.Group("/drinks")
		{
			drinks.GET("/available", h.GetAvailableDrinks)
			drinks.GET("/:id", h.GetDrink)
		}

		v1.POST("/prepare/:drink_id", h.PrepareDrink)
		v1.GET("/status", h.GetStatus)

		valves := v1.Group("/valves")
		{
			valves.POST("/:id/open", h.OpenValve)
			valves.POST("/:id/close", h.CloseValve)
		}
	}

	router.GET("/ws", h.Observe)

	return router
}

// Welcome отдает приветствие API.
func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, welcomeMessage)
}
