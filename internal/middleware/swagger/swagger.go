package swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/iwtcode/velvetpour/docs"
)

// Config содержит настройки для Swagger
type Config struct {
	Enabled bool
	Path    string
}

// Setup подключает UI документации по адресу cfg.Path
func Setup(r *gin.Engine, cfg *Config) {
	if cfg == nil || !cfg.Enabled {
		return
	}
	r.GET(cfg.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DocExpansion("list"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
