// Package router 组装gin引擎：中间件、路由、文档和指标端点
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/biblioteca/docs"
	"github.com/xiebiao/biblioteca/internal/infrastructure/config"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/handler"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
	"github.com/xiebiao/biblioteca/pkg/metrics"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// New 创建gin引擎并注册全部路由
// gin运行模式由调用方通过gin.SetMode设置
func New(cfg *config.Config, log *zap.Logger, books *handler.BookHandler) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("注册校验器失败: %w", err)
	}

	r := gin.New()
	r.Use(
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.SecurityHeaders(),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.FrontendURL)),
	)
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
	}

	// 健康检查和运维端点不限流
	r.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.Swagger.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	libros := api.Group("/libros")
	{
		libros.GET("", books.List)
		libros.POST("", books.Create)

		libros.GET("/buscar", books.Search)
		libros.GET("/generos", books.Genres)
		libros.GET("/autores", books.Authors)

		filtrar := libros.Group("/filtrar")
		filtrar.GET("/genero/:genero", books.FilterByGenre)
		filtrar.GET("/autor/:autor", books.FilterByAuthor)
		filtrar.GET("/estado/:estado", books.FilterByStatus)

		libros.GET("/:id", books.Get)
		libros.PUT("/:id", books.Update)
		libros.DELETE("/:id", books.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	return r, nil
}

// Server 包装http.Server，超时取自配置
func Server(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
