package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/haoyun/tianji/internal/api/controller"
	"github.com/haoyun/tianji/internal/api/middleware"

	_ "github.com/haoyun/tianji/docs"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, jwtSecret string, readingCtrl *controller.ReadingController, cacheCtrl *controller.CacheController) {
	r.Use(middleware.Cors())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 报告接口匿名开放
	public := r.Group("/api/v1")
	{
		public.POST("/readings", readingCtrl.Generate)
		public.POST("/chart", readingCtrl.Chart)
	}

	// 缓存运维接口需要管理 Token
	admin := r.Group("/api/v1/cache")
	admin.Use(middleware.AdminAuth(jwtSecret))
	{
		admin.GET("/stats", cacheCtrl.Stats)
		admin.POST("/cleanup", cacheCtrl.Cleanup)
		admin.POST("/clear", cacheCtrl.Clear)
	}
}
