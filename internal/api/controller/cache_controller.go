package controller

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/haoyun/tianji/internal/api/response"
	"github.com/haoyun/tianji/internal/cache"
)

// CacheController 缓存运维接口，全部挂在管理员路由组下。
type CacheController struct {
	store cache.Store
}

// NewCacheController 构造函数
func NewCacheController(store cache.Store) *CacheController {
	return &CacheController{store: store}
}

// Stats 缓存统计
// @Summary 缓存统计
// @Description 条目数、总大小、最旧/最新时间与命中总数。只读。
// @Tags Cache
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=cache.Stats}
// @Router /cache/stats [get]
func (ctrl *CacheController) Stats(c *gin.Context) {
	response.Success(c, ctrl.store.Stats())
}

// Cleanup 清理过期条目
// @Summary 清理过期缓存
// @Description 立即执行一轮过期清扫，返回删除数量。
// @Tags Cache
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cache/cleanup [post]
func (ctrl *CacheController) Cleanup(c *gin.Context) {
	removed := ctrl.store.Cleanup()
	slog.Info("手动触发缓存清理", "removed", removed, "admin", c.GetString("adminSubject"))
	response.Success(c, gin.H{"removed": removed})
}

// Clear 清空缓存
// @Summary 清空缓存
// @Description 无条件删除全部缓存条目，返回删除数量。
// @Tags Cache
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cache/clear [post]
func (ctrl *CacheController) Clear(c *gin.Context) {
	removed := ctrl.store.Clear()
	slog.Warn("缓存已被清空", "removed", removed, "admin", c.GetString("adminSubject"))
	response.Success(c, gin.H{"removed": removed})
}
