package controllers

import (
	"net/http"

	"dfx-site/internal/middleware"
	"dfx-site/services"

	"github.com/gin-gonic/gin"
)

type APIController struct {
	server *services.Server
}

/**
 * Create new API controller instance
 * @param {*services.Server} server - Server holding the site and its catalog
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(server *services.Server) *APIController {
	return &APIController{
		server: server,
	}
}

/**
 * Register all API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Catalog reload (admin token or Unix socket)
 *   - Host compatibility data
 *   - Health probe
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.POST("/reload", middleware.AdminAuth(a.server.Config().Server.AdminSecret), a.Reload)
	api.GET("/hosts", a.ListHosts)
	r.GET("/healthz", a.Healthz)
}

// @Summary 重新加载目录
// @Description 从内容文件重新读取软件、博物馆和宿主程序数据
// @Tags Catalog
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/reload [post]
func (a *APIController) Reload(c *gin.Context) {
	if err := a.server.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "catalog.reload_failed",
			"message": "Failed to reload catalog: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Catalog reloaded successfully",
	})
}

// @Summary 宿主程序列表
// @Description 按查询参数(au, vst, tempo, midi, instruments, mac, windows)过滤后的宿主程序
// @Tags Hosts
// @Produce json
// @Success 200 {array} models.HostEntry
// @Router /api/v1/hosts [get]
func (a *APIController) ListHosts(c *gin.Context) {
	listing := services.BuildListing(a.server.Site().Catalog().Hosts, parseFilters(c))
	c.JSON(http.StatusOK, listing)
}

// @Summary 业务就绪探针
// @Description 返回服务版本、启动时间、健康状态和关键指标统计结果
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, a.server.GetHealthz())
}
