package controllers

import (
	"errors"
	"net/http"

	"dfx-site/services"

	"github.com/gin-gonic/gin"
)

type SoftwareController struct {
	site *services.Site
}

func NewSoftwareController(site *services.Site) *SoftwareController {
	return &SoftwareController{
		site: site,
	}
}

/**
 * Register software API routes
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - Registers routes for:
 *   - Software list
 *   - Current downloads of a software
 *   - Museum releases of a software
 */
func (s *SoftwareController) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	api.GET("/software", s.ListSoftware)
	api.GET("/software/:name/downloads", s.Downloads)
	api.GET("/museum/:name", s.Museum)
}

// @Summary 软件列表
// @Tags Software
// @Produce json
// @Success 200 {array} models.Software
// @Router /api/v1/software [get]
func (s *SoftwareController) ListSoftware(c *gin.Context) {
	c.JSON(http.StatusOK, s.site.Catalog().Software)
}

// @Summary 当前版本下载链接
// @Description 解析Mac OS X、Windows、旧Mac OS和源码的下载状态
// @Tags Software
// @Param name path string true "软件名称或slug"
// @Success 200 {array} models.DownloadLink
// @Failure 404 {object} models.ErrorResponse "{"code": "software.not_found", "message": "Software not found"}"
// @Router /api/v1/software/{name}/downloads [get]
func (s *SoftwareController) Downloads(c *gin.Context) {
	links, err := s.site.CurrentDownloads(c.Param("name"))
	if err != nil {
		respondSoftwareError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// @Summary 博物馆中的旧版本
// @Tags Software
// @Param name path string true "软件名称或slug"
// @Success 200 {object} services.MuseumSection
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/museum/{name} [get]
func (s *SoftwareController) Museum(c *gin.Context) {
	section, err := s.site.MuseumSection(c.Param("name"))
	if err != nil {
		respondSoftwareError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func respondSoftwareError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSoftwareNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "software.not_found",
			"message": "Software not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":    "software.lookup_failed",
		"message": err.Error(),
	})
}
