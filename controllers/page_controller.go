package controllers

import (
	"net/http"
	"path"
	"strings"

	"dfx-site/internal/models"
	"dfx-site/internal/web"
	"dfx-site/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

const mainPageTitle = "free VST plugins, free Audio Units"

// 站点根目录下允许直接访问的文件类型
var rootFileTypes = map[string]bool{
	".gif": true, ".png": true, ".jpg": true, ".ico": true,
	".html": true, ".css": true, ".js": true, ".txt": true,
}

// Directories of the site tree served as is.
var siteDirs = []string{services.SoftwareDir, services.DocsDir, services.AudioDir, "museum"}

type PageController struct {
	site   *services.Site
	siteFs afero.Fs
}

/**
 * Create page controller
 * @param {*services.Site} site - Page assembler
 * @param {afero.Fs} siteFs - Site tree for static downloads
 * @returns {*PageController} New page controller instance
 */
func NewPageController(site *services.Site, siteFs afero.Fs) *PageController {
	return &PageController{
		site:   site,
		siteFs: siteFs,
	}
}

/**
 * Register HTML pages and static files
 * @param {*gin.Engine} r - Gin router instance with templates from web.Templates
 * @description
 * - Pages: /, /extras/, /museum, /news, /hostapps, /docs, /source
 * - software/, docs/, audio/ and museum/ are served from the site tree
 * - Unknown paths fall back to root level images, then to the not found page
 */
func (p *PageController) RegisterRoutes(r *gin.Engine) {
	r.GET("/", p.Main)
	r.GET("/extras/", p.Extras)
	r.GET("/museum", p.Museum)
	r.GET("/news", p.News)
	r.GET("/hostapps", p.HostApps)
	r.GET("/docs", p.Docs)
	r.GET("/source", p.Source)

	r.StaticFS("/static", http.FS(web.Static()))
	httpFs := afero.NewHttpFs(p.siteFs)
	for _, dir := range siteDirs {
		r.StaticFS("/"+dir, httpFs.Dir(dir))
	}
	r.NoRoute(p.RootFile)
}

func (p *PageController) render(c *gin.Context, name string, page web.Page) {
	c.HTML(http.StatusOK, name, page)
}

func (p *PageController) Main(c *gin.Context) {
	cfg := p.site.Config()
	p.render(c, "index.html", web.NewPage(mainPageTitle, "#E88331", "orange.gif", cfg.RootPath,
		p.site.SoftwareBoxes(services.PageMain)))
}

func (p *PageController) Extras(c *gin.Context) {
	site := p.site.Nested("../")
	page := web.NewPage("Extras [handies & stupids]", "#60418E", "purple.gif", site.Config().RootPath,
		site.SoftwareBoxes(services.PageExtras))
	p.render(c, "index.html", page)
}

func (p *PageController) Museum(c *gin.Context) {
	p.render(c, "museum.html", web.NewPage("Museum", "#1E581F", "green.gif", p.site.Config().RootPath,
		p.site.Museum()))
}

func (p *PageController) News(c *gin.Context) {
	p.render(c, "news.html", web.NewPage("news & release infos", "#EF8431", "", p.site.Config().RootPath,
		p.site.News()))
}

// HostApps 宿主程序兼容性表格，查询参数控制过滤
func (p *PageController) HostApps(c *gin.Context) {
	listing := p.site.HostListing(c.Request.URL.Path, c.Request.URL.Query())
	p.render(c, "hostapps.html", web.NewPage("music plugin host softwares", "black", "", p.site.Config().RootPath,
		listing))
}

func (p *PageController) Docs(c *gin.Context) {
	p.render(c, "docs.html", web.NewPage("documentation", "#171947", "", p.site.Config().RootPath,
		p.site.Docs()))
}

func (p *PageController) Source(c *gin.Context) {
	p.render(c, "source.html", web.NewPage("source code", "#cb4496", "", p.site.Config().RootPath,
		p.site.SourcePackages()))
}

/**
 * Serve a root level site file or the not found page
 * @description
 * - Only GET/HEAD of a single path segment with a known extension is looked up
 */
func (p *PageController) RootFile(c *gin.Context) {
	name := strings.TrimPrefix(c.Request.URL.Path, "/")
	method := c.Request.Method
	if (method == http.MethodGet || method == http.MethodHead) &&
		name != "" && !strings.Contains(name, "/") && rootFileTypes[strings.ToLower(path.Ext(name))] &&
		p.site.Resolver().Exists(name) {
		c.FileFromFS(name, afero.NewHttpFs(p.siteFs).Dir("."))
		return
	}
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Code: "route.not_found", Message: "Route not found"})
		return
	}
	c.HTML(http.StatusNotFound, "notfound.html", web.NewPage("not found", "#E88331", "", p.site.Config().RootPath,
		c.Request.URL.Path))
}

// parseFilters 读取请求中的过滤条件
func parseFilters(c *gin.Context) models.FilterSet {
	return models.ParseFilterSet(c.Request.URL.Query())
}
