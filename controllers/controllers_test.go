package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dfx-site/internal/auth"
	"dfx-site/internal/config"
	"dfx-site/internal/models"
	"dfx-site/internal/web"
	"dfx-site/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerCatalog = `
software:
  - name: Foo Bar
    page: main
    title_image: dfx-foobar.gif
    versions:
      - version: "1.1"
        date: "2005-09-09"
  - name: Tool
    page: extras
    plugin: false
museum:
  - name: Foo Bar
    releases:
      - version: "1.0"
        date: "2004-01-01"
        windows: museum/foobar-1.0-win.zip
        mac: "?"
hosts:
  - name: zebra host
    au: true
    tempo: true
  - name: Alpha Host
    au: "10.2"
    tempo: "?"
  - name: beta
    vst: true
`

const testAdminSecret = "s3cret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/catalog.yaml", []byte(routerCatalog), 0644))
	require.NoError(t, afero.WriteFile(fs, "software/foobar-win.zip", make([]byte, 2048), 0644))
	require.NoError(t, afero.WriteFile(fs, "museum/foobar-1.0-win.zip", []byte("zip"), 0644))
	require.NoError(t, afero.WriteFile(fs, "dfx-foobar.gif", []byte("GIF89a"), 0644))
	require.NoError(t, afero.WriteFile(fs, "docs/rms_buddy.html", []byte("<html></html>"), 0644))
	require.NoError(t, afero.WriteFile(fs, "docs/transverb.html", []byte("<html></html>"), 0644))
	updated := time.Date(2004, time.March, 7, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("docs/rms_buddy.html", updated, updated))

	store, err := services.NewCatalogStore(fs, "/catalog.yaml")
	require.NoError(t, err)
	site := services.NewSite(config.SiteConfig{ContactAnchor: "./#contact"}, fs, store)
	cfg := &config.AppConfig{Server: config.ServerConfig{AdminSecret: testAdminSecret}, Site: site.Config()}
	server := services.NewServer(cfg, site)

	tmpl, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	NewPageController(site, fs).RegisterRoutes(r)
	NewAPIController(server).RegisterRoutes(r)
	NewSoftwareController(site).RegisterRoutes(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPages(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/", []string{"<title>Destroy FX : free VST plugins, free Audio Units</title>", `alt="Foo Bar"`, `href="software/foobar-win.zip"`, `href="static/dfx.css"`}},
		{"/extras/", []string{"Extras [handies &amp; stupids]", "Tool", `src="../`, `href="../static/dfx.css"`}},
		{"/museum", []string{"Foo Bar", "<b>missing</b>", `href="museum/foobar-1.0-win.zip"`}},
		{"/news", []string{"Destroy FX news", "news2005-09-09"}},
		{"/hostapps", []string{"Alpha Host", "zebra host", "beta"}},
		{"/docs", []string{"documentation", "last updated", "RMS Buddy", "March 7th 2004", `<tr class="other_row">`, "Transverb"}},
		{"/source", []string{"source code"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(r, tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			for _, s := range tt.want {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHostAppsFiltered(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/hostapps?au=1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "view all 3 hosts")
	assert.Contains(t, body, "zebra host")
	assert.Contains(t, body, "Alpha Host")
	assert.NotContains(t, body, ">beta<")

	w = get(r, "/hostapps")
	assert.NotContains(t, w.Body.String(), "view all")
}

func TestListHostsAPI(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/api/v1/hosts?tempo=1")
	require.Equal(t, http.StatusOK, w.Code)
	var hosts []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hosts))
	require.Len(t, hosts, 1, "an uncertain capability never matches a filter")
	assert.Equal(t, "zebra host", hosts[0]["name"])

	w = get(r, "/api/v1/hosts")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hosts))
	var names []string
	for _, h := range hosts {
		names = append(names, h["name"].(string))
	}
	assert.Equal(t, []string{"Alpha Host", "beta", "zebra host"}, names)
}

func TestSoftwareAPI(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/api/v1/software/foobar/downloads")
	require.Equal(t, http.StatusOK, w.Code)
	var links []models.DownloadLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	require.Len(t, links, 4)
	assert.Equal(t, "unavailable", links[0].State)
	assert.Equal(t, "available", links[1].State)
	assert.Equal(t, "software/foobar-win.zip", links[1].Href)

	w = get(r, "/api/v1/software/nothing/downloads")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "software.not_found")

	w = get(r, "/api/v1/museum/Foo%20Bar")
	require.Equal(t, http.StatusOK, w.Code)
	var section services.MuseumSection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &section))
	require.Len(t, section.Rows, 1)
	assert.Equal(t, "1.0", section.Rows[0].Version)

	w = get(r, "/api/v1/software")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tool")
}

func TestReloadAndHealthz(t *testing.T) {
	r := newTestRouter(t)

	token, err := auth.SignAdminToken(testAdminSecret, time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	var health models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "UP", health.Status)
	assert.Equal(t, 2, health.Metrics.Software)
	assert.Equal(t, 3, health.Metrics.Hosts)
}

func TestReloadRequiresAdminToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth.unauthorized")

	forged, err := auth.SignAdminToken("guessed", time.Minute)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaticAndRootFiles(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/software/foobar-win.zip")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2048, w.Body.Len())

	w = get(r, "/dfx-foobar.gif")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "GIF89a"))

	w = get(r, "/static/dfx.css")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/nowhere.gif")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")

	w = get(r, "/api/v1/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "route.not_found")
}
