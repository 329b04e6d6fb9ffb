package services

import (
	"fmt"
	"sort"
	"sync/atomic"

	"dfx-site/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJobName = "dfx_site"

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_request_total",
			Help: "Total site requests",
		},
		[]string{"route"},
	)

	requestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_request_errors_total",
			Help: "Site requests answered with a status >= 400",
		},
		[]string{"route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "site_request_duration_seconds",
			Help:    "Duration of site requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	downloadLinks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_download_links_total",
			Help: "Download links resolved, by platform and state",
		},
		[]string{"platform", "state"},
	)

	catalogReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_catalog_reloads_total",
			Help: "Catalog reload attempts",
		},
		[]string{"result"},
	)

	// prometheus计数器不便读取，健康检查使用本地计数
	totalRequests int64
	totalErrors   int64
)

func init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestErrors)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(downloadLinks)
	prometheus.MustRegister(catalogReloads)
}

// IncrementRequestCount 增加请求计数
func IncrementRequestCount(route string) {
	requestCount.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalRequests, 1)
}

// IncrementErrorCount 增加错误请求计数
func IncrementErrorCount(route string) {
	requestErrors.WithLabelValues(route).Inc()
	atomic.AddInt64(&totalErrors, 1)
}

// RecordRequestDuration 记录请求耗时(秒)
func RecordRequestDuration(route string, seconds float64) {
	requestDuration.WithLabelValues(route).Observe(seconds)
}

func GetTotalRequestCount() int64 {
	return atomic.LoadInt64(&totalRequests)
}

func GetTotalErrorCount() int64 {
	return atomic.LoadInt64(&totalErrors)
}

func recordDownloadLink(platform, state string) {
	downloadLinks.WithLabelValues(platform, state).Inc()
}

func recordCatalogReload(err error) {
	if err != nil {
		catalogReloads.WithLabelValues("failed").Inc()
		return
	}
	catalogReloads.WithLabelValues("ok").Inc()
}

// LinkAudit 某平台某状态的下载链接数量
type LinkAudit struct {
	Platform string `json:"platform"`
	State    string `json:"state"`
	Count    int    `json:"count"`
}

/**
 * Resolve every download cell of the site and count them
 * @param {*Site} site - Site to audit
 * @returns {[]LinkAudit} Counts by platform and state, sorted by platform then state
 * @description
 * - Covers the main page, the extras page and the museum
 */
func AuditLinks(site *Site) []LinkAudit {
	counts := map[[2]string]int{}
	add := func(links ...models.DownloadLink) {
		for _, l := range links {
			counts[[2]string{l.Platform.String(), l.State}]++
		}
	}
	for _, page := range []string{PageMain, PageExtras} {
		for _, box := range site.SoftwareBoxes(page) {
			add(box.Downloads...)
			add(box.Source)
		}
	}
	for _, sec := range site.Museum() {
		for _, row := range sec.Rows {
			add(row.Downloads...)
		}
	}

	audit := make([]LinkAudit, 0, len(counts))
	for k, n := range counts {
		audit = append(audit, LinkAudit{Platform: k[0], State: k[1], Count: n})
	}
	sort.Slice(audit, func(i, j int) bool {
		if audit[i].Platform != audit[j].Platform {
			return audit[i].Platform < audit[j].Platform
		}
		return audit[i].State < audit[j].State
	})
	return audit
}

/**
 * Push a link audit to a Prometheus Pushgateway
 * @param {string} addr - Pushgateway URL
 * @param {[]LinkAudit} audit - Result of AuditLinks
 * @returns {error} Push error
 */
func PushLinkAudit(addr string, audit []LinkAudit) error {
	if addr == "" {
		return fmt.Errorf("pushgateway address is empty")
	}
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "site_download_link_states",
			Help: "Download cells of the whole site by platform and state",
		},
		[]string{"platform", "state"},
	)
	for _, a := range audit {
		gauge.WithLabelValues(a.Platform, a.State).Set(float64(a.Count))
	}
	if err := push.New(addr, pushJobName).Collector(gauge).Push(); err != nil {
		return fmt.Errorf("push to '%s' failed: %w", addr, err)
	}
	return nil
}
