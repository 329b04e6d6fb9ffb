package services

import (
	"time"

	"dfx-site/internal/config"
	"dfx-site/internal/env"
	"dfx-site/internal/models"
)

type Server struct {
	cfg       *config.AppConfig
	site      *Site
	startTime time.Time
}

/**
 * Create new server instance
 * @param {*config.AppConfig} cfg - Application configuration
 * @param {*Site} site - Page assembler serving the site tree
 * @returns {*Server} Returns new server instance
 */
func NewServer(cfg *config.AppConfig, site *Site) *Server {
	return &Server{
		cfg:       cfg,
		site:      site,
		startTime: time.Now(),
	}
}

func (s *Server) Config() *config.AppConfig {
	return s.cfg
}

func (s *Server) Site() *Site {
	return s.site
}

/**
 * Reload the catalog
 * @returns {error} Parse error; the previous catalog keeps serving
 */
func (s *Server) Reload() error {
	return s.site.Store().Reload()
}

/**
 * Get health check response
 * @returns {models.HealthResponse} Version, start time, uptime and key statistics
 * @description
 * - Counts come from the catalog currently served
 * - Request totals come from the local counters of the metrics middleware
 */
func (s *Server) GetHealthz() models.HealthResponse {
	uptime := time.Since(s.startTime)

	cat := s.site.Catalog()
	loaded := s.site.Store().LoadedAt()

	return models.HealthResponse{
		Version:   env.Version,
		StartTime: s.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    uptime.Truncate(time.Second).String(),
		Metrics: models.Metrics{
			TotalRequests: GetTotalRequestCount(),
			ErrorRequests: GetTotalErrorCount(),
			Software:      len(cat.Software),
			MuseumItems:   len(cat.Museum),
			Hosts:         len(cat.Hosts),
			CatalogLoaded: loaded.Format(time.RFC3339),
		},
	}
}
