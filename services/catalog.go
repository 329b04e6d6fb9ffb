package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"dfx-site/internal/content"
	"dfx-site/internal/logger"
	"dfx-site/internal/models"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	PageMain   = "main"
	PageExtras = "extras"
)

// ErrSoftwareNotFound is returned by catalog lookups of unknown names.
var ErrSoftwareNotFound = errors.New("software not found")

// Catalog 站点静态数据
type Catalog struct {
	Software []models.Software   `yaml:"software"`
	Museum   []models.MuseumItem `yaml:"museum"`
	Hosts    []models.HostEntry  `yaml:"hosts"`
}

/**
 * Parse a catalog document
 * @param {[]byte} data - YAML document
 * @returns {*Catalog} Parsed and validated catalog
 * @returns {error} Syntax errors, unknown fields or validation errors
 */
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

/**
 * Check catalog consistency
 * @returns {error} All problems joined, nil when the catalog is usable
 */
func (c *Catalog) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, sw := range c.Software {
		if sw.Name == "" {
			errs = append(errs, fmt.Errorf("software #%d: empty name", i+1))
			continue
		}
		if seen[sw.Name] {
			errs = append(errs, fmt.Errorf("software '%s': duplicated", sw.Name))
		}
		seen[sw.Name] = true
		if sw.Page != PageMain && sw.Page != PageExtras {
			errs = append(errs, fmt.Errorf("software '%s': unknown page '%s'", sw.Name, sw.Page))
		}
	}
	for i, item := range c.Museum {
		if item.Name == "" {
			errs = append(errs, fmt.Errorf("museum #%d: empty name", i+1))
		}
		for _, rel := range item.Releases {
			if rel.Version == "" {
				errs = append(errs, fmt.Errorf("museum '%s': release without version", item.Name))
			}
		}
	}
	for i, h := range c.Hosts {
		if h.Name == "" {
			errs = append(errs, fmt.Errorf("host #%d: empty name", i+1))
		}
	}
	return errors.Join(errs...)
}

// FindSoftware looks a software up by display name or slug.
func (c *Catalog) FindSoftware(name string) (*models.Software, error) {
	for i := range c.Software {
		sw := &c.Software[i]
		if sw.Name == name || slugOf(sw.Name) == name {
			return sw, nil
		}
	}
	return nil, ErrSoftwareNotFound
}

// FindMuseumItem looks a museum entry up by display name or slug.
func (c *Catalog) FindMuseumItem(name string) (*models.MuseumItem, error) {
	for i := range c.Museum {
		item := &c.Museum[i]
		if item.Name == name || slugOf(item.Name) == name {
			return item, nil
		}
	}
	return nil, ErrSoftwareNotFound
}

// SoftwareOnPage keeps registration order.
func (c *Catalog) SoftwareOnPage(page string) []models.Software {
	var list []models.Software
	for _, sw := range c.Software {
		if sw.Page == page {
			list = append(list, sw)
		}
	}
	return list
}

/**
 * Catalog holder shared by all requests
 * @description
 * - Readers always see a complete catalog, reloads swap it atomically
 * - path "" serves the built-in catalog
 */
type CatalogStore struct {
	fs       afero.Fs
	path     string
	current  atomic.Pointer[Catalog]
	loadedAt atomic.Pointer[time.Time]
}

/**
 * Create a catalog store and load it once
 * @param {afero.Fs} fs - Filesystem holding the content file
 * @param {string} path - Content file, "" for the built-in catalog
 * @returns {*CatalogStore} Store with a loaded catalog
 * @returns {error} Load error
 */
func NewCatalogStore(fs afero.Fs, path string) (*CatalogStore, error) {
	s := &CatalogStore{fs: fs, path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the current catalog.
func (s *CatalogStore) Catalog() *Catalog {
	return s.current.Load()
}

// LoadedAt returns the time of the last successful load.
func (s *CatalogStore) LoadedAt() time.Time {
	if t := s.loadedAt.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

func (s *CatalogStore) Path() string {
	return s.path
}

/**
 * Reload the catalog from its source
 * @returns {error} Read or parse error; the previous catalog stays in place
 */
func (s *CatalogStore) Reload() error {
	data := content.Catalog
	if s.path != "" {
		var err error
		data, err = afero.ReadFile(s.fs, s.path)
		if err != nil {
			recordCatalogReload(err)
			return fmt.Errorf("read catalog '%s': %w", s.path, err)
		}
	}
	cat, err := ParseCatalog(data)
	recordCatalogReload(err)
	if err != nil {
		return err
	}
	now := time.Now()
	s.current.Store(cat)
	s.loadedAt.Store(&now)
	logger.Infof("catalog loaded: %d software, %d museum items, %d hosts",
		len(cat.Software), len(cat.Museum), len(cat.Hosts))
	return nil
}

/**
 * Reload the catalog whenever the content file changes
 * @param {context.Context} ctx - Stops watching when done
 * @returns {error} Watcher setup error; the built-in catalog is never watched
 * @description
 * - Watches the directory so editors that replace the file are noticed
 * - Reload failures are logged and keep the previous catalog
 */
func (s *CatalogStore) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch '%s': %w", s.path, err)
	}
	target := filepath.Clean(s.path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := s.Reload(); err != nil {
					logger.Errorf("reload catalog failed: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("catalog watcher: %v", err)
			}
		}
	}()
	return nil
}
