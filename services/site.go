package services

import (
	"fmt"
	"html/template"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"dfx-site/internal/config"
	"dfx-site/internal/models"
	"dfx-site/internal/utils"

	"github.com/spf13/afero"
)

const defaultThumbnailSize = 100

// Site 组装各页面所需的数据，每次请求重新计算，不保存请求间状态
type Site struct {
	cfg      config.SiteConfig
	store    *CatalogStore
	resolver *Resolver
	dir      *Directory
}

/**
 * Create the page assembler
 * @param {config.SiteConfig} cfg - Site configuration
 * @param {afero.Fs} siteFs - Filesystem rooted at the site root
 * @param {*CatalogStore} store - Catalog holder
 * @returns {*Site} Site service
 */
func NewSite(cfg config.SiteConfig, siteFs afero.Fs, store *CatalogStore) *Site {
	return &Site{
		cfg:      cfg,
		store:    store,
		resolver: NewResolver(siteFs, cfg.RootPath, cfg.ContactAnchor),
		dir:      NewDirectory(siteFs, cfg.RootPath),
	}
}

/**
 * View of the site for pages living below the site root
 * @param {string} up - Relative prefix leading back to the root, e.g. "../"
 * @returns {*Site} Site whose relative links resolve from the nested page
 * @description
 * - Absolute root paths and URLs are returned unchanged
 */
func (s *Site) Nested(up string) *Site {
	if isAbsoluteLink(s.cfg.RootPath) {
		return s
	}
	cfg := s.cfg
	cfg.RootPath = up + cfg.RootPath
	if !isAbsoluteLink(cfg.ContactAnchor) {
		cfg.ContactAnchor = up + cfg.ContactAnchor
	}
	return &Site{
		cfg:      cfg,
		store:    s.store,
		resolver: NewResolver(s.resolver.fs, cfg.RootPath, cfg.ContactAnchor).WithRules(s.resolver.rules),
		dir:      NewDirectory(s.dir.fs, cfg.RootPath),
	}
}

func isAbsoluteLink(p string) bool {
	return strings.HasPrefix(p, "/") || strings.Contains(p, "://")
}

func (s *Site) Config() config.SiteConfig { return s.cfg }
func (s *Site) Catalog() *Catalog { return s.store.Catalog() }
func (s *Site) Store() *CatalogStore { return s.store }
func (s *Site) Resolver() *Resolver { return s.resolver }
func (s *Site) Directory() *Directory { return s.dir }

// Thumbnail 界面截图缩略图
type Thumbnail struct {
	Src     string
	FullURL string
	Alt     string
	Title   string
	Width   int
	Height  int
}

type VersionLine struct {
	Text string
	URL  string
}

type IconLink struct {
	URL   string
	Icon  string
	Alt   string
	Title string
}

type SampleRow struct {
	Title string
	Dry   *IconLink
	NoDry IconLink
	Wet   IconLink
}

// SoftwareBox 一个软件信息框
type SoftwareBox struct {
	Name        string
	Slug        string
	Anchor      string
	Section     string
	TitleImage  string
	Thumbnail   Thumbnail
	Downloads   []models.DownloadLink
	AULink      *IconLink
	Source      models.DownloadLink
	DocLink     *IconLink
	DonateLink  *IconLink
	Versions    []VersionLine
	Description []template.HTML
	Samples     []SampleRow
}

// SoftwareBoxes builds the info boxes of a page in catalog order.
func (s *Site) SoftwareBoxes(page string) []SoftwareBox {
	var boxes []SoftwareBox
	for _, sw := range s.Catalog().SoftwareOnPage(page) {
		boxes = append(boxes, s.SoftwareBox(&sw))
	}
	return boxes
}

/**
 * Build the info box of one software
 * @param {*models.Software} sw - Catalog entry
 * @returns {SoftwareBox} Thumbnail, download rows, documentation, versions, description and samples
 * @description
 * - First row: Mac OS X, Windows and old Mac OS current releases
 * - Second row: Audio Units page link when no .dmg build exists, then the source package
 */
func (s *Site) SoftwareBox(sw *models.Software) SoftwareBox {
	slug := utils.NameToSlug(sw.Name)
	r := s.resolver
	box := SoftwareBox{
		Name:       sw.Name,
		Slug:       slug,
		Anchor:     sw.Anchor,
		Section:    sw.Section,
		TitleImage: r.URL(sw.TitleImage),
		Thumbnail:  s.thumbnail(sw.Name, slug),
	}
	if box.Anchor == "" {
		box.Anchor = slug
	}

	macFile := r.FindAsset(slug, models.PlatformMac)
	box.Downloads = []models.DownloadLink{
		r.ResolveDownloadLink(sw.Name, macFile, models.PlatformMac, sw.IsPlugin()),
		r.ResolveCurrent(sw.Name, slug, models.PlatformWindows, sw.IsPlugin()),
		r.ResolveCurrent(sw.Name, slug, models.PlatformOldMac, sw.IsPlugin()),
	}
	isAUBuild := macFile != "" && path.Ext(macFile) == ".dmg"
	if !isAUBuild && sw.ShowAULink() {
		box.AULink = &IconLink{
			URL:   r.URL("audiounits.html#" + slug),
			Icon:  r.URL("x-au.png"),
			Alt:   "download " + sw.Name + " for Mac OS X (AU)",
			Title: "download Mac OS X - AU",
		}
	}
	box.Source = r.ResolveCurrent(sw.Name, slug, models.PlatformSource, sw.IsPlugin())

	docPath := DocsDir + "/" + utils.NameToSlugPreserveSpaces(sw.Name) + ".html"
	if r.Exists(docPath) {
		box.DocLink = &IconLink{
			URL:   r.URL(docPath),
			Icon:  r.URL("docs.png"),
			Alt:   "manual",
			Title: "view documentation for " + sw.Name,
		}
	}
	if s.cfg.ShowDonateLinks {
		box.DonateLink = &IconLink{URL: r.URL("donate.php"), Icon: r.URL("donate-button.png"), Alt: "donate"}
	}

	for _, v := range sw.Versions {
		box.Versions = append(box.Versions, s.versionLine(v))
	}
	for _, p := range sw.Description {
		box.Description = append(box.Description, RenderMarkdown(p))
	}
	for _, a := range sw.Samples {
		box.Samples = append(box.Samples, s.sampleRow(a))
	}
	return box
}

func (s *Site) thumbnail(name, slug string) Thumbnail {
	r := s.resolver
	full := slug + ".png"
	if !r.Exists(full) {
		full = slug + ".jpg"
	}
	t := Thumbnail{
		Src:     r.URL(slug + "-small.png"),
		FullURL: r.URL(full),
		Alt:     "view " + name + " interface (full size)",
		Width:   defaultThumbnailSize,
		Height:  defaultThumbnailSize,
	}
	if r.Exists(full) {
		if w, h, ok := s.dir.ImageSize(full); ok {
			t.Width, t.Height = w, h
		}
		if size := r.SizeLabel(full); size != "" {
			t.Title = "see full-size [" + size + "]"
		}
	}
	return t
}

func (s *Site) versionLine(v models.CurrentVersion) VersionLine {
	text := "Version " + v.Version + " - " + FormatReleaseDate(v.Date)
	if v.Type != "" {
		text = v.Type + ": " + text
	}
	return VersionLine{Text: text, URL: s.resolver.URL("news#" + utils.NewsAnchor(v.Date))}
}

func (s *Site) sampleRow(a models.AudioSample) SampleRow {
	r := s.resolver
	wet := AudioDir + "/" + a.Wet
	row := SampleRow{
		Title: a.Title,
		Wet:   IconLink{URL: r.URL(wet), Icon: r.URL("wet.png"), Alt: "wet audio sample", Title: r.SizeLabel(wet)},
		NoDry: IconLink{Icon: r.URL("dry-no.png"), Alt: "no dry audio sample available"},
	}
	if a.Dry != "" {
		dry := AudioDir + "/" + a.Dry
		row.Dry = &IconLink{URL: r.URL(dry), Icon: r.URL("dry.png"), Alt: "dry audio sample", Title: r.SizeLabel(dry)}
	}
	return row
}

/**
 * Format a release date the way version lines show it
 * @param {string} date - "2005-09-09"
 * @returns {string} "9 Sep 2005", or the input when it is not a date
 */
func FormatReleaseDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("2 Jan 2006")
}

/**
 * Format a file modification time for the documentation index
 * @param {time.Time} t - Modification time
 * @returns {string} e.g. "March 7th 2004", "" for the zero time
 */
func FormatUpdateDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d%s %d", t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// MuseumSection 博物馆中一个软件的全部旧版本
type MuseumSection struct {
	Name string
	ID   string
	Rows []MuseumRow
}

type MuseumRow struct {
	Class     string
	Version   string
	Date      string
	NotesURL  string
	Downloads []models.DownloadLink
}

/**
 * Build the museum table
 * @returns {[]MuseumSection} Sections in catalog order, releases newest first
 * @description
 * - Cells follow models.Platforms: Windows, Mac OS X, Mac OS 8/9, Source
 * - Row classes alternate across the whole table, not per section
 */
func (s *Site) Museum() []MuseumSection {
	var sections []MuseumSection
	rowCount := 0
	cat := s.Catalog()
	for i := range cat.Museum {
		item := &cat.Museum[i]
		sections = append(sections, s.museumSection(item, rowCount))
		rowCount += len(item.Releases)
	}
	return sections
}

// museumSection resolves the rows of one item; firstRow is its position in the page-wide striping.
func (s *Site) museumSection(item *models.MuseumItem, firstRow int) MuseumSection {
	sec := MuseumSection{Name: item.Name, ID: utils.NameToSlug(item.Name)}
	releases := append([]models.MuseumRelease(nil), item.Releases...)
	utils.SortVersionsDesc(releases, func(r models.MuseumRelease) string { return r.Version })
	for i, rel := range releases {
		row := MuseumRow{
			Class:    RowClass(firstRow + i),
			Version:  rel.Version,
			Date:     FormatReleaseDate(rel.Date),
			NotesURL: s.resolver.URL("news#" + utils.NewsAnchor(rel.Date)),
		}
		for _, p := range models.Platforms {
			row.Downloads = append(row.Downloads,
				s.resolver.ResolveDownloadLink(item.Name, rel.URL(p), p, item.IsPlugin()))
		}
		sec.Rows = append(sec.Rows, row)
	}
	return sec
}

/**
 * Group every release by date for the news page
 * @returns {[]models.NewsItem} Newest date first; releases of a day in catalog order
 */
func (s *Site) News() []models.NewsItem {
	byDate := map[string]*models.NewsItem{}
	add := func(date string, rel models.NewsRelease) {
		item, ok := byDate[date]
		if !ok {
			item = &models.NewsItem{Date: date, Anchor: utils.NewsAnchor(date), Label: FormatReleaseDate(date)}
			byDate[date] = item
		}
		for _, existing := range item.Releases {
			if existing.Software == rel.Software && existing.Version == rel.Version {
				return
			}
		}
		item.Releases = append(item.Releases, rel)
	}

	cat := s.Catalog()
	for _, sw := range cat.Software {
		for _, v := range sw.Versions {
			add(v.Date, models.NewsRelease{Software: sw.Name, Version: v.Version, Type: v.Type})
		}
	}
	for _, item := range cat.Museum {
		for _, rel := range item.Releases {
			add(rel.Date, models.NewsRelease{Software: item.Name, Version: rel.Version, Archived: true})
		}
	}

	news := make([]models.NewsItem, 0, len(byDate))
	for _, item := range byDate {
		news = append(news, *item)
	}
	sort.Slice(news, func(i, j int) bool { return news[i].Date > news[j].Date })
	return news
}

// HostListing builds the compatibility table for a request.
func (s *Site) HostListing(pagePath string, query url.Values) HostListing {
	return NewHostListing(pagePath, s.Catalog().Hosts, models.ParseFilterSet(query))
}

// DocEntry 文档索引条目，关联到软件名称
type DocEntry struct {
	models.DocFile
	Software string `json:"software"`
	Updated  string `json:"updated"`
	Class    string `json:"-"`
}

/**
 * Documentation index
 * @returns {[]DocEntry} Files of docs/ with the matching software name when there is one
 */
func (s *Site) Docs() []DocEntry {
	names := map[string]string{}
	for _, sw := range s.Catalog().Software {
		names[utils.NameToSlugPreserveSpaces(sw.Name)] = sw.Name
	}
	var entries []DocEntry
	for i, f := range s.dir.Docs() {
		stem := f.File[:len(f.File)-len(path.Ext(f.File))]
		entries = append(entries, DocEntry{
			DocFile:  f,
			Software: names[stem],
			Updated:  FormatUpdateDate(f.Modified),
			Class:    RowClass(i),
		})
	}
	return entries
}

func (s *Site) SourcePackages() []models.SourcePackage {
	return s.dir.SourcePackages()
}

func slugOf(name string) string {
	return utils.NameToSlug(name)
}

/**
 * Current release downloads of one software
 * @param {string} name - Display name or slug
 * @returns {[]models.DownloadLink} Mac OS X, Windows, old Mac OS and source links
 * @returns {error} ErrSoftwareNotFound for unknown names
 */
func (s *Site) CurrentDownloads(name string) ([]models.DownloadLink, error) {
	sw, err := s.Catalog().FindSoftware(name)
	if err != nil {
		return nil, err
	}
	slug := slugOf(sw.Name)
	var links []models.DownloadLink
	for _, p := range []models.Platform{models.PlatformMac, models.PlatformWindows, models.PlatformOldMac, models.PlatformSource} {
		links = append(links, s.resolver.ResolveCurrent(sw.Name, slug, p, sw.IsPlugin()))
	}
	return links, nil
}

/**
 * Museum rows of one software
 * @param {string} name - Display name or slug
 * @returns {*MuseumSection} Same rows and classes as on the museum page; only this item's links are resolved
 * @returns {error} ErrSoftwareNotFound for unknown names
 */
func (s *Site) MuseumSection(name string) (*MuseumSection, error) {
	cat := s.Catalog()
	item, err := cat.FindMuseumItem(name)
	if err != nil {
		return nil, err
	}
	firstRow := 0
	for i := range cat.Museum {
		if &cat.Museum[i] == item {
			break
		}
		firstRow += len(cat.Museum[i].Releases)
	}
	sec := s.museumSection(item, firstRow)
	return &sec, nil
}

/**
 * Build the site from application configuration
 * @param {*config.AppConfig} cfg - Application configuration
 * @returns {*Site} Site reading cfg.Site.Root through a read-only filesystem
 * @returns {error} Catalog load error
 */
func NewSiteFromConfig(cfg *config.AppConfig) (*Site, error) {
	osFs := afero.NewOsFs()
	siteFs := afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, cfg.Site.Root))
	store, err := NewCatalogStore(osFs, cfg.Site.Content)
	if err != nil {
		return nil, err
	}
	return NewSite(cfg.Site, siteFs, store), nil
}
