package services

import (
	"fmt"
	"path"
	"strings"

	"dfx-site/internal/logger"
	"dfx-site/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

/**
 * Candidate file for one platform of a current release
 * @property {models.Platform} Platform - Platform the file is offered for
 * @property {string} Pattern - Site relative path with %s standing for the software slug
 */
type CandidateRule struct {
	Platform models.Platform
	Pattern  string
}

// DefaultCandidateRules is the lookup order of current release files, first match wins.
var DefaultCandidateRules = []CandidateRule{
	{models.PlatformMac, "software/%s-mac.dmg"},
	{models.PlatformMac, "software/%s-carbon.sit"},
	{models.PlatformWindows, "software/%s-win.zip"},
	{models.PlatformOldMac, "software/%s-mac.sit"},
	{models.PlatformSource, "software/%s-source.tar.gz"},
	{models.PlatformSource, "software/%s-source.sit"},
	{models.PlatformSource, "software/%s-patch.sit"},
}

/**
 * List candidate paths of a platform in precedence order
 * @param {[]CandidateRule} rules - Resolution rules
 * @param {string} slug - Software file slug, see utils.NameToSlug
 * @param {models.Platform} platform - Target platform
 * @returns {[]string} Site relative paths, first existing one wins
 */
func CandidatePaths(rules []CandidateRule, slug string, platform models.Platform) []string {
	var paths []string
	for _, r := range rules {
		if r.Platform == platform {
			paths = append(paths, fmt.Sprintf(r.Pattern, slug))
		}
	}
	return paths
}

/**
 * Download link resolver bound to one site tree
 * @description
 * - fs is rooted at the site root and only read
 * - rootPath is the URL prefix of every generated link
 * - contactURL is the target of the "missing" call-out
 */
type Resolver struct {
	fs         afero.Fs
	rootPath   string
	contactURL string
	rules      []CandidateRule
}

func NewResolver(fs afero.Fs, rootPath, contactURL string) *Resolver {
	return &Resolver{
		fs:         fs,
		rootPath:   rootPath,
		contactURL: contactURL,
		rules:      DefaultCandidateRules,
	}
}

// WithRules replaces the candidate rules.
func (r *Resolver) WithRules(rules []CandidateRule) *Resolver {
	r.rules = rules
	return r
}

// URL prefixes a site relative path with the root path; absolute URLs are kept.
func (r *Resolver) URL(p string) string {
	if p == "" || strings.Contains(p, "://") || strings.HasPrefix(p, "/") {
		return p
	}
	return r.rootPath + p
}

// Exists reports whether a site relative regular file exists.
func (r *Resolver) Exists(p string) bool {
	info, err := r.fs.Stat(cleanSitePath(p))
	if err != nil {
		return false
	}
	return !info.IsDir()
}

/**
 * Find the current release file of a software for a platform
 * @param {string} slug - Software file slug
 * @param {models.Platform} platform - Target platform
 * @returns {string} First existing candidate path, "" when none exists
 */
func (r *Resolver) FindAsset(slug string, platform models.Platform) string {
	for _, p := range CandidatePaths(r.rules, slug, platform) {
		if r.Exists(p) {
			return p
		}
	}
	return ""
}

/**
 * Human readable size of a site file
 * @param {string} p - Site relative path
 * @returns {string} e.g. "1.2 MB", "" when the file cannot be examined
 */
func (r *Resolver) SizeLabel(p string) string {
	if p == "" || strings.Contains(p, "://") {
		return ""
	}
	info, err := r.fs.Stat(cleanSitePath(p))
	if err != nil {
		logger.Debugf("size lookup of '%s' failed: %v", p, err)
		return ""
	}
	if info.IsDir() {
		return ""
	}
	return humanize.Bytes(uint64(info.Size()))
}

/**
 * Resolve one download cell
 * @param {string} softwareName - Display name, may be empty
 * @param {string} fileURL - Site relative path, "" when no such build exists, models.MissingFile when lost
 * @param {models.Platform} platform - Target platform
 * @param {bool} isPlugin - Append the AU/VST format to alt and title texts
 * @returns {models.DownloadLink} Exactly one of available, unavailable or missing
 * @description
 * - Mac builds are AU unless the file is a .sit archive, which holds the Carbon VST build
 * - Size lookup failure only drops the size from the title
 */
func (r *Resolver) ResolveDownloadLink(softwareName, fileURL string, platform models.Platform, isPlugin bool) models.DownloadLink {
	osName := platform.OSName()
	format := ""
	switch platform {
	case models.PlatformMac:
		format = "AU"
		if fileURL != "" && fileURL != models.MissingFile &&
			strings.EqualFold(path.Ext(fileURL), models.LegacyArchiveExt) {
			format = "VST"
		}
	case models.PlatformOldMac, models.PlatformWindows:
		format = "VST"
	}
	if !isPlugin {
		format = ""
	}

	link := models.DownloadLink{Platform: platform, Format: format}
	switch fileURL {
	case models.MissingFile:
		link.Kind = models.LinkMissing
		link.ContactURL = r.contactURL
	case "":
		link.Kind = models.LinkUnavailable
		link.Icon = r.URL(platform.Icon() + "-no.gif")
		link.Alt = unavailableText(osName)
		link.Title = link.Alt
	default:
		link.Kind = models.LinkAvailable
		link.Href = r.URL(fileURL)
		link.Icon = r.URL(platform.Icon() + ".gif")
		link.Size = r.SizeLabel(fileURL)
		link.Alt = availableAlt(softwareName, osName, format)
		link.Title = availableTitle(osName, format, link.Size)
	}
	link.State = link.Kind.String()
	recordDownloadLink(platform.String(), link.State)
	return link
}

/**
 * Resolve the current release of a software for a platform
 * @returns {models.DownloadLink} Available when a candidate exists, unavailable otherwise
 */
func (r *Resolver) ResolveCurrent(softwareName, slug string, platform models.Platform, isPlugin bool) models.DownloadLink {
	return r.ResolveDownloadLink(softwareName, r.FindAsset(slug, platform), platform, isPlugin)
}

func availableAlt(name, osName, format string) string {
	var b strings.Builder
	b.WriteString("download ")
	if name != "" {
		b.WriteString(name + " ")
	}
	if osName != "" {
		b.WriteString("for " + osName)
	} else {
		b.WriteString("source code")
	}
	if format != "" {
		b.WriteString(" (" + format + ")")
	}
	return b.String()
}

func availableTitle(osName, format, size string) string {
	var b strings.Builder
	b.WriteString("download ")
	if osName != "" {
		b.WriteString(osName)
	} else {
		b.WriteString("source code")
	}
	if format != "" {
		b.WriteString(" - " + format)
	}
	if size != "" {
		b.WriteString(" [" + size + "]")
	}
	return b.String()
}

func unavailableText(osName string) string {
	if osName != "" {
		return "no " + osName + " version available"
	}
	return "no source code available"
}

func cleanSitePath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
