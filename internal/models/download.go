package models

import (
	"fmt"
	"strings"
)

// Platform 下载文件的目标平台
type Platform int

const (
	PlatformMac Platform = iota
	PlatformOldMac
	PlatformWindows
	PlatformSource
)

// MissingFile marks an asset known to be lost; it asks visitors to share their copy.
const MissingFile = "?"

// LegacyArchiveExt is the archive format of the Carbon/VST Mac OS X builds.
const LegacyArchiveExt = ".sit"

// Platforms lists the variants in the order the museum table shows them.
var Platforms = []Platform{PlatformWindows, PlatformMac, PlatformOldMac, PlatformSource}

// OSName is the human readable target, "" for source code.
func (p Platform) OSName() string {
	switch p {
	case PlatformMac:
		return "Mac OS X"
	case PlatformOldMac:
		return "old Mac OS"
	case PlatformWindows:
		return "Windows"
	}
	return ""
}

// Icon is the base name of the platform icon image.
func (p Platform) Icon() string {
	switch p {
	case PlatformMac:
		return "x"
	case PlatformOldMac:
		return "mac"
	case PlatformWindows:
		return "win32"
	}
	return "source"
}

func (p Platform) String() string {
	switch p {
	case PlatformMac:
		return "mac"
	case PlatformOldMac:
		return "oldmac"
	case PlatformWindows:
		return "windows"
	}
	return "source"
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	v, ok := ParsePlatform(string(text))
	if !ok {
		return fmt.Errorf("unknown platform %q", text)
	}
	*p = v
	return nil
}

// ParsePlatform accepts the names produced by String plus a few spellings of the original site.
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macosx", "mac os x", "osx":
		return PlatformMac, true
	case "oldmac", "old mac", "old mac os", "classic":
		return PlatformOldMac, true
	case "windows", "win", "win32":
		return PlatformWindows, true
	case "source", "src":
		return PlatformSource, true
	}
	return PlatformSource, false
}

// LinkKind 下载链接的三种展示形态
type LinkKind int

const (
	// LinkAvailable: anchor wrapping the platform icon
	LinkAvailable LinkKind = iota
	// LinkUnavailable: the disabled "-no" icon without an anchor
	LinkUnavailable
	// LinkMissing: no icon, a textual call-out asking for the lost file
	LinkMissing
)

func (k LinkKind) String() string {
	switch k {
	case LinkAvailable:
		return "available"
	case LinkUnavailable:
		return "unavailable"
	}
	return "missing"
}

/**
 * Result of resolving one download cell
 * @property {LinkKind} Kind - Which of the three shapes to render
 * @property {string} Href - Download URL, set only for LinkAvailable
 * @property {string} Icon - Icon image path, empty for LinkMissing
 * @property {string} Alt - Alt text of the icon
 * @property {string} Title - Tooltip of the icon
 * @property {string} Size - Human readable file size, may be empty
 * @property {string} Format - Plugin format label (AU/VST), may be empty
 * @property {string} ContactURL - Target of the "do you have it?" link for LinkMissing
 */
type DownloadLink struct {
	Kind       LinkKind `json:"-"`
	State      string   `json:"state"`
	Platform   Platform `json:"platform"`
	Href       string   `json:"href,omitempty"`
	Icon       string   `json:"icon,omitempty"`
	Alt        string   `json:"alt,omitempty"`
	Title      string   `json:"title,omitempty"`
	Size       string   `json:"size,omitempty"`
	Format     string   `json:"format,omitempty"`
	ContactURL string   `json:"contact,omitempty"`
}

func (l DownloadLink) Available() bool { return l.Kind == LinkAvailable }
func (l DownloadLink) Missing() bool   { return l.Kind == LinkMissing }
