package models

import "time"

/**
 * Software item shown in an info box on the main or extras page
 * @property {string} name - Display name, also the source of the file slug
 * @property {string} page - "main" or "extras"
 * @property {string} anchor - HTML id of the info box, defaults to the slug
 * @property {string} section - Extra id placed before the box (e.g. "handies")
 * @property {bool} plugin - Append AU/VST format labels to tooltips
 * @property {bool} au_link - Offer the Audio Units page when no .dmg exists
 * @property {[]CurrentVersion} versions - Version lines shown under the downloads
 * @property {[]string} description - Paragraphs, markdown
 * @property {[]AudioSample} samples - Dry/wet audio demos
 */
type Software struct {
	Name        string           `yaml:"name" json:"name"`
	Page        string           `yaml:"page" json:"page"`
	Anchor      string           `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	Section     string           `yaml:"section,omitempty" json:"section,omitempty"`
	TitleImage  string           `yaml:"title_image,omitempty" json:"titleImage,omitempty"`
	Plugin      *bool            `yaml:"plugin,omitempty" json:"plugin,omitempty"`
	AULink      *bool            `yaml:"au_link,omitempty" json:"auLink,omitempty"`
	Versions    []CurrentVersion `yaml:"versions" json:"versions"`
	Description []string         `yaml:"description" json:"description"`
	Samples     []AudioSample    `yaml:"samples,omitempty" json:"samples,omitempty"`
}

// IsPlugin defaults to true when unset.
func (s *Software) IsPlugin() bool {
	return s.Plugin == nil || *s.Plugin
}

// ShowAULink defaults to true when unset.
func (s *Software) ShowAULink() bool {
	return s.AULink == nil || *s.AULink
}

type CurrentVersion struct {
	Version string `yaml:"version" json:"version"`
	Date    string `yaml:"date" json:"date"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty"`
}

// AudioSample 音频示例，Dry可以为空
type AudioSample struct {
	Title string `yaml:"title" json:"title"`
	Dry   string `yaml:"dry,omitempty" json:"dry,omitempty"`
	Wet   string `yaml:"wet" json:"wet"`
}

/**
 * Archived software in the museum
 * @property {string} name - Display name
 * @property {bool} plugin - Append AU/VST format labels to tooltips
 * @property {[]MuseumRelease} releases - Old releases
 */
type MuseumItem struct {
	Name     string          `yaml:"name" json:"name"`
	Plugin   *bool           `yaml:"plugin,omitempty" json:"plugin,omitempty"`
	Releases []MuseumRelease `yaml:"releases" json:"releases"`
}

func (m *MuseumItem) IsPlugin() bool {
	return m.Plugin == nil || *m.Plugin
}

/**
 * One archived release; each URL is empty (never existed), "?" (lost) or a path
 */
type MuseumRelease struct {
	Version string `yaml:"version" json:"version"`
	Date    string `yaml:"date" json:"date"`
	Windows string `yaml:"windows,omitempty" json:"windows,omitempty"`
	Mac     string `yaml:"mac,omitempty" json:"mac,omitempty"`
	OldMac  string `yaml:"oldmac,omitempty" json:"oldmac,omitempty"`
	Source  string `yaml:"source,omitempty" json:"source,omitempty"`
}

// URL returns the archived file for a platform.
func (r *MuseumRelease) URL(p Platform) string {
	switch p {
	case PlatformWindows:
		return r.Windows
	case PlatformMac:
		return r.Mac
	case PlatformOldMac:
		return r.OldMac
	}
	return r.Source
}

// NewsItem 某一天发布的版本集合
type NewsItem struct {
	Date     string
	Anchor   string
	Label    string
	Releases []NewsRelease
}

type NewsRelease struct {
	Software string
	Version  string
	Type     string
	Archived bool
}

// DocFile 文档目录中的一个文件
type DocFile struct {
	Name     string    `json:"name"`
	File     string    `json:"file"`
	URL      string    `json:"url"`
	Ext      string    `json:"ext"`
	Size     string    `json:"size"`
	Modified time.Time `json:"modified"`
}

// SourcePackage 源码包
type SourcePackage struct {
	Name string `json:"name"`
	File string `json:"file"`
	URL  string `json:"url"`
	Size string `json:"size"`
}
