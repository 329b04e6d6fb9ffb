package services

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"regexp"
	"strings"

	"dfx-site/internal/logger"
	"dfx-site/internal/models"
	"dfx-site/internal/utils"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
)

const (
	DocsDir     = "docs"
	SoftwareDir = "software"
	AudioDir    = "audio"
)

var docExtensions = map[string]bool{".html": true, ".htm": true, ".txt": true}

var sourceSuffix = regexp.MustCompile(`(?i)-source\.[a-z0-9.]+$`)

// Directory 站点目录的只读视图，生成文档与源码包索引
type Directory struct {
	fs       afero.Fs
	rootPath string
}

func NewDirectory(fs afero.Fs, rootPath string) *Directory {
	return &Directory{fs: fs, rootPath: rootPath}
}

// Fs returns the site tree.
func (d *Directory) Fs() afero.Fs {
	return d.fs
}

/**
 * List documentation files
 * @returns {[]models.DocFile} .html/.htm/.txt files of docs/, natural order by name
 * @description
 * - A missing or unreadable docs/ directory yields an empty list
 * - Hidden files and sub directories are skipped
 */
func (d *Directory) Docs() []models.DocFile {
	entries, err := afero.ReadDir(d.fs, DocsDir)
	if err != nil {
		logger.Debugf("read '%s' failed: %v", DocsDir, err)
		return nil
	}
	var docs []models.DocFile
	for _, info := range entries {
		name := info.Name()
		ext := strings.ToLower(path.Ext(name))
		if info.IsDir() || strings.HasPrefix(name, ".") || !docExtensions[ext] {
			continue
		}
		docs = append(docs, models.DocFile{
			Name:     DocDisplayName(name),
			File:     name,
			URL:      d.rootPath + DocsDir + "/" + url.PathEscape(name),
			Ext:      strings.TrimPrefix(ext, "."),
			Size:     humanize.Bytes(uint64(info.Size())),
			Modified: info.ModTime(),
		})
	}
	utils.SortNatural(docs, func(f models.DocFile) string { return f.File })
	return docs
}

/**
 * List source code packages
 * @returns {[]models.SourcePackage} Files of software/ containing "-source.", natural order
 */
func (d *Directory) SourcePackages() []models.SourcePackage {
	entries, err := afero.ReadDir(d.fs, SoftwareDir)
	if err != nil {
		logger.Debugf("read '%s' failed: %v", SoftwareDir, err)
		return nil
	}
	var pkgs []models.SourcePackage
	for _, info := range entries {
		name := info.Name()
		if info.IsDir() || strings.HasPrefix(name, ".") || !strings.Contains(name, "-source.") {
			continue
		}
		pkgs = append(pkgs, models.SourcePackage{
			Name: SourceDisplayName(name),
			File: name,
			URL:  d.rootPath + SoftwareDir + "/" + url.PathEscape(name),
			Size: humanize.Bytes(uint64(info.Size())),
		})
	}
	utils.SortNatural(pkgs, func(p models.SourcePackage) string { return p.File })
	return pkgs
}

/**
 * Display name of a source package file
 * @param {string} fileName - e.g. "rez_synth-source.tar.gz"
 * @returns {string} e.g. "REZ SYNTH"
 */
func SourceDisplayName(fileName string) string {
	name := sourceSuffix.ReplaceAllString(fileName, "")
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.ToUpper(name)
}

// 整词大写的缩写
var docAcronyms = map[string]bool{"fx": true, "dfx": true, "midi": true, "eq": true, "rms": true, "vst": true}

/**
 * Display name of a documentation file
 * @param {string} fileName - e.g. "rms_buddy.html"
 * @returns {string} e.g. "RMS Buddy"
 * @description
 * - "_" and "-" become spaces, every word starts upper case
 * - FX, DFX, MIDI, EQ, RMS and VST are written in capitals
 */
func DocDisplayName(fileName string) string {
	name := strings.TrimSuffix(fileName, path.Ext(fileName))
	words := strings.Split(strings.NewReplacer("_", " ", "-", " ").Replace(name), " ")
	for i, w := range words {
		switch {
		case w == "":
		case docAcronyms[strings.ToLower(w)]:
			words[i] = strings.ToUpper(w)
		default:
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

/**
 * Pixel size of an image file
 * @param {string} p - Site relative path
 * @returns {int, int, bool} Width, height and whether the image could be decoded
 */
func (d *Directory) ImageSize(p string) (int, int, bool) {
	f, err := d.fs.Open(cleanSitePath(p))
	if err != nil {
		return 0, 0, false
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		logger.Debugf("decode image '%s' failed: %v", p, err)
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
