package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"dfx-site/internal/models"
)

const TitlePrefix = "Destroy FX : "

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var partials = template.Must(template.New("partials").ParseFS(templateFS, "templates/partials.html"))

/**
 * Data handed to every page template
 * @property {string} Title - Full document title
 * @property {string} Background - Body background color
 * @property {string} BackgroundImage - Optional tiled background image
 * @property {string} Root - URL prefix of site resources
 * @property {any} Data - Page specific view model
 */
type Page struct {
	Title           string
	Background      string
	BackgroundImage string
	Root            string
	Data            any
}

func NewPage(title, background, backgroundImage, root string, data any) Page {
	return Page{
		Title:           TitlePrefix + title,
		Background:      background,
		BackgroundImage: backgroundImage,
		Root:            root,
		Data:            data,
	}
}

// Funcs 模板中可用的函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"downloadLink": RenderDownloadLink,
	}
}

/**
 * Parse all page templates
 * @returns {*template.Template} Template set keyed by file name (e.g. "museum.html")
 * @returns {error} Parse error
 */
func Templates() (*template.Template, error) {
	t, err := template.New("site").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return t, nil
}

/**
 * Render one download cell
 * @param {models.DownloadLink} link - Resolved link
 * @returns {template.HTML} Icon inside an anchor, a bare disabled icon, or the missing call-out
 */
func RenderDownloadLink(link models.DownloadLink) (template.HTML, error) {
	var buf bytes.Buffer
	if err := partials.ExecuteTemplate(&buf, "download_link", link); err != nil {
		return "", fmt.Errorf("failed to render download link: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Static returns the built-in stylesheet and script files.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
