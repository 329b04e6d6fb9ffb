package services

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe()))
	sanitize = bluemonday.UGCPolicy()
)

/**
 * Render a catalog text paragraph
 * @param {string} text - Markdown, inline HTML allowed
 * @returns {template.HTML} Sanitized HTML without the wrapping paragraph
 * @description
 * - Inline HTML such as <sup> survives, scripts and event handlers are stripped
 * - Rendering failures fall back to the escaped source text
 */
func RenderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	out := strings.TrimSpace(sanitize.Sanitize(buf.String()))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}
