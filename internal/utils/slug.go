package utils

import (
	"strings"
)

/**
 * Convert a display name into the file name stem used by assets
 * @param {string} name - Display name, e.g. "Buffer Override"
 * @returns {string} Lowercase alphanumeric form, e.g. "bufferoverride"
 */
func NameToSlug(name string) string {
	return slug(name, false)
}

/**
 * Convert a display name into the documentation file stem
 * @param {string} name - Display name, e.g. "Buffer Override"
 * @returns {string} Lowercase alphanumeric form with spaces as dashes, e.g. "buffer-override"
 */
func NameToSlugPreserveSpaces(name string) string {
	return slug(name, true)
}

func slug(name string, keepDashes bool) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case keepDashes && (r == ' ' || r == '-'):
			b.WriteByte('-')
		}
	}
	return b.String()
}

// NewsAnchor is the id of a release date on the news page.
func NewsAnchor(date string) string {
	return "news" + date
}
