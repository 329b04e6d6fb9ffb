package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformNames(t *testing.T) {
	assert.Equal(t, "Mac OS X", PlatformMac.OSName())
	assert.Equal(t, "old Mac OS", PlatformOldMac.OSName())
	assert.Equal(t, "Windows", PlatformWindows.OSName())
	assert.Equal(t, "", PlatformSource.OSName())

	assert.Equal(t, "x", PlatformMac.Icon())
	assert.Equal(t, "mac", PlatformOldMac.Icon())
	assert.Equal(t, "win32", PlatformWindows.Icon())
	assert.Equal(t, "source", PlatformSource.Icon())
}

func TestParsePlatform(t *testing.T) {
	for _, p := range Platforms {
		got, ok := ParsePlatform(p.String())
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}
	_, ok := ParsePlatform("amiga")
	assert.False(t, ok)
}

func TestDownloadLinkJSON(t *testing.T) {
	data, err := json.Marshal(DownloadLink{Kind: LinkMissing, State: LinkMissing.String(), Platform: PlatformWindows, ContactURL: "./#contact"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"missing","platform":"windows","contact":"./#contact"}`, string(data))
}

func TestMuseumReleaseURL(t *testing.T) {
	rel := MuseumRelease{Windows: "w.zip", Mac: "m.dmg", OldMac: MissingFile}
	assert.Equal(t, "w.zip", rel.URL(PlatformWindows))
	assert.Equal(t, "m.dmg", rel.URL(PlatformMac))
	assert.Equal(t, MissingFile, rel.URL(PlatformOldMac))
	assert.Equal(t, "", rel.URL(PlatformSource))
}
