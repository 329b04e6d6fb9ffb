package services

import (
	"testing"
	"time"

	"dfx-site/internal/config"
	"dfx-site/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
software:
  - name: Foo Bar
    page: main
    title_image: dfx-foobar.gif
    versions:
      - version: "1.1"
        date: "2005-09-09"
        type: Mac OS X
    description:
      - "A **loud** plugin."
    samples:
      - title: demo
        wet: foo-wet.mp3
      - title: compare
        dry: foo-dry.mp3
        wet: foo-wet.mp3
  - name: Tool
    page: extras
    plugin: false
    au_link: false
    versions:
      - version: "1.0"
        date: "2004-01-01"
museum:
  - name: Foo Bar
    releases:
      - version: "1.0"
        date: "2004-01-01"
        windows: museum/foobar-1.0-win.zip
        mac: "?"
      - version: "1.10"
        date: "2004-06-01"
  - name: Other
    releases:
      - version: "0.9"
        date: "2003-01-01"
hosts:
  - name: X
    au: true
`

func newTestSite(t *testing.T, files ...string) *Site {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/catalog.yaml", []byte(testCatalog), 0644))
	for _, f := range files {
		writeFile(t, fs, f, 1000)
	}
	store, err := NewCatalogStore(fs, "/catalog.yaml")
	require.NoError(t, err)
	cfg := config.SiteConfig{ContactAnchor: "./#contact", ShowDonateLinks: true}
	return NewSite(cfg, fs, store)
}

func TestSoftwareBox(t *testing.T) {
	site := newTestSite(t, "software/foobar-win.zip", "docs/foo-bar.html", "audio/foo-wet.mp3")

	boxes := site.SoftwareBoxes(PageMain)
	require.Len(t, boxes, 1)
	box := boxes[0]

	assert.Equal(t, "foobar", box.Slug)
	assert.Equal(t, "foobar", box.Anchor)
	assert.Equal(t, "dfx-foobar.gif", box.TitleImage)

	require.Len(t, box.Downloads, 3)
	assert.Equal(t, models.LinkUnavailable, box.Downloads[0].Kind)
	assert.Equal(t, models.LinkAvailable, box.Downloads[1].Kind)
	assert.Equal(t, "software/foobar-win.zip", box.Downloads[1].Href)
	assert.Equal(t, models.PlatformOldMac, box.Downloads[2].Platform)
	assert.Equal(t, models.LinkUnavailable, box.Source.Kind)

	require.NotNil(t, box.AULink, "no .dmg build, the Audio Units page is offered")
	assert.Equal(t, "audiounits.html#foobar", box.AULink.URL)
	require.NotNil(t, box.DocLink)
	assert.Equal(t, "docs/foo-bar.html", box.DocLink.URL)
	assert.NotNil(t, box.DonateLink)

	require.Len(t, box.Versions, 1)
	assert.Equal(t, "Mac OS X: Version 1.1 - 9 Sep 2005", box.Versions[0].Text)
	assert.Equal(t, "news#news2005-09-09", box.Versions[0].URL)
	assert.Equal(t, "A <strong>loud</strong> plugin.", string(box.Description[0]))

	require.Len(t, box.Samples, 2)
	assert.Nil(t, box.Samples[0].Dry)
	assert.Equal(t, "audio/foo-wet.mp3", box.Samples[0].Wet.URL)
	assert.Equal(t, "1.0 kB", box.Samples[0].Wet.Title)
	require.NotNil(t, box.Samples[1].Dry)
	assert.Equal(t, "audio/foo-dry.mp3", box.Samples[1].Dry.URL)
}

func TestSoftwareBoxWithAUBuild(t *testing.T) {
	site := newTestSite(t, "software/foobar-mac.dmg")
	box := site.SoftwareBoxes(PageMain)[0]

	assert.Nil(t, box.AULink)
	assert.Equal(t, "AU", box.Downloads[0].Format)
	assert.Nil(t, box.DocLink)
}

func TestSoftwareBoxNonPlugin(t *testing.T) {
	site := newTestSite(t, "software/tool-win.zip")
	boxes := site.SoftwareBoxes(PageExtras)
	require.Len(t, boxes, 1)

	assert.Nil(t, boxes[0].AULink)
	assert.Empty(t, boxes[0].Downloads[1].Format)
	assert.Equal(t, "download Tool for Windows", boxes[0].Downloads[1].Alt)
}

func TestMuseum(t *testing.T) {
	sections := newTestSite(t).Museum()
	require.Len(t, sections, 2)

	foo := sections[0]
	assert.Equal(t, "foobar", foo.ID)
	require.Len(t, foo.Rows, 2)
	assert.Equal(t, "1.10", foo.Rows[0].Version, "newest release first")
	assert.Equal(t, "1.0", foo.Rows[1].Version)
	assert.Equal(t, RowClassOne, foo.Rows[0].Class)
	assert.Equal(t, RowClassOther, foo.Rows[1].Class)
	assert.Equal(t, RowClassOne, sections[1].Rows[0].Class, "striping continues across sections")

	old := foo.Rows[1]
	assert.Equal(t, "1 Jan 2004", old.Date)
	require.Len(t, old.Downloads, 4)
	assert.Equal(t, models.LinkAvailable, old.Downloads[0].Kind)
	assert.Equal(t, models.LinkMissing, old.Downloads[1].Kind)
	assert.Equal(t, models.LinkUnavailable, old.Downloads[2].Kind)
	assert.Equal(t, models.LinkUnavailable, old.Downloads[3].Kind)
}

func TestNews(t *testing.T) {
	news := newTestSite(t).News()

	var dates []string
	for _, n := range news {
		dates = append(dates, n.Date)
	}
	assert.Equal(t, []string{"2005-09-09", "2004-06-01", "2004-01-01", "2003-01-01"}, dates)
	assert.Equal(t, "news2005-09-09", news[0].Anchor)
	assert.Equal(t, "9 Sep 2005", news[0].Label)

	jan := news[2]
	require.Len(t, jan.Releases, 2)
	assert.Equal(t, "Tool", jan.Releases[0].Software)
	assert.False(t, jan.Releases[0].Archived)
	assert.Equal(t, "Foo Bar", jan.Releases[1].Software)
	assert.True(t, jan.Releases[1].Archived)
}

func TestNestedSite(t *testing.T) {
	site := newTestSite(t, "software/tool-win.zip")
	nested := site.Nested("../")

	assert.Equal(t, "../", nested.Config().RootPath)
	assert.Equal(t, ".././#contact", nested.Config().ContactAnchor)
	box := nested.SoftwareBoxes(PageExtras)[0]
	assert.Equal(t, "../software/tool-win.zip", box.Downloads[1].Href)
	assert.Equal(t, "../x-no.gif", box.Downloads[0].Icon)
}

func TestCurrentDownloads(t *testing.T) {
	site := newTestSite(t, "software/foobar-source.tar.gz")

	links, err := site.CurrentDownloads("foobar")
	require.NoError(t, err)
	require.Len(t, links, 4)
	assert.True(t, links[3].Available())

	_, err = site.CurrentDownloads("nope")
	assert.ErrorIs(t, err, ErrSoftwareNotFound)

	sec, err := site.MuseumSection("Other")
	require.NoError(t, err)
	assert.Len(t, sec.Rows, 1)
}

func TestAuditLinks(t *testing.T) {
	audit := AuditLinks(newTestSite(t))

	total := 0
	missing := 0
	for _, a := range audit {
		total += a.Count
		if a.State == "missing" {
			missing += a.Count
		}
	}
	// 两个软件信息框各4个链接，博物馆3行各4个链接
	assert.Equal(t, 2*4+3*4, total)
	assert.Equal(t, 1, missing)
}

func TestFormatReleaseDate(t *testing.T) {
	assert.Equal(t, "9 Sep 2005", FormatReleaseDate("2005-09-09"))
	assert.Equal(t, "sometime", FormatReleaseDate("sometime"))
}

func TestDocs(t *testing.T) {
	site := newTestSite(t, "docs/foo-bar.html", "docs/rms_buddy.html", "docs/zz-notes.txt")
	fs := site.Directory().Fs()
	updated := time.Date(2004, time.March, 7, 12, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("docs/rms_buddy.html", updated, updated))

	docs := site.Docs()
	require.Len(t, docs, 3)
	assert.Equal(t, "Foo Bar", docs[0].Name)
	assert.Equal(t, "Foo Bar", docs[0].Software)
	assert.Equal(t, "RMS Buddy", docs[1].Name)
	assert.Empty(t, docs[1].Software)
	assert.Equal(t, "March 7th 2004", docs[1].Updated)

	var classes []string
	for _, d := range docs {
		classes = append(classes, d.Class)
	}
	assert.Equal(t, []string{RowClassOne, RowClassOther, RowClassOne}, classes)
}

func TestFormatUpdateDate(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2005, time.September, d, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "September 1st 2005", FormatUpdateDate(day(1)))
	assert.Equal(t, "September 2nd 2005", FormatUpdateDate(day(2)))
	assert.Equal(t, "September 3rd 2005", FormatUpdateDate(day(3)))
	assert.Equal(t, "September 11th 2005", FormatUpdateDate(day(11)))
	assert.Equal(t, "September 13th 2005", FormatUpdateDate(day(13)))
	assert.Equal(t, "September 22nd 2005", FormatUpdateDate(day(22)))
	assert.Equal(t, "", FormatUpdateDate(time.Time{}))
}

// resolvedLinks sums site_download_links_total over all label values.
func resolvedLinks(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != "site_download_links_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMuseumSectionResolvesOnlyItsRows(t *testing.T) {
	site := newTestSite(t)
	page := site.Museum()
	require.Len(t, page, 2)

	before := resolvedLinks(t)
	sec, err := site.MuseumSection("other")
	require.NoError(t, err)
	assert.Equal(t, float64(len(models.Platforms)), resolvedLinks(t)-before, "one release, one link per platform")

	assert.Equal(t, page[1], *sec, "rows and striping match the museum page")

	sec, err = site.MuseumSection("Foo Bar")
	require.NoError(t, err)
	assert.Equal(t, page[0], *sec)

	_, err = site.MuseumSection("nope")
	assert.ErrorIs(t, err, ErrSoftwareNotFound)
}
