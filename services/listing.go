package services

import (
	"dfx-site/internal/models"
	"dfx-site/internal/utils"
)

const (
	RowClassOne   = "one_row"
	RowClassOther = "other_row"

	SymbolFree        = "◊"
	SymbolTempo       = "*"
	SymbolMIDI        = "†"
	SymbolInstruments = "§"
)

/**
 * Filter and order the host compatibility rows
 * @param {[]models.HostEntry} all - Registered hosts, not modified
 * @param {models.FilterSet} filters - Active filters
 * @returns {[]models.HostEntry} Hosts supporting every active filter, natural case-insensitive by name
 * @description
 * - An active filter keeps a host only when its column is Supported; "?" and forthcoming never match
 * - Inactive filters impose nothing
 * - Sorting is stable, hosts with equal names keep their registration order
 */
func BuildListing(all []models.HostEntry, filters models.FilterSet) []models.HostEntry {
	active := filters.Active()
	result := make([]models.HostEntry, 0, len(all))
	for _, h := range all {
		if matchesAll(&h, active) {
			result = append(result, h)
		}
	}
	utils.SortNatural(result, func(h models.HostEntry) string { return h.Name })
	return result
}

func matchesAll(h *models.HostEntry, active []models.FilterKey) bool {
	for _, k := range active {
		if !h.Capability(k).Counts() {
			return false
		}
	}
	return true
}

// RowClass alternates row styles by position in the rendered sequence.
func RowClass(i int) string {
	if i%2 == 0 {
		return RowClassOne
	}
	return RowClassOther
}

// ListingColumn 表头单元格
type ListingColumn struct {
	Title    string
	Key      models.FilterKey
	URL      string
	Class    string
	Footnote string
}

// ListingRow 渲染用的一行
type ListingRow struct {
	Class string
	Name  string
	URL   string
	Free  bool
	Cells []string
}

// HostListing 宿主程序兼容性表格页面数据
type HostListing struct {
	Columns    []ListingColumn
	Rows       []ListingRow
	Filtered   bool
	ViewAllURL string
	Total      int
}

var listingColumns = []ListingColumn{
	{Title: "AU support", Key: models.FilterAU},
	{Title: "VST support", Key: models.FilterVST},
	{Title: "tempo sync", Key: models.FilterTempo, Footnote: SymbolTempo},
	{Title: "MIDI for effects", Key: models.FilterMIDI, Footnote: SymbolMIDI},
	{Title: "instruments", Key: models.FilterInstruments, Footnote: SymbolInstruments},
	{Title: "Mac OS X", Key: models.FilterMac},
	{Title: "Windows", Key: models.FilterWindows},
}

/**
 * Build the view model of the host listing page
 * @param {string} pagePath - Path of the listing page, base of the toggle links
 * @param {[]models.HostEntry} all - Registered hosts
 * @param {models.FilterSet} filters - Filters of the current request
 * @returns {HostListing} Columns with toggle links and striped rows
 */
func NewHostListing(pagePath string, all []models.HostEntry, filters models.FilterSet) HostListing {
	listing := HostListing{
		Filtered:   filters.Filtered,
		ViewAllURL: pagePath,
		Total:      len(all),
	}

	listing.Columns = append(listing.Columns, ListingColumn{Title: "host name", Class: "columnname"})
	for _, c := range listingColumns {
		c.URL = filters.ToggleURL(pagePath, c.Key)
		c.Class = "columnname"
		if filters.IsOn(c.Key) {
			c.Class = "columnname_selected"
		}
		listing.Columns = append(listing.Columns, c)
	}

	for i, h := range BuildListing(all, filters) {
		row := ListingRow{
			Class: RowClass(i),
			Name:  h.Name,
			URL:   h.URL,
			Free:  h.Free,
		}
		for _, c := range h.Capabilities() {
			row.Cells = append(row.Cells, c.Cell())
		}
		listing.Rows = append(listing.Rows, row)
	}
	return listing
}
