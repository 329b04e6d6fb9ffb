package models

import (
	"net/url"
	"strings"
)

/**
 * Host application row of the compatibility listing
 * @property {string} name - Host display name, the sort key
 * @property {string} url - Vendor home page, optional
 * @property {Capability} au/vst/tempo/midi/instruments/mac/windows - Capability columns
 * @property {bool} free - Host is free software
 */
type HostEntry struct {
	Name        string     `yaml:"name" json:"name"`
	URL         string     `yaml:"url,omitempty" json:"url,omitempty"`
	AU          Capability `yaml:"au" json:"au"`
	VST         Capability `yaml:"vst" json:"vst"`
	Tempo       Capability `yaml:"tempo" json:"tempo"`
	MIDI        Capability `yaml:"midi" json:"midi"`
	Instruments Capability `yaml:"instruments" json:"instruments"`
	Mac         Capability `yaml:"mac" json:"mac"`
	Windows     Capability `yaml:"windows" json:"windows"`
	Free        bool       `yaml:"free,omitempty" json:"free"`
}

// FilterKey 过滤条件名称，同时也是查询参数名
type FilterKey string

const (
	FilterAU          FilterKey = "au"
	FilterVST         FilterKey = "vst"
	FilterTempo       FilterKey = "tempo"
	FilterMIDI        FilterKey = "midi"
	FilterInstruments FilterKey = "instruments"
	FilterMac         FilterKey = "mac"
	FilterWindows     FilterKey = "windows"
)

// FilterKeys lists the recognised keys in query-string order.
var FilterKeys = []FilterKey{
	FilterAU,
	FilterVST,
	FilterTempo,
	FilterMIDI,
	FilterInstruments,
	FilterMac,
	FilterWindows,
}

// IsFilterKey reports whether s names one of the listing filters.
func IsFilterKey(s string) bool {
	for _, k := range FilterKeys {
		if string(k) == s {
			return true
		}
	}
	return false
}

// Capability returns the column selected by key.
func (h *HostEntry) Capability(key FilterKey) Capability {
	switch key {
	case FilterAU:
		return h.AU
	case FilterVST:
		return h.VST
	case FilterTempo:
		return h.Tempo
	case FilterMIDI:
		return h.MIDI
	case FilterInstruments:
		return h.Instruments
	case FilterMac:
		return h.Mac
	case FilterWindows:
		return h.Windows
	}
	return No()
}

// Capabilities returns the seven columns in FilterKeys order.
func (h *HostEntry) Capabilities() []Capability {
	caps := make([]Capability, 0, len(FilterKeys))
	for _, k := range FilterKeys {
		caps = append(caps, h.Capability(k))
	}
	return caps
}

/**
 * Filter state of one listing request
 * @property {map[FilterKey]bool} On - Enabled filters; missing keys are off
 * @property {bool} Filtered - At least one recognised key was present in the request
 */
type FilterSet struct {
	On       map[FilterKey]bool
	Filtered bool
}

/**
 * Build the filter state from request query parameters
 * @param {url.Values} query - Request query parameters
 * @returns {FilterSet} Filter state; unknown parameters are ignored
 * @description
 * - A present key switches the page into filtered mode even when its value is false
 * - A value is true unless it is empty or "0"
 */
func ParseFilterSet(query url.Values) FilterSet {
	fs := FilterSet{On: map[FilterKey]bool{}}
	for _, k := range FilterKeys {
		values, ok := query[string(k)]
		if !ok {
			continue
		}
		fs.Filtered = true
		v := ""
		if len(values) > 0 {
			v = values[0]
		}
		if v != "" && v != "0" {
			fs.On[k] = true
		}
	}
	return fs
}

// NewFilterSet enables the given keys.
func NewFilterSet(keys ...FilterKey) FilterSet {
	fs := FilterSet{On: map[FilterKey]bool{}}
	for _, k := range keys {
		fs.On[k] = true
		fs.Filtered = true
	}
	return fs
}

func (f FilterSet) IsOn(key FilterKey) bool {
	return f.On[key]
}

// Active returns the enabled keys in FilterKeys order.
func (f FilterSet) Active() []FilterKey {
	var keys []FilterKey
	for _, k := range FilterKeys {
		if f.On[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

/**
 * Query string of the current filter state with one key flipped
 * @param {FilterKey} key - Column being toggled
 * @returns {string} e.g. "au=1&vst=1", "" when no filter would remain on
 * @description
 * - Keys that end up false are omitted, absence means off
 * - Unrecognised keys produce the current state unchanged
 */
func (f FilterSet) ToggleQuery(key FilterKey) string {
	var parts []string
	for _, k := range FilterKeys {
		on := f.On[k]
		if k == key {
			on = !on
		}
		if on {
			parts = append(parts, string(k)+"=1")
		}
	}
	return strings.Join(parts, "&")
}

// ToggleURL prefixes the toggle query with the page path.
func (f FilterSet) ToggleURL(path string, key FilterKey) string {
	q := f.ToggleQuery(key)
	if q == "" {
		return path
	}
	return path + "?" + q
}
