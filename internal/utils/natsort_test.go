package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Ableton Live", "acid Pro", -1},
		{"acid Pro", "ACID Pro", 0},
		{"Track 9", "Track 10", -1},
		{"Track 10", "Track 9", 1},
		{"1.05", "1.5", -1},
		{"  Logic", "Logic", 0},
		{"Cubase", "Cubase SX", -1},
		{"", "a", -1},
		{"b", "", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NaturalCompare(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSortNaturalIsStable(t *testing.T) {
	type host struct{ name, tag string }
	hosts := []host{
		{"ACID Pro", "first"},
		{"Reaper", ""},
		{"acid Pro", "second"},
		{"Ableton Live", ""},
		{"Digital Performer 10", ""},
		{"Digital Performer 9", ""},
	}
	SortNatural(hosts, func(h host) string { return h.name })

	want := []host{
		{"Ableton Live", ""},
		{"ACID Pro", "first"},
		{"acid Pro", "second"},
		{"Digital Performer 9", ""},
		{"Digital Performer 10", ""},
		{"Reaper", ""},
	}
	if diff := cmp.Diff(want, hosts, cmp.AllowUnexported(host{})); diff != "" {
		t.Errorf("SortNatural mismatch (-want +got):\n%s", diff)
	}
}
