package utils

import (
	"sort"

	"github.com/hashicorp/go-version"
)

/**
 * Compare two release numbers
 * @param {string} a - Version string such as "1.0.4"
 * @param {string} b - Version string such as "1.1"
 * @returns {int} Negative if a < b, zero if equal, positive if a > b
 * @description
 * - Uses semantic comparison, "1.10" sorts after "1.9"
 * - Strings that are not versions fall back to natural string order
 * @example
 * CompareVersion("1.0.4", "1.1")  // < 0
 * CompareVersion("2.0", "1.1.2")  // > 0
 */
func CompareVersion(a, b string) int {
	va, errA := version.NewVersion(a)
	vb, errB := version.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return NaturalCompare(a, b)
}

// SortVersionsDesc orders elements newest first.
func SortVersionsDesc[E any](s []E, getVersion func(E) string) {
	sort.SliceStable(s, func(i, j int) bool {
		return CompareVersion(getVersion(s[i]), getVersion(s[j])) > 0
	})
}
