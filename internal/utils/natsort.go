package utils

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

/**
 * Natural, case-insensitive string comparison
 * @param {string} a - First string
 * @param {string} b - Second string
 * @returns {int} -1, 0 or 1
 * @description
 * - Letters compare case-folded, "ACID Pro" equals "acid pro"
 * - Runs of digits compare by numeric value, "Track 9" < "Track 10"
 * - Runs with leading zeros compare as fractions, "1.05" < "1.5"
 * - Leading white space is ignored
 * @example
 * NaturalCompare("Ableton Live", "ACID Pro") // -1
 */
func NaturalCompare(a, b string) int {
	a = trimLeftSpace(a)
	b = trimLeftSpace(b)
	for a != "" && b != "" {
		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		if isDigit(ra) && isDigit(rb) {
			da, restA := digitRun(a)
			db, restB := digitRun(b)
			var c int
			if da[0] == '0' || db[0] == '0' {
				c = compareFraction(da, db)
			} else {
				c = compareInteger(da, db)
			}
			if c != 0 {
				return c
			}
			a, b = restA, restB
			continue
		}
		fa, fb := unicode.ToLower(ra), unicode.ToLower(rb)
		if fa != fb {
			if fa < fb {
				return -1
			}
			return 1
		}
		a, b = a[sa:], b[sb:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}

// SortNatural stable-sorts elements by a name in natural case-insensitive order.
func SortNatural[E any](s []E, getName func(E) string) {
	sort.SliceStable(s, func(i, j int) bool {
		return NaturalCompare(getName(s[i]), getName(s[j])) < 0
	})
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func trimLeftSpace(s string) string {
	for s != "" {
		r, n := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			break
		}
		s = s[n:]
	}
	return s
}

func digitRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(rune(s[i])) {
		i++
	}
	return s[:i], s[i:]
}

// 整数：位数多者大，位数相同逐位比较
func compareInteger(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return compareDigits(a, b)
}

// 前导零：按小数逐位比较，较短者在前
func compareFraction(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if c := compareDigits(a[:n], b[:n]); c != 0 {
		return c
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func compareDigits(a, b string) int {
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
