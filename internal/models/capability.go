package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CapabilityKind 功能支持状态
type CapabilityKind int

const (
	Unsupported CapabilityKind = iota
	Supported
	Uncertain
	Forthcoming
)

const (
	SymbolYes         = "•"
	SymbolNo          = " "
	SymbolUncertain   = "?"
	SymbolForthcoming = "☆"
)

var ErrInvalidCapability = errors.New("invalid capability value")

/**
 * Host application capability, one cell of the compatibility matrix
 * @property {CapabilityKind} Kind - Supported/Unsupported/Uncertain/Forthcoming
 * @property {string} Since - Version label for Supported values, e.g. "4.0" or "1.3 (Windows)"
 * @description
 * - Supported with an empty Since is the plain "yes"
 * - Only Supported counts when filtering, Uncertain and Forthcoming are shown but never match
 */
type Capability struct {
	Kind  CapabilityKind
	Since string
}

func Yes() Capability                  { return Capability{Kind: Supported} }
func No() Capability                   { return Capability{Kind: Unsupported} }
func SinceVersion(v string) Capability { return Capability{Kind: Supported, Since: v} }
func Unsure() Capability               { return Capability{Kind: Uncertain} }
func Upcoming() Capability             { return Capability{Kind: Forthcoming} }

// Counts reports whether the capability satisfies an active filter.
func (c Capability) Counts() bool {
	return c.Kind == Supported
}

// IsBoolean reports whether the value renders as a glyph rather than text.
func (c Capability) IsBoolean() bool {
	return c.Kind == Unsupported || (c.Kind == Supported && c.Since == "")
}

/**
 * Text shown in the compatibility matrix cell
 * @returns {string} Glyph for boolean-like values, the verbatim label otherwise
 */
func (c Capability) Cell() string {
	switch c.Kind {
	case Supported:
		if c.Since == "" {
			return SymbolYes
		}
		return c.Since
	case Uncertain:
		return SymbolUncertain
	case Forthcoming:
		return SymbolForthcoming
	default:
		return SymbolNo
	}
}

func (c Capability) String() string {
	switch c.Kind {
	case Supported:
		if c.Since == "" {
			return "yes"
		}
		return c.Since
	case Uncertain:
		return SymbolUncertain
	case Forthcoming:
		return "forthcoming"
	default:
		return "no"
	}
}

/**
 * Parse a capability from its textual form
 * @param {string} s - "yes"/"true", "no"/"false"/"", "?", "forthcoming"/"☆" or a version label
 * @returns {Capability} Parsed capability
 */
func ParseCapability(s string) Capability {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "no", "false":
		return No()
	case "yes", "true":
		return Yes()
	case SymbolUncertain, "unsure", "uncertain":
		return Unsure()
	case SymbolForthcoming, "forthcoming":
		return Upcoming()
	}
	return SinceVersion(s)
}

// UnmarshalYAML accepts booleans, version labels and the marker strings.
func (c *Capability) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidCapability, value.Line)
	}
	switch value.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(value.Value)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCapability, value.Value)
		}
		if b {
			*c = Yes()
		} else {
			*c = No()
		}
	case "!!null":
		*c = No()
	default:
		// 数字按原文保留，"5.4"不能变成5.4000001
		*c = ParseCapability(value.Value)
	}
	return nil
}

// MarshalJSON keeps the boolean/string shape of the original data.
func (c Capability) MarshalJSON() ([]byte, error) {
	switch {
	case c.Kind == Unsupported:
		return []byte("false"), nil
	case c.Kind == Supported && c.Since == "":
		return []byte("true"), nil
	case c.Kind == Forthcoming:
		return json.Marshal("forthcoming")
	default:
		return json.Marshal(c.String())
	}
}
