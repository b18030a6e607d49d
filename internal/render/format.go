package render

import (
	"fmt"
	"strings"
)

// Format is an output format.
type Format string

const (
	// FormatText is the colored human-readable layout.
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
	// FormatTOON is Token-Oriented Object Notation.
	FormatTOON Format = "toon"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toon":
		return FormatTOON, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected text, json, yaml, or toon)", s)
	}
}
