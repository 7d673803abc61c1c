package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names an on-disk or on-wire representation of an automaton.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatGrid  Format = "grid"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table" // output only: markdown table rendered for the terminal
)

// ParseFormat validates a user-supplied format name. Empty means auto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatGrid, FormatYAML, FormatJSON, FormatTable:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat resolves FormatAuto from a file name: .yaml/.yml and .json
// select the structured formats, anything else is the grid format.
func DetectFormat(f Format, path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatGrid
}
