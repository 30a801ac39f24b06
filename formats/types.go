// Package formats renders command results for the terminal.
package formats

import (
	"fmt"
	"io"
	"sort"
)

// Table is the row and column view of a result
type Table struct {
	Headers []string
	Rows    [][]string
}

// Result is what a command hands to a renderer: the structured value for
// machine readable formats and its table view for human readable ones
type Result struct {
	Value interface{}
	Table Table
}

// OutputFormat defines how results are written
type OutputFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Render writes r to w
	Render func(w io.Writer, r Result) error
}

// registry holds all available output formats
var registry = make(map[string]*OutputFormat)

// Register adds a new output format to the registry
func Register(format *OutputFormat) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns an output format by name
func Get(name string) (*OutputFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, List())
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func mustRegister(format *OutputFormat) {
	if err := Register(format); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(TableFormat)
	mustRegister(CSV)
	mustRegister(JSON)
	mustRegister(YAML)
}
