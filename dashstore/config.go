package dashstore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config locates the three data files of a dashboard.
// Relative file names are resolved against DataDir; absolute ones are used as is.
type Config struct {
	DataDir         string `mapstructure:"data_dir" json:"data_dir" yaml:"data_dir"`
	MaintenanceFile string `mapstructure:"maintenance_file" json:"maintenance_file" yaml:"maintenance_file"`
	ComparisonFile  string `mapstructure:"comparison_file" json:"comparison_file" yaml:"comparison_file"`
	PartStatusFile  string `mapstructure:"part_status_file" json:"part_status_file" yaml:"part_status_file"`
}

// Paths holds the resolved location of every data file
type Paths struct {
	Maintenance string
	Comparison  string
	PartStatus  string
}

// All returns the paths in initialization order
func (p Paths) All() []string {
	return []string{p.Maintenance, p.Comparison, p.PartStatus}
}

// DefaultConfig returns the layout the dashboard has always used:
// everything under ./data
func DefaultConfig() Config {
	return Config{
		DataDir:         "data",
		MaintenanceFile: "maintenance.json",
		ComparisonFile:  "comparison_history.csv",
		PartStatusFile:  "parts_status.json",
	}
}

// WithDataDir returns a copy of c rooted at dir
func (c Config) WithDataDir(dir string) Config {
	c.DataDir = dir
	return c
}

// Paths resolves the file names of c
func (c Config) Paths() Paths {
	return Paths{
		Maintenance: c.resolve(c.MaintenanceFile),
		Comparison:  c.resolve(c.ComparisonFile),
		PartStatus:  c.resolve(c.PartStatusFile),
	}
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) || c.DataDir == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(c.DataDir, name)
}

// ValidateConfig checks that every file is named and that no two logical
// stores share a file
func ValidateConfig(c Config) error {
	names := map[string]string{
		"maintenance_file": c.MaintenanceFile,
		"comparison_file":  c.ComparisonFile,
		"part_status_file": c.PartStatusFile,
	}
	for _, key := range []string{"maintenance_file", "comparison_file", "part_status_file"} {
		if strings.TrimSpace(names[key]) == "" {
			return fmt.Errorf("%s cannot be empty", key)
		}
	}

	seen := make(map[string]bool)
	for _, p := range c.Paths().All() {
		if seen[p] {
			return fmt.Errorf("file %q is configured for more than one store", p)
		}
		seen[p] = true
	}

	if !strings.EqualFold(filepath.Ext(c.ComparisonFile), ".csv") {
		return fmt.Errorf("comparison_file must be a .csv file, got %q", c.ComparisonFile)
	}
	return nil
}
