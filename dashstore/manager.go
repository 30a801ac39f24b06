// Package dashstore is the persistence core of the dashboard.
//
// A Manager owns three logical stores, each backed by one local file:
//
//   - MaintenanceLog: append-only JSON list of maintenance events
//   - ComparisonLog: append-only CSV table of paired comparisons
//   - PartStatusTable: JSON mapping from part id to its latest status
//
// Every operation reads the whole file and, for mutations, writes the whole
// file back. Files are created on construction when absent.
//
// Basic usage:
//
//	m, err := dashstore.New(dashstore.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	_, err = m.Maintenance().AddRecord(types.MaintenanceRecord{
//	    Part:            "Motor",
//	    MaintenanceType: types.Preventive,
//	    Description:     "Troca de óleo",
//	    Cost:            150,
//	})
package dashstore

import (
	"fmt"
	"log/slog"

	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/types"
)

// Manager groups the three stores of one data directory
type Manager struct {
	cfg    Config
	paths  Paths
	logger *slog.Logger

	maintenance *MaintenanceLog
	comparisons *ComparisonLog
	parts       *PartStatusTable
}

// New validates cfg, builds the stores and makes sure every data file exists.
// The options are passed to the underlying document and table stores.
func New(cfg Config, opts ...store.Option) (*Manager, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	paths := cfg.Paths()
	docs := store.NewDocumentStore(opts...)
	tables := store.NewTableStore(opts...)

	m := &Manager{
		cfg:         cfg,
		paths:       paths,
		logger:      docs.Logger(),
		maintenance: newMaintenanceLog(paths.Maintenance, docs),
		comparisons: newComparisonLog(paths.Comparison, tables),
		parts:       newPartStatusTable(paths.PartStatus, docs),
	}

	if err := m.EnsureInitialized(); err != nil {
		return nil, err
	}
	return m, nil
}

// EnsureInitialized creates any missing data file with its empty content:
// an empty list, an empty mapping and a header-only table. Existing files are
// left untouched, so calling it again is a no-op.
func (m *Manager) EnsureInitialized() error {
	steps := []struct {
		name   string
		ensure func() (bool, error)
	}{
		{"maintenance", m.maintenance.ensure},
		{"comparison", m.comparisons.ensure},
		{"part status", m.parts.ensure},
	}

	for _, step := range steps {
		created, err := step.ensure()
		if err != nil {
			return fmt.Errorf("failed to initialize %s file: %w", step.name, err)
		}
		if created {
			m.logger.Info("created data file", "store", step.name)
		}
	}
	return nil
}

// Config returns the configuration the manager was built with
func (m *Manager) Config() Config { return m.cfg }

// Paths returns the resolved data file locations
func (m *Manager) Paths() Paths { return m.paths }

// Maintenance returns the maintenance log
func (m *Manager) Maintenance() *MaintenanceLog { return m.maintenance }

// Comparisons returns the comparison log
func (m *Manager) Comparisons() *ComparisonLog { return m.comparisons }

// Parts returns the part status table
func (m *Manager) Parts() *PartStatusTable { return m.parts }

// AddRecord appends a maintenance record
func (m *Manager) AddRecord(rec types.MaintenanceRecord) (types.MaintenanceRecord, error) {
	return m.maintenance.AddRecord(rec)
}

// MaintenanceHistory returns every maintenance record in insertion order
func (m *Manager) MaintenanceHistory() ([]types.MaintenanceRecord, error) {
	return m.maintenance.History()
}

// AddComparison appends a comparison row
func (m *Manager) AddComparison(item1, item2, difference interface{}) (types.ComparisonRecord, error) {
	return m.comparisons.Add(item1, item2, difference)
}

// ComparisonHistory returns the comparison table
func (m *Manager) ComparisonHistory() (types.ComparisonTable, error) {
	return m.comparisons.History()
}

// SetStatus records the latest status of a part
func (m *Manager) SetStatus(partID, status string) (types.PartStatusEntry, error) {
	return m.parts.SetStatus(partID, status)
}

// Status looks up one part
func (m *Manager) Status(partID string) (types.PartStatusEntry, bool, error) {
	return m.parts.Status(partID)
}

// Statuses returns the status of every part
func (m *Manager) Statuses() (types.PartStatusMap, error) {
	return m.parts.All()
}
