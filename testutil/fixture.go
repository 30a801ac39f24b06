// Package testutil builds isolated dashboards for tests.
package testutil

import (
	_ "embed"
	"encoding/json"
	"testing"

	"github.com/sohipren/dashboard/dashstore"
	"github.com/sohipren/dashboard/types"
)

//go:embed testdata/fleet.json
var fleetJSON []byte

// Fleet is the typed view of the seeded fixture.
// Records carry the ids and timestamps assigned when they were stored.
type Fleet struct {
	Maintenance []types.MaintenanceRecord
	Comparisons []types.ComparisonRecord
	Parts       types.PartStatusMap
}

type fleetComparison struct {
	Item1      string  `json:"item1"`
	Item2      string  `json:"item2"`
	Difference float64 `json:"diferenca"`
}

type fleetPart struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type fleetData struct {
	Maintenance []types.MaintenanceRecord `json:"maintenance"`
	Comparisons []fleetComparison         `json:"comparisons"`
	Parts       []fleetPart               `json:"parts"`
}

// NewConfig returns the default layout rooted in a fresh temp directory
func NewConfig(t *testing.T) dashstore.Config {
	t.Helper()
	return dashstore.DefaultConfig().WithDataDir(t.TempDir())
}

// NewManager builds a manager over NewConfig
func NewManager(t *testing.T) *dashstore.Manager {
	t.Helper()
	m, err := dashstore.New(NewConfig(t))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

// SeedFleet stores the fixture through m:
//   - 3 maintenance records (Motor twice, Freios once; 150, 500, 200)
//   - 2 comparisons (450 and 325)
//   - 2 parts (MOTOR-01 "Em Uso", FREIO-02 "Necessita Manutenção")
func SeedFleet(t *testing.T, m *dashstore.Manager) *Fleet {
	t.Helper()

	var fixture fleetData
	if err := json.Unmarshal(fleetJSON, &fixture); err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}

	fleet := &Fleet{Parts: types.PartStatusMap{}}
	for _, rec := range fixture.Maintenance {
		stored, err := m.Maintenance().AddRecord(rec)
		if err != nil {
			t.Fatalf("failed to add maintenance record %q: %v", rec.Description, err)
		}
		fleet.Maintenance = append(fleet.Maintenance, stored)
	}
	for _, c := range fixture.Comparisons {
		stored, err := m.Comparisons().Add(c.Item1, c.Item2, c.Difference)
		if err != nil {
			t.Fatalf("failed to add comparison %s/%s: %v", c.Item1, c.Item2, err)
		}
		fleet.Comparisons = append(fleet.Comparisons, stored)
	}
	for _, p := range fixture.Parts {
		entry, err := m.Parts().SetStatus(p.ID, p.Status)
		if err != nil {
			t.Fatalf("failed to set status of %s: %v", p.ID, err)
		}
		fleet.Parts[p.ID] = entry
	}
	return fleet
}
