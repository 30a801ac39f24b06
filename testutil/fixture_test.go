package testutil

import (
	"testing"
)

func TestSeedFleet(t *testing.T) {
	m := NewManager(t)
	fleet := SeedFleet(t, m)

	if len(fleet.Maintenance) != 3 {
		t.Fatalf("expected 3 maintenance records, got %d", len(fleet.Maintenance))
	}
	for _, rec := range fleet.Maintenance {
		if rec.ID == "" || rec.Timestamp == "" {
			t.Errorf("record %q was not stamped: %+v", rec.Description, rec)
		}
	}

	history, err := m.Maintenance().History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 3 || history[1].Description != "Reparo no pistão" {
		t.Errorf("unexpected history %+v", history)
	}

	table, err := m.Comparisons().History()
	if err != nil {
		t.Fatalf("comparison history failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 comparisons, got %d", table.Len())
	}

	if len(fleet.Parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(fleet.Parts))
	}
}

func TestNewConfigIsIsolated(t *testing.T) {
	a := NewConfig(t)
	b := NewConfig(t)
	if a.DataDir == b.DataDir {
		t.Errorf("configs share data dir %s", a.DataDir)
	}
}
