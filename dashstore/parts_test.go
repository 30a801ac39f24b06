package dashstore

import (
	"errors"
	"testing"
	"time"

	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/types"
)

func TestPartStatus(t *testing.T) {
	t.Run("set then get", func(t *testing.T) {
		m, _, _ := newMockManager(t)

		set, err := m.Parts().SetStatus("P1", types.StatusInUse)
		if err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, found, err := m.Parts().Status("P1")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !found {
			t.Fatal("P1 not found")
		}
		if got.Status != "Em Uso" {
			t.Errorf("expected Em Uso, got %q", got.Status)
		}
		if got != set {
			t.Errorf("stored %+v, read %+v", set, got)
		}
		if _, err := got.Time(); err != nil {
			t.Errorf("unparsable last updated %q", got.LastUpdated)
		}
	})

	t.Run("second set overwrites with a later timestamp", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := now
		m, _, _ := newMockManager(t, store.WithTimeFunc(func() time.Time { return clock }))

		first, err := m.Parts().SetStatus("P1", types.StatusInUse)
		if err != nil {
			t.Fatal(err)
		}
		// same tick
		second, err := m.Parts().SetStatus("P1", types.StatusInMaintenance)
		if err != nil {
			t.Fatal(err)
		}
		clock = now.Add(-time.Hour)
		third, err := m.Parts().SetStatus("P1", types.StatusInUse)
		if err != nil {
			t.Fatal(err)
		}

		t1, _ := first.Time()
		t2, _ := second.Time()
		t3, _ := third.Time()
		if !t2.After(t1) || !t3.After(t2) {
			t.Errorf("timestamps not increasing: %s, %s, %s", first.LastUpdated, second.LastUpdated, third.LastUpdated)
		}

		got, _, _ := m.Parts().Status("P1")
		if got != third {
			t.Errorf("expected %+v, got %+v", third, got)
		}
	})

	t.Run("unknown part is not an error", func(t *testing.T) {
		m, _, _ := newMockManager(t)

		_, found, err := m.Parts().Status("nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found {
			t.Error("nope should not be found")
		}
	})

	t.Run("all returns every part", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		if _, err := m.Parts().SetStatus("P1", types.StatusNew); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Parts().SetStatus("P2", "Emprestada"); err != nil {
			t.Fatal(err)
		}
		if _, err := m.Parts().SetStatus("P1", types.StatusDiscarded); err != nil {
			t.Fatal(err)
		}

		all, err := m.Parts().All()
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 parts, got %d", len(all))
		}
		if all["P1"].Status != types.StatusDiscarded || all["P2"].Status != "Emprestada" {
			t.Errorf("unexpected mapping %+v", all)
		}
	})

	t.Run("fresh table is empty, not nil", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		all, err := m.Parts().All()
		if err != nil || all == nil || len(all) != 0 {
			t.Fatalf("expected empty map, got %v, %v", all, err)
		}
	})

	t.Run("empty text is a valid id and status", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		if _, err := m.Parts().SetStatus("", types.StatusNew); err != nil {
			t.Fatalf("empty part id: %v", err)
		}
		if _, err := m.Parts().SetStatus("P1", ""); err != nil {
			t.Fatalf("empty status: %v", err)
		}

		entry, found, err := m.Parts().Status("")
		if err != nil || !found || entry.Status != types.StatusNew {
			t.Errorf("expected entry under empty id, got %+v, %v, %v", entry, found, err)
		}
		entry, found, err = m.Parts().Status("P1")
		if err != nil || !found || entry.Status != "" {
			t.Errorf("expected empty status for P1, got %+v, %v, %v", entry, found, err)
		}
	})

	t.Run("legacy file with null is treated as empty", func(t *testing.T) {
		m, mockFS, _ := newMockManager(t)
		mockFS.SetFileContent(m.Paths().PartStatus, []byte("null"))

		if _, err := m.Parts().SetStatus("P1", types.StatusNew); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		all, err := m.Parts().All()
		if err != nil || len(all) != 1 {
			t.Fatalf("expected 1 part, got %v, %v", all, err)
		}
	})

	t.Run("unreadable file is a storage read error", func(t *testing.T) {
		m, mockFS, _ := newMockManager(t)
		mockFS.ReadFileError = errors.New("io error")

		if _, _, err := m.Parts().Status("P1"); !errors.Is(err, types.ErrStorageRead) {
			t.Fatalf("expected storage read error, got %v", err)
		}
	})
}

func TestSnapshotDecode(t *testing.T) {
	m, _, _ := newMockManager(t)
	if _, err := m.Parts().SetStatus("P1", types.StatusInUse); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Maintenance().AddRecord(oilChange()); err != nil {
		t.Fatal(err)
	}

	raw, err := m.Parts().Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	parts, err := m.Parts().Decode(raw)
	if err != nil || len(parts) != 1 || parts["P1"].Status != types.StatusInUse {
		t.Errorf("unexpected parts %+v, %v", parts, err)
	}

	raw, err = m.Maintenance().Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	records, err := m.Maintenance().Decode(raw)
	if err != nil || len(records) != 1 || records[0].Part != oilChange().Part {
		t.Errorf("unexpected records %+v, %v", records, err)
	}

	if _, err := m.Parts().Decode([]byte("{broken")); !errors.Is(err, types.ErrStorageRead) {
		t.Errorf("expected storage read error, got %v", err)
	}
	if empty, err := m.Maintenance().Decode([]byte("null")); err != nil || empty == nil {
		t.Errorf("expected empty list for null, got %v, %v", empty, err)
	}
}
