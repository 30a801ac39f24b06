package dashstore

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/types"
)

// fixedClock returns a time function that always reports t
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newMockManager(t *testing.T, opts ...store.Option) (*Manager, *store.MockFileSystem, *store.MockFileLockFactory) {
	t.Helper()
	mockFS := store.NewMockFileSystem()
	locks := store.NewMockFileLockFactory()
	all := append([]store.Option{store.WithFileSystem(mockFS), store.WithFileLockFactory(locks)}, opts...)
	m, err := New(DefaultConfig(), all...)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m, mockFS, locks
}

func oilChange() types.MaintenanceRecord {
	return types.MaintenanceRecord{
		Part:            "Motor",
		MaintenanceType: types.Preventive,
		Description:     "Troca de óleo",
		Cost:            150,
	}
}

func TestMaintenanceAddRecord(t *testing.T) {
	t.Run("valid record is stamped and appended", func(t *testing.T) {
		m, _, _ := newMockManager(t)

		stored, err := m.Maintenance().AddRecord(oilChange())
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := uuid.Parse(stored.ID); err != nil {
			t.Errorf("expected uuid id, got %q", stored.ID)
		}
		if _, err := stored.Time(); err != nil {
			t.Errorf("expected parsable timestamp, got %q", stored.Timestamp)
		}

		history, err := m.Maintenance().History()
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("expected 1 record, got %d", len(history))
		}
		if history[0] != stored {
			t.Errorf("stored %+v, history has %+v", stored, history[0])
		}
	})

	t.Run("caller id and timestamp are replaced", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		rec := oilChange()
		rec.ID = "mine"
		rec.Timestamp = "1999-01-01T00:00:00Z"

		stored, err := m.Maintenance().AddRecord(rec)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if stored.ID == "mine" || stored.Timestamp == rec.Timestamp {
			t.Errorf("caller values kept: %+v", stored)
		}
	})

	t.Run("empty part and description are stored", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		rec := oilChange()
		rec.Part = ""
		rec.Description = ""

		stored, err := m.Maintenance().AddRecord(rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Part != "" || stored.Description != "" {
			t.Errorf("expected empty text kept, got %+v", stored)
		}
	})

	t.Run("form with empty description is accepted", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		stored, err := m.Maintenance().AddRecordFields(map[string]interface{}{
			"peca":            "Motor",
			"tipo_manutencao": "Preventiva",
			"descricao":       "",
			"custo":           0.0,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		history, err := m.Maintenance().History()
		if err != nil || len(history) != 1 || history[0].Description != "" || history[0].ID != stored.ID {
			t.Errorf("unexpected history %+v, %v", history, err)
		}
	})

	t.Run("form without part is a validation error", func(t *testing.T) {
		m, mockFS, _ := newMockManager(t)
		writes := mockFS.Writes

		_, err := m.Maintenance().AddRecordFields(map[string]interface{}{
			"tipo_manutencao": "Preventiva",
			"descricao":       "Troca de óleo",
			"custo":           150.0,
		})
		var verr *types.ValidationError
		if !errors.As(err, &verr) || verr.Field != "peca" {
			t.Fatalf("expected validation error on peca, got %v", err)
		}
		if mockFS.Writes != writes {
			t.Error("invalid record must not touch the file")
		}
	})

	t.Run("negative cost is rejected", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		rec := oilChange()
		rec.Cost = -1

		if _, err := m.Maintenance().AddRecord(rec); !errors.Is(err, types.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		rec := oilChange()
		rec.MaintenanceType = "Cosmética"

		if _, err := m.Maintenance().AddRecord(rec); !errors.Is(err, types.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("N records come back in append order", func(t *testing.T) {
		m, _, _ := newMockManager(t)
		descriptions := []string{"um", "dois", "três", "quatro", "cinco"}
		for _, d := range descriptions {
			rec := oilChange()
			rec.Description = d
			if _, err := m.Maintenance().AddRecord(rec); err != nil {
				t.Fatalf("add %s failed: %v", d, err)
			}
		}

		history, err := m.Maintenance().History()
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(history) != len(descriptions) {
			t.Fatalf("expected %d records, got %d", len(descriptions), len(history))
		}
		for i, d := range descriptions {
			if history[i].Description != d {
				t.Errorf("record %d: expected %q, got %q", i, d, history[i].Description)
			}
		}
		if !IsChronological(history) {
			t.Error("history should be chronological")
		}
	})

	t.Run("stopped clock still yields increasing timestamps", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
		m, _, _ := newMockManager(t, store.WithTimeFunc(fixedClock(now)))

		first, err := m.Maintenance().AddRecord(oilChange())
		if err != nil {
			t.Fatal(err)
		}
		second, err := m.Maintenance().AddRecord(oilChange())
		if err != nil {
			t.Fatal(err)
		}

		t1, _ := first.Time()
		t2, _ := second.Time()
		if !t2.After(t1) {
			t.Errorf("expected %s after %s", second.Timestamp, first.Timestamp)
		}
	})

	t.Run("write failure is a storage write error", func(t *testing.T) {
		m, mockFS, _ := newMockManager(t)
		mockFS.WriteFileError = errors.New("disk full")

		_, err := m.Maintenance().AddRecord(oilChange())
		if !errors.Is(err, types.ErrStorageWrite) {
			t.Fatalf("expected storage write error, got %v", err)
		}
	})

	t.Run("locked file is a storage write error", func(t *testing.T) {
		m, _, locks := newMockManager(t, store.WithLockTimeout(50*time.Millisecond))
		locks.Lock(m.Paths().Maintenance + ".lock").HeldElsewhere = true

		_, err := m.Maintenance().AddRecord(oilChange())
		if !errors.Is(err, types.ErrStorageWrite) {
			t.Fatalf("expected storage write error, got %v", err)
		}
	})

	t.Run("corrupt file is a storage read error", func(t *testing.T) {
		m, mockFS, _ := newMockManager(t)
		mockFS.SetFileContent(m.Paths().Maintenance, []byte("{oops"))

		if _, err := m.Maintenance().History(); !errors.Is(err, types.ErrStorageRead) {
			t.Fatalf("expected storage read error, got %v", err)
		}
		if _, err := m.Maintenance().AddRecord(oilChange()); !errors.Is(err, types.ErrStorageRead) {
			t.Fatalf("expected storage read error on add, got %v", err)
		}
	})
}

func TestMaintenanceAddRecordFields(t *testing.T) {
	tests := []struct {
		name      string
		fields    map[string]interface{}
		wantField string
	}{
		{
			name:      "missing part",
			fields:    map[string]interface{}{"tipo_manutencao": "Preventiva", "descricao": "x", "custo": 10},
			wantField: "peca",
		},
		{
			name:      "missing cost",
			fields:    map[string]interface{}{"peca": "Motor", "tipo_manutencao": "Preventiva", "descricao": "x"},
			wantField: "custo",
		},
		{
			name:      "string cost",
			fields:    map[string]interface{}{"peca": "Motor", "tipo_manutencao": "Preventiva", "descricao": "x", "custo": "150"},
			wantField: "custo",
		},
		{
			name:   "persisted keys",
			fields: map[string]interface{}{"peca": "Motor", "tipo_manutencao": "Preventiva", "descricao": "x", "custo": 150},
		},
		{
			name:   "english keys",
			fields: map[string]interface{}{"part": "Freios", "maintenance_type": "corrective", "description": "y", "cost": 99.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newMockManager(t)

			_, err := m.Maintenance().AddRecordFields(tt.fields)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				history, _ := m.Maintenance().History()
				if len(history) != 1 {
					t.Errorf("expected 1 record, got %d", len(history))
				}
				return
			}

			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, verr.Field)
			}
		})
	}
}
