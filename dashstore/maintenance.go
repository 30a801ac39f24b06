package dashstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/sohipren/dashboard/dashstore/storage"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/internal/validation"
	"github.com/sohipren/dashboard/types"
)

// MaintenanceLog is the append-only list of maintenance events.
// Records are never updated or removed once written.
type MaintenanceLog struct {
	path  string
	docs  *store.DocumentStore
	locks *storage.LockManager
}

func newMaintenanceLog(path string, docs *store.DocumentStore) *MaintenanceLog {
	return &MaintenanceLog{
		path:  path,
		docs:  docs,
		locks: storage.NewLockManager(),
	}
}

func (l *MaintenanceLog) ensure() (bool, error) {
	return l.docs.EnsureDocument(l.path, []types.MaintenanceRecord{})
}

// Snapshot returns the raw content of the backing file
func (l *MaintenanceLog) Snapshot() ([]byte, error) {
	return storage.Query(l.locks, func() ([]byte, error) {
		return l.docs.Snapshot(l.path)
	})
}

// Path returns the file backing the log
func (l *MaintenanceLog) Path() string { return l.path }

// AddRecord validates rec, stamps it with a fresh id and the current time and
// appends it. Any ID or Timestamp set by the caller is replaced. The stored
// record is returned.
//
// The timestamp is never earlier than the one of the last stored record, so
// the log stays chronological even if the wall clock steps back.
func (l *MaintenanceLog) AddRecord(rec types.MaintenanceRecord) (types.MaintenanceRecord, error) {
	if err := validation.ValidateMaintenance(rec); err != nil {
		return types.MaintenanceRecord{}, err
	}

	err := l.locks.Execute(storage.WriteOperation, func() error {
		var records []types.MaintenanceRecord
		return l.docs.Update(l.path, &records, func() error {
			var prev time.Time
			if n := len(records); n > 0 {
				prev, _ = records[n-1].Time()
			}
			rec.ID = uuid.NewString()
			rec.Timestamp = types.FormatTimestamp(types.NextTimestamp(l.docs.Now(), prev))
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return types.MaintenanceRecord{}, err
	}

	l.docs.Logger().Debug("added maintenance record", "id", rec.ID, "part", rec.Part, "type", rec.MaintenanceType)
	return rec, nil
}

// AddRecordFields builds a record from a loosely typed form submission and
// appends it. Keys may be the stored names (peca, tipo_manutencao, descricao,
// custo) or part, maintenance_type, description, cost. A missing key or a
// non-numeric cost is a *types.ValidationError.
func (l *MaintenanceLog) AddRecordFields(fields map[string]interface{}) (types.MaintenanceRecord, error) {
	rec, err := validation.MaintenanceFromFields(fields)
	if err != nil {
		return types.MaintenanceRecord{}, err
	}
	return l.AddRecord(rec)
}

// History returns the full list in storage order. It is never nil.
func (l *MaintenanceLog) History() ([]types.MaintenanceRecord, error) {
	return storage.Query(l.locks, func() ([]types.MaintenanceRecord, error) {
		var records []types.MaintenanceRecord
		if err := l.docs.Load(l.path, &records); err != nil {
			return nil, err
		}
		if records == nil {
			records = []types.MaintenanceRecord{}
		}
		return records, nil
	})
}

// Decode parses content previously returned by Snapshot
func (l *MaintenanceLog) Decode(data []byte) ([]types.MaintenanceRecord, error) {
	var records []types.MaintenanceRecord
	if err := store.DecodeDocument(l.path, data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []types.MaintenanceRecord{}
	}
	return records, nil
}
