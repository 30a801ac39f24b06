package dashstore

import (
	"github.com/sohipren/dashboard/dashstore/storage"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/types"
)

// PartStatusTable maps part identifiers to their latest status.
// Setting a status replaces the previous entry; no history is kept.
type PartStatusTable struct {
	path  string
	docs  *store.DocumentStore
	locks *storage.LockManager
}

func newPartStatusTable(path string, docs *store.DocumentStore) *PartStatusTable {
	return &PartStatusTable{
		path:  path,
		docs:  docs,
		locks: storage.NewLockManager(),
	}
}

func (t *PartStatusTable) ensure() (bool, error) {
	return t.docs.EnsureDocument(t.path, types.PartStatusMap{})
}

// Snapshot returns the raw content of the backing file
func (t *PartStatusTable) Snapshot() ([]byte, error) {
	return storage.Query(t.locks, func() ([]byte, error) {
		return t.docs.Snapshot(t.path)
	})
}

// Path returns the file backing the table
func (t *PartStatusTable) Path() string { return t.path }

// SetStatus overwrites the entry of partID. Any text is accepted for both
// arguments, including the empty string. Successive calls for the same part always store a strictly later
// last-updated time, even when the clock has not advanced.
func (t *PartStatusTable) SetStatus(partID, status string) (types.PartStatusEntry, error) {
	var entry types.PartStatusEntry
	err := t.locks.Execute(storage.WriteOperation, func() error {
		var all types.PartStatusMap
		return t.docs.Update(t.path, &all, func() error {
			if all == nil {
				all = types.PartStatusMap{}
			}
			prev, _ := all[partID].Time()
			entry = types.PartStatusEntry{
				Status:      status,
				LastUpdated: types.FormatTimestamp(types.NextTimestamp(t.docs.Now(), prev)),
			}
			all[partID] = entry
			return nil
		})
	})
	if err != nil {
		return types.PartStatusEntry{}, err
	}

	if !types.IsKnownStatus(status) {
		t.docs.Logger().Debug("status outside the known vocabulary", "part", partID, "status", status)
	}
	return entry, nil
}

// Status returns the entry of partID. A part that was never set is reported
// with found == false, not as an error.
func (t *PartStatusTable) Status(partID string) (entry types.PartStatusEntry, found bool, err error) {
	all, err := t.All()
	if err != nil {
		return types.PartStatusEntry{}, false, err
	}
	entry, found = all[partID]
	return entry, found, nil
}

// All returns the whole mapping. It is never nil.
func (t *PartStatusTable) All() (types.PartStatusMap, error) {
	return storage.Query(t.locks, func() (types.PartStatusMap, error) {
		var all types.PartStatusMap
		if err := t.docs.Load(t.path, &all); err != nil {
			return nil, err
		}
		if all == nil {
			all = types.PartStatusMap{}
		}
		return all, nil
	})
}

// Decode parses content previously returned by Snapshot
func (t *PartStatusTable) Decode(data []byte) (types.PartStatusMap, error) {
	var all types.PartStatusMap
	if err := store.DecodeDocument(t.path, data, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = types.PartStatusMap{}
	}
	return all, nil
}
