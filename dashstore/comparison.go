package dashstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sohipren/dashboard/dashstore/storage"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/internal/validation"
	"github.com/sohipren/dashboard/types"
)

// ComparisonLog is the append-only table of paired comparisons.
// On disk it is a CSV file with the header data,item1,item2,diferenca.
type ComparisonLog struct {
	path   string
	header []string
	tables *store.TableStore
	locks  *storage.LockManager
}

func newComparisonLog(path string, tables *store.TableStore) *ComparisonLog {
	header := make([]string, len(types.ComparisonColumns))
	for i, col := range types.ComparisonColumns {
		header[i] = col.Name
	}
	return &ComparisonLog{
		path:   path,
		header: header,
		tables: tables,
		locks:  storage.NewLockManager(),
	}
}

func (l *ComparisonLog) ensure() (bool, error) {
	return l.tables.EnsureTable(l.path, l.header)
}

// Snapshot returns the raw content of the backing file
func (l *ComparisonLog) Snapshot() ([]byte, error) {
	return storage.Query(l.locks, func() ([]byte, error) {
		return l.tables.Snapshot(l.path)
	})
}

// Path returns the file backing the log
func (l *ComparisonLog) Path() string { return l.path }

// Add appends a row comparing item1 and item2. The items are stored in their
// default string form. difference must be a Go numeric value (a string is not
// accepted even if it looks like a number); anything else is a
// *types.ValidationError.
//
// Line breaks inside items are stored as "\n"; a "\r\n" pair would not
// survive the CSV reader and is normalized first.
//
// A file holding only blank content is treated as an empty table. A file that
// holds something else than a comparison table is reported as a read error
// and left untouched. This is stricter than History, which reads such a file
// as an empty table: appending would overwrite the rows it cannot parse.
func (l *ComparisonLog) Add(item1, item2, difference interface{}) (types.ComparisonRecord, error) {
	diff, err := validation.Number(validation.FieldDifference, difference)
	if err != nil {
		return types.ComparisonRecord{}, err
	}

	rec := types.ComparisonRecord{
		Timestamp:  l.tables.Now(),
		Item1:      normalizeNewlines(fmt.Sprint(item1)),
		Item2:      normalizeNewlines(fmt.Sprint(item2)),
		Difference: diff,
	}

	var count int
	err = l.locks.Execute(storage.WriteOperation, func() error {
		var err error
		count, err = l.tables.Append(l.path, l.header, encodeComparison(rec))
		return err
	})
	if err != nil {
		return types.ComparisonRecord{}, err
	}

	l.tables.Logger().Debug("added comparison", "item1", rec.Item1, "item2", rec.Item2, "rows", count)
	return rec, nil
}

// History returns the whole table. A missing, blank or malformed file yields
// the empty table with the canonical columns; malformed content is logged.
func (l *ComparisonLog) History() (types.ComparisonTable, error) {
	return storage.Query(l.locks, func() (types.ComparisonTable, error) {
		table, err := l.read()
		if errors.Is(err, store.ErrMalformedTable) {
			l.tables.Logger().Warn("comparison history is malformed, returning empty table", "path", l.path, "error", err)
			return types.NewComparisonTable(), nil
		}
		return table, err
	})
}

func (l *ComparisonLog) read() (types.ComparisonTable, error) {
	rows, err := l.tables.Read(l.path, l.header)
	if err != nil {
		return types.NewComparisonTable(), err
	}
	return l.decodeRows(rows)
}

// Decode parses content previously returned by Snapshot. Malformed content
// is an error wrapping store.ErrMalformedTable.
func (l *ComparisonLog) Decode(data []byte) (types.ComparisonTable, error) {
	rows, err := store.DecodeTable(l.path, data, l.header)
	if err != nil {
		return types.NewComparisonTable(), err
	}
	return l.decodeRows(rows)
}

func (l *ComparisonLog) decodeRows(rows [][]string) (types.ComparisonTable, error) {
	table := types.NewComparisonTable()
	for i, row := range rows {
		rec, err := decodeComparison(row)
		if err != nil {
			// line 1 is the header
			return table, types.NewReadError(l.path, fmt.Errorf("%w: line %d: %w", store.ErrMalformedTable, i+2, err))
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func encodeComparison(rec types.ComparisonRecord) []string {
	return []string{
		rec.Timestamp.Format(types.TableTimestampLayout),
		rec.Item1,
		rec.Item2,
		formatFloat(rec.Difference),
	}
}

func decodeComparison(row []string) (types.ComparisonRecord, error) {
	ts, err := types.ParseTimestamp(row[0])
	if err != nil {
		return types.ComparisonRecord{}, err
	}
	diff, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return types.ComparisonRecord{}, fmt.Errorf("invalid diferenca %q", row[3])
	}
	return types.ComparisonRecord{
		Timestamp:  ts,
		Item1:      row[1],
		Item2:      row[2],
		Difference: diff,
	}, nil
}

// formatFloat always writes a decimal point so the column reads back as a
// float column in spreadsheet tools: 450 becomes "450.0"
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
