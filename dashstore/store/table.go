package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/sohipren/dashboard/types"
)

// ErrMalformedTable is wrapped by read errors caused by content that is not a
// CSV table with the expected header and column count
var ErrMalformedTable = errors.New("malformed table")

// TableStore keeps a row-oriented CSV table per file. The header is fixed by
// the caller and written even when the table has no rows, so readers always
// see the full schema.
type TableStore struct {
	*fileStore
}

// NewTableStore creates a TableStore
func NewTableStore(opts ...Option) *TableStore {
	return &TableStore{fileStore: newFileStore(opts...)}
}

// EnsureTable creates path with only the header line when the file is absent
func (s *TableStore) EnsureTable(path string, header []string) (created bool, err error) {
	if err := s.ensureDir(path); err != nil {
		return false, types.NewWriteError(path, fmt.Errorf("failed to create directory: %w", err))
	}

	err = s.withFileLock(path, types.OpWrite, func() error {
		ok, err := s.exists(path)
		if err != nil {
			return types.NewReadError(path, err)
		}
		if ok {
			return nil
		}
		if err := s.write(path, header, nil); err != nil {
			return err
		}
		created = true
		return nil
	})
	if created {
		s.logger.Debug("initialized table", "path", path, "columns", len(header))
	}
	return created, err
}

// Read returns the data rows of path. A missing or empty file yields no
// rows and no error.
func (s *TableStore) Read(path string, header []string) ([][]string, error) {
	var rows [][]string
	err := s.withFileLock(path, types.OpRead, func() error {
		var err error
		rows, err = s.read(path, header, true)
		return err
	})
	return rows, err
}

// Append adds row at the end of the table and rewrites the whole file.
// It returns the number of data rows after the append.
func (s *TableStore) Append(path string, header []string, row []string) (int, error) {
	if len(row) != len(header) {
		return 0, types.NewWriteError(path, fmt.Errorf("row has %d fields, table has %d columns", len(row), len(header)))
	}

	var count int
	err := s.withFileLock(path, types.OpWrite, func() error {
		rows, err := s.read(path, header, false)
		if err != nil {
			return err
		}
		rows = append(rows, row)
		if err := s.write(path, header, rows); err != nil {
			return err
		}
		count = len(rows)
		return nil
	})
	return count, err
}

// read parses path. When missingOK is false a missing file is an error,
// because a mutation should never silently recreate a file someone removed.
func (s *TableStore) read(path string, header []string, missingOK bool) ([][]string, error) {
	// No locking here - caller must handle locking
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if isNotExist(err) && missingOK {
			return nil, nil
		}
		return nil, types.NewReadError(path, fmt.Errorf("failed to read file: %w", err))
	}

	return DecodeTable(path, data, header)
}

// write replaces path with header followed by rows
func (s *TableStore) write(path string, header []string, rows [][]string) error {
	// No locking here - caller must handle locking
	data, err := encodeTable(header, rows)
	if err != nil {
		return types.NewWriteError(path, fmt.Errorf("failed to encode CSV: %w", err))
	}
	if err := s.writeAtomic(path, data); err != nil {
		return types.NewWriteError(path, err)
	}
	s.logger.Debug("saved table", "path", path, "rows", len(rows))
	return nil
}

func encodeTable(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeTable parses data, the CSV content of path, and returns its data rows.
// Content that is entirely blank is an empty table. Otherwise the first record
// must match header exactly and every data record must have one field per
// column; anything else is a read error wrapping ErrMalformedTable.
func DecodeTable(path string, data []byte, header []string) ([][]string, error) {
	rows, err := decodeTable(data, header)
	if err != nil {
		return nil, types.NewReadError(path, err)
	}
	return rows, nil
}

func decodeTable(data []byte, header []string) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}

	got := records[0]
	for i := range header {
		if strings.TrimSpace(got[i]) != header[i] {
			return nil, fmt.Errorf("%w: header %v, want %v", ErrMalformedTable, got, header)
		}
	}
	return records[1:], nil
}
