package types

import (
	"fmt"
	"strings"
	"time"
)

// MaintenanceType classifies a maintenance event.
// The string value is what gets persisted.
type MaintenanceType string

const (
	// Preventive maintenance is scheduled before a failure
	Preventive MaintenanceType = "Preventiva"
	// Corrective maintenance repairs a failure
	Corrective MaintenanceType = "Corretiva"
	// Predictive maintenance is driven by condition monitoring
	Predictive MaintenanceType = "Preditiva"
)

// MaintenanceTypes lists the accepted maintenance types in display order
var MaintenanceTypes = []MaintenanceType{Preventive, Corrective, Predictive}

var maintenanceTypeAliases = map[string]MaintenanceType{
	"preventiva": Preventive,
	"preventive": Preventive,
	"corretiva":  Corrective,
	"corrective": Corrective,
	"preditiva":  Predictive,
	"predictive": Predictive,
}

// ParseMaintenanceType accepts the persisted Portuguese names and their
// English equivalents, case-insensitively.
func ParseMaintenanceType(s string) (MaintenanceType, error) {
	if t, ok := maintenanceTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown maintenance type %q", s)
}

// Valid reports whether t is one of the known maintenance types
func (t MaintenanceType) Valid() bool {
	for _, known := range MaintenanceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// MaintenanceRecord is a single maintenance event.
// JSON keys match the files written by earlier dashboard releases so existing
// data directories keep loading.
type MaintenanceRecord struct {
	ID              string          `json:"id,omitempty" yaml:"id,omitempty"`
	Part            string          `json:"peca" yaml:"peca"`
	MaintenanceType MaintenanceType `json:"tipo_manutencao" yaml:"tipo_manutencao"`
	Description     string          `json:"descricao" yaml:"descricao"`
	Cost            float64         `json:"custo" yaml:"custo"`
	Timestamp       string          `json:"timestamp" yaml:"timestamp"`
}

// Time parses the record timestamp
func (r MaintenanceRecord) Time() (time.Time, error) {
	return ParseTimestamp(r.Timestamp)
}

// ComparisonRecord is one row of the comparison table
type ComparisonRecord struct {
	Timestamp  time.Time `json:"data" yaml:"data"`
	Item1      string    `json:"item1" yaml:"item1"`
	Item2      string    `json:"item2" yaml:"item2"`
	Difference float64   `json:"diferenca" yaml:"diferenca"`
}

// ColumnType is the logical type of a table column
type ColumnType int

const (
	// TimestampColumn holds date-times
	TimestampColumn ColumnType = iota
	// StringColumn holds free text
	StringColumn
	// FloatColumn holds 64-bit floats
	FloatColumn
)

// String returns the string representation of the ColumnType
func (ct ColumnType) String() string {
	switch ct {
	case TimestampColumn:
		return "timestamp"
	case StringColumn:
		return "string"
	case FloatColumn:
		return "float64"
	default:
		return "unknown"
	}
}

// Column describes a named, typed column
type Column struct {
	Name string
	Type ColumnType
}

// ComparisonColumns is the fixed schema of the comparison table.
// Order matters: it is the CSV header order.
var ComparisonColumns = []Column{
	{Name: "data", Type: TimestampColumn},
	{Name: "item1", Type: StringColumn},
	{Name: "item2", Type: StringColumn},
	{Name: "diferenca", Type: FloatColumn},
}

// ComparisonTable is the comparison history with its schema.
// Columns is always populated, even with zero rows.
type ComparisonTable struct {
	Columns []Column
	Rows    []ComparisonRecord
}

// NewComparisonTable returns an empty table carrying the canonical schema
func NewComparisonTable() ComparisonTable {
	cols := make([]Column, len(ComparisonColumns))
	copy(cols, ComparisonColumns)
	return ComparisonTable{Columns: cols, Rows: []ComparisonRecord{}}
}

// Len returns the number of rows
func (t ComparisonTable) Len() int {
	return len(t.Rows)
}

// PartStatus is a part lifecycle state. Any non-empty string is accepted;
// the constants are the vocabulary offered by the dashboard.
type PartStatus = string

const (
	StatusNew              PartStatus = "Novo"
	StatusInUse            PartStatus = "Em Uso"
	StatusNeedsMaintenance PartStatus = "Necessita Manutenção"
	StatusInMaintenance    PartStatus = "Em Manutenção"
	StatusDiscarded        PartStatus = "Descartado"
)

// KnownPartStatuses lists the closed status vocabulary
var KnownPartStatuses = []PartStatus{
	StatusNew,
	StatusInUse,
	StatusNeedsMaintenance,
	StatusInMaintenance,
	StatusDiscarded,
}

// IsKnownStatus reports whether status belongs to the closed vocabulary
func IsKnownStatus(status string) bool {
	for _, s := range KnownPartStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// PartStatusEntry is the latest known state of one part
type PartStatusEntry struct {
	Status      string `json:"status" yaml:"status"`
	LastUpdated string `json:"ultima_atualizacao" yaml:"ultima_atualizacao"`
}

// Time parses LastUpdated
func (e PartStatusEntry) Time() (time.Time, error) {
	return ParseTimestamp(e.LastUpdated)
}

// PartStatusMap maps part identifiers to their latest status
type PartStatusMap map[string]PartStatusEntry
