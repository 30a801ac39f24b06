package export

import (
	"time"

	"github.com/sohipren/dashboard/dashstore"
)

// ExportData is everything that goes into an archive. It is built in memory
// first so it can be inspected without touching the file system.
type ExportData struct {
	ArchiveFilename string        `json:"archive-filename"`
	Contents        ExportContent `json:"contents"`
}

// ExportContent holds the manifest and the copied data files
type ExportContent struct {
	Manifest Manifest   `json:"manifest"`
	Files    []DataFile `json:"files"`
}

// Manifest describes an export. It is stored as manifest.json.
type Manifest struct {
	GeneratedAt        time.Time                    `json:"generated_at"`
	MaintenanceRecords int                          `json:"maintenance_records"`
	ComparisonRows     int                          `json:"comparison_rows"`
	Parts              int                          `json:"parts"`
	MaintenanceCost    dashstore.MaintenanceSummary `json:"maintenance_cost"`
	Files              []string                     `json:"files"`
}

// DataFile is a verbatim copy of one data file
type DataFile struct {
	Filename string    `json:"filename"`
	Modified time.Time `json:"modified"`
	Content  []byte    `json:"content"`
}
