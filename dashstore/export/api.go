// Package export writes a dashboard's data files to a zip archive.
//
// The export happens in two steps:
//  1. GenerateExportData copies every data file and computes a manifest
//  2. CreateExportArchive writes that structure as a zip file
//
// Keeping the steps apart lets tests check the content without archives.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sohipren/dashboard/dashstore"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/types"
)

// Export writes an archive named after the current time into outputDir,
// creating the directory if needed, and returns the archive path.
// An empty outputDir means a fresh temporary directory.
func Export(m *dashstore.Manager, outputDir string) (string, error) {
	data, err := GenerateExportData(m, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to generate export data: %w", err)
	}

	if outputDir == "" {
		return CreateExportArchiveToTempDir(data)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	archivePath := filepath.Join(outputDir, data.ArchiveFilename)
	if err := CreateExportArchive(data, archivePath); err != nil {
		return "", fmt.Errorf("failed to create export archive: %w", err)
	}
	return archivePath, nil
}

// ExportToPath writes the archive to exactly outputPath
func ExportToPath(m *dashstore.Manager, outputPath string) error {
	data, err := GenerateExportData(m, time.Now())
	if err != nil {
		return fmt.Errorf("failed to generate export data: %w", err)
	}
	if err := CreateExportArchive(data, outputPath); err != nil {
		return fmt.Errorf("failed to create export archive: %w", err)
	}
	return nil
}

// GenerateExportData snapshots the three data files of m and describes them
// in a manifest stamped with now. The manifest counts are computed from the
// archived bytes, so they agree with the files even if m is written to
// meanwhile. An unreadable comparison table is archived as is and counted as
// zero rows, like ComparisonLog.History does.
func GenerateExportData(m *dashstore.Manager, now time.Time) (*ExportData, error) {
	maintenanceData, err := m.Maintenance().Snapshot()
	if err != nil {
		return nil, err
	}
	comparisonData, err := m.Comparisons().Snapshot()
	if err != nil {
		return nil, err
	}
	partsData, err := m.Parts().Snapshot()
	if err != nil {
		return nil, err
	}

	history, err := m.Maintenance().Decode(maintenanceData)
	if err != nil {
		return nil, err
	}
	table, err := m.Comparisons().Decode(comparisonData)
	if errors.Is(err, store.ErrMalformedTable) {
		table = types.NewComparisonTable()
	} else if err != nil {
		return nil, err
	}
	parts, err := m.Parts().Decode(partsData)
	if err != nil {
		return nil, err
	}

	manifest := Manifest{
		GeneratedAt:        now,
		MaintenanceRecords: len(history),
		ComparisonRows:     table.Len(),
		Parts:              len(parts),
		MaintenanceCost:    dashstore.Summarize(history),
	}

	sources := []struct {
		path    string
		content []byte
	}{
		{m.Maintenance().Path(), maintenanceData},
		{m.Comparisons().Path(), comparisonData},
		{m.Parts().Path(), partsData},
	}

	taken := make(map[string]bool)
	files := make([]DataFile, 0, len(sources))
	for _, src := range sources {
		name := entryName(src.path, taken)
		files = append(files, DataFile{Filename: name, Modified: now, Content: src.content})
		manifest.Files = append(manifest.Files, name)
	}

	return &ExportData{
		ArchiveFilename: ArchiveFilename(now),
		Contents: ExportContent{
			Manifest: manifest,
			Files:    files,
		},
	}, nil
}
