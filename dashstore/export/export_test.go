package export

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sohipren/dashboard/testutil"
)

func TestArchiveFilename(t *testing.T) {
	at := time.Date(2024, 1, 31, 17, 45, 2, 0, time.UTC)
	if got := ArchiveFilename(at); got != "dashboard-export-20240131-174502.zip" {
		t.Errorf("unexpected name %q", got)
	}
}

func TestEntryName(t *testing.T) {
	taken := make(map[string]bool)
	got := []string{
		entryName("/a/parts.json", taken),
		entryName("/b/parts.json", taken),
		entryName("/c/manifest.json", taken),
	}
	want := []string{"parts.json", "2-parts.json", "2-manifest.json"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateExportData(t *testing.T) {
	m := testutil.NewManager(t)
	testutil.SeedFleet(t, m)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	data, err := GenerateExportData(m, now)
	if err != nil {
		t.Fatalf("failed to generate export data: %v", err)
	}

	if data.ArchiveFilename != "dashboard-export-20240201-090000.zip" {
		t.Errorf("unexpected archive name %q", data.ArchiveFilename)
	}

	manifest := data.Contents.Manifest
	if manifest.MaintenanceRecords != 3 || manifest.ComparisonRows != 2 || manifest.Parts != 2 {
		t.Errorf("unexpected counts %+v", manifest)
	}
	if manifest.MaintenanceCost.Total != 850 {
		t.Errorf("expected total cost 850, got %v", manifest.MaintenanceCost.Total)
	}
	wantFiles := []string{"maintenance.json", "comparison_history.csv", "parts_status.json"}
	if diff := cmp.Diff(wantFiles, manifest.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	onDisk, err := os.ReadFile(m.Paths().Maintenance)
	if err != nil {
		t.Fatal(err)
	}
	if string(data.Contents.Files[0].Content) != string(onDisk) {
		t.Error("maintenance snapshot differs from the file")
	}
}

func TestExportRoundTrip(t *testing.T) {
	m := testutil.NewManager(t)
	testutil.SeedFleet(t, m)
	outDir := filepath.Join(t.TempDir(), "backups")

	archivePath, err := Export(m, outDir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if filepath.Dir(archivePath) != outDir {
		t.Errorf("archive written to %s, want %s", archivePath, outDir)
	}
	if !strings.HasPrefix(filepath.Base(archivePath), "dashboard-export-") {
		t.Errorf("unexpected archive name %s", archivePath)
	}

	extracted, err := ExtractExportArchive(archivePath)
	if err != nil {
		t.Fatalf("failed to extract archive: %v", err)
	}
	if len(extracted.Contents.Files) != 3 {
		t.Fatalf("expected 3 data files, got %d", len(extracted.Contents.Files))
	}
	if extracted.Contents.Manifest.ComparisonRows != 2 {
		t.Errorf("unexpected manifest %+v", extracted.Contents.Manifest)
	}

	for _, f := range extracted.Contents.Files {
		var path string
		switch f.Filename {
		case "maintenance.json":
			path = m.Paths().Maintenance
		case "comparison_history.csv":
			path = m.Paths().Comparison
		case "parts_status.json":
			path = m.Paths().PartStatus
		default:
			t.Fatalf("unexpected archive entry %s", f.Filename)
		}
		want, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(f.Content) != string(want) {
			t.Errorf("%s differs from the data file", f.Filename)
		}
	}
}

func TestManifestCountsMatchArchivedFiles(t *testing.T) {
	m := testutil.NewManager(t)
	testutil.SeedFleet(t, m)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	defer func() {
		close(stop)
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := m.AddComparison("A", "B", i); err != nil {
				t.Errorf("add comparison: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 20; i++ {
		data, err := GenerateExportData(m, time.Now())
		if err != nil {
			t.Fatalf("failed to generate export data: %v", err)
		}
		table, err := m.Comparisons().Decode(data.Contents.Files[1].Content)
		if err != nil {
			t.Fatalf("archived table does not parse: %v", err)
		}
		if got := data.Contents.Manifest.ComparisonRows; got != table.Len() {
			t.Errorf("manifest says %d rows, archive holds %d", got, table.Len())
		}
	}
}

func TestGenerateExportDataWithMalformedComparisons(t *testing.T) {
	m := testutil.NewManager(t)
	garbage := []byte("not,a,comparison\ntable\n")
	if err := os.WriteFile(m.Paths().Comparison, garbage, 0644); err != nil {
		t.Fatal(err)
	}

	data, err := GenerateExportData(m, time.Now())
	if err != nil {
		t.Fatalf("failed to generate export data: %v", err)
	}
	if data.Contents.Manifest.ComparisonRows != 0 {
		t.Errorf("expected 0 rows, got %d", data.Contents.Manifest.ComparisonRows)
	}
	if string(data.Contents.Files[1].Content) != string(garbage) {
		t.Error("malformed table must be archived verbatim")
	}
}

func TestExportToPath(t *testing.T) {
	m := testutil.NewManager(t)
	outputPath := filepath.Join(t.TempDir(), "backup.zip")

	if err := ExportToPath(m, outputPath); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	extracted, err := ExtractExportArchive(outputPath)
	if err != nil {
		t.Fatalf("failed to extract: %v", err)
	}
	if extracted.Contents.Manifest.MaintenanceRecords != 0 {
		t.Errorf("expected empty export, got %+v", extracted.Contents.Manifest)
	}
}

func TestExportToTempDir(t *testing.T) {
	m := testutil.NewManager(t)

	archivePath, err := Export(m, "")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(archivePath)) })

	if _, err := os.Stat(archivePath); err != nil {
		t.Errorf("archive missing: %v", err)
	}
}

func TestCreateExportArchiveRemovesPartialFile(t *testing.T) {
	missingDir := filepath.Join(t.TempDir(), "missing", "out.zip")
	if err := CreateExportArchive(&ExportData{}, missingDir); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(missingDir); !os.IsNotExist(err) {
		t.Error("no file should be left behind")
	}
}

func TestExtractRejectsArchiveWithoutManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.zip")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(file)
	entry, err := w.Create("x.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := ExtractExportArchive(path); err == nil {
		t.Fatal("expected error for archive without manifest")
	}
}
