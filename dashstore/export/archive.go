package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CreateExportArchive writes exportData as a zip file at outputPath.
// A partially written archive is removed on failure.
func CreateExportArchive(exportData *ExportData, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close archive file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(outputPath)
		}
	}()

	zipWriter := zip.NewWriter(file)

	if err := addManifestToZip(zipWriter, exportData.Contents.Manifest); err != nil {
		return fmt.Errorf("failed to add manifest to zip: %w", err)
	}
	for _, dataFile := range exportData.Contents.Files {
		if err := addDataFileToZip(zipWriter, dataFile); err != nil {
			return fmt.Errorf("failed to add %s to zip: %w", dataFile.Filename, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}

// CreateExportArchiveToTempDir writes the archive into a new temporary
// directory and returns its path
func CreateExportArchiveToTempDir(exportData *ExportData) (string, error) {
	tempDir, err := os.MkdirTemp("", "dashboard-export-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	archivePath := filepath.Join(tempDir, exportData.ArchiveFilename)
	if err := CreateExportArchive(exportData, archivePath); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", err
	}
	return archivePath, nil
}

func addManifestToZip(zipWriter *zip.Writer, manifest Manifest) error {
	header := &zip.FileHeader{
		Name:     manifestFilename,
		Method:   zip.Deflate,
		Modified: manifest.GeneratedAt,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	_, err = writer.Write(jsonData)
	return err
}

func addDataFileToZip(zipWriter *zip.Writer, dataFile DataFile) error {
	header := &zip.FileHeader{
		Name:     dataFile.Filename,
		Method:   zip.Deflate,
		Modified: dataFile.Modified,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = writer.Write(dataFile.Content)
	return err
}

// ExtractExportArchive reads an archive back into an ExportData
func ExtractExportArchive(archivePath string) (*ExportData, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	exportData := &ExportData{
		ArchiveFilename: filepath.Base(archivePath),
		Contents: ExportContent{
			Files: make([]DataFile, 0, len(reader.File)),
		},
	}

	foundManifest := false
	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}

		if file.Name == manifestFilename {
			if err := json.Unmarshal(content, &exportData.Contents.Manifest); err != nil {
				return nil, fmt.Errorf("failed to parse manifest: %w", err)
			}
			foundManifest = true
			continue
		}
		exportData.Contents.Files = append(exportData.Contents.Files, DataFile{
			Filename: file.Name,
			Modified: file.Modified,
			Content:  content,
		})
	}

	if !foundManifest {
		return nil, errors.New("archive has no manifest.json")
	}
	return exportData, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	return io.ReadAll(reader)
}
