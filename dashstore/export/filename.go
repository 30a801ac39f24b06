package export

import (
	"path/filepath"
	"strconv"
	"time"
)

const (
	archivePrefix    = "dashboard-export-"
	archiveTimestamp = "20060102-150405"
	manifestFilename = "manifest.json"
)

// ArchiveFilename names the archive of an export generated at t,
// e.g. dashboard-export-20240131-174502.zip
func ArchiveFilename(t time.Time) string {
	return archivePrefix + t.Format(archiveTimestamp) + ".zip"
}

// entryName is the name of a data file inside the archive: its base name.
// Files configured in different directories may share a base name, so
// duplicates get a numeric prefix ("2-parts.json").
func entryName(path string, taken map[string]bool) string {
	base := filepath.Base(path)
	name := base
	for i := 2; taken[name] || name == manifestFilename; i++ {
		name = strconv.Itoa(i) + "-" + base
	}
	taken[name] = true
	return name
}
