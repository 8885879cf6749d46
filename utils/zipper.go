package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/camden-git/carregistrybackend/logger"
)

// CreateExportArchive packs the given export files into a new ZIP archive.
// files: absolute or relative paths; each is stored under its base name.
// archiveSaveDir: directory the archive is written to, created if missing.
// Returns: archive filename relative to archiveSaveDir, size in bytes, error.
func CreateExportArchive(files []string, archiveSaveDir string, log *logger.Logger) (string, int64, error) {
	if len(files) == 0 {
		return "", 0, fmt.Errorf("no export files given to archive")
	}
	if err := os.MkdirAll(archiveSaveDir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create zip save directory %s: %w", archiveSaveDir, err)
	}

	archiveUUID, err := uuid.NewRandom()
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate archive id: %w", err)
	}
	zipFilename := fmt.Sprintf("export_%d_%s.zip", time.Now().Unix(), archiveUUID.String()[:8])
	zipFilePath := filepath.Join(archiveSaveDir, zipFilename)

	zipFile, err := os.Create(zipFilePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create zip file %s: %w", zipFilePath, err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	for _, path := range files {
		if err := addFileToZip(zipWriter, path); err != nil {
			zipWriter.Close()
			zipFile.Close()
			os.Remove(zipFilePath)
			return "", 0, err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize zip writer for %s: %w", zipFilePath, err)
	}

	zipInfo, err := os.Stat(zipFilePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat created zip file %s: %w", zipFilePath, err)
	}

	log.Info("export archive created", "path", zipFilePath, "files", len(files), "size", zipInfo.Size())
	return zipFilename, zipInfo.Size(), nil
}

func addFileToZip(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for zipping: %w", path, err)
	}
	defer f.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create zip entry for %s: %w", path, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s to zip: %w", path, err)
	}
	return nil
}
