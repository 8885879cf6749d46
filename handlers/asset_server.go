package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/camden-git/carregistrybackend/logger"
)

// AssetServer creates a handler to serve generated files from baseDir.
// it expects the request path to be routePrefix followed by the file's path
// relative to baseDir. example Usage:
//
//	r.Get("/api/exports/*", AssetServer(cfg.ExportDirectory, "/api/exports/", log))
func AssetServer(baseDir, routePrefix string, log *logger.Logger) http.HandlerFunc {
	fullAssetDirPath := filepath.Clean(baseDir)
	log.Info("serving assets", "route", routePrefix+"*", "dir", fullAssetDirPath)

	return func(w http.ResponseWriter, r *http.Request) {
		// e.g., for route /api/exports/* and request /api/exports/export_1.zip, extract "export_1.zip"
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)

		if relativePath == "" || strings.Contains(relativePath, "..") {
			WriteAPIError(w, http.StatusBadRequest, CodeBadRequest, "Invalid asset path")
			return
		}

		cleanedAssetPath := filepath.Clean(filepath.Join(fullAssetDirPath, relativePath))
		if !strings.HasPrefix(cleanedAssetPath, fullAssetDirPath+string(filepath.Separator)) {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Forbidden")
			log.Warn("asset access outside designated directory",
				"request", r.URL.Path, "resolved", cleanedAssetPath, "base", fullAssetDirPath)
			return
		}

		info, err := os.Stat(cleanedAssetPath)
		if os.IsNotExist(err) || (err == nil && info.IsDir()) {
			WriteAPIError(w, http.StatusNotFound, CodeNotFound, "Asset not found")
			return
		} else if err != nil {
			WriteAPIError(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
			log.Error("error stating asset file", "path", cleanedAssetPath, "error", err)
			return
		}

		cacheDuration := time.Hour
		w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", int(cacheDuration.Seconds())))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(cleanedAssetPath)))

		http.ServeFile(w, r, cleanedAssetPath)
	}
}
