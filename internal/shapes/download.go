// Package shapes loads the Census cartographic boundary files backing the
// county choropleth: county polygons joined on GEOID, and state centroids
// for the abbreviation labels.
package shapes

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/saumyabhardwaj17/AM10-LBS-Group6-MAM26/internal/fetcher"
)

// Fetch downloads a cartographic boundary ZIP and extracts it, returning
// the path to the contained .shp file. Already-downloaded archives are
// reused, so repeated view computations in one session hit the network once.
func Fetch(ctx context.Context, f fetcher.Fetcher, url, cacheDir string) (string, error) {
	log := zap.L().With(
		zap.String("component", "shapes.fetch"),
		zap.String("url", url),
	)

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", eris.Wrap(err, "shapes: create cache dir")
	}

	parts := strings.Split(url, "/")
	zipName := parts[len(parts)-1]
	if i := strings.IndexByte(zipName, '?'); i >= 0 {
		zipName = zipName[:i]
	}
	zipPath := filepath.Join(cacheDir, zipName)

	if info, err := os.Stat(zipPath); err == nil && info.Size() > 0 {
		log.Debug("boundary zip already cached", zap.String("path", zipPath))
	} else {
		log.Info("downloading boundary shapefile")
		if _, err := f.DownloadToFile(ctx, url, zipPath); err != nil {
			return "", eris.Wrap(err, "shapes: download boundary zip")
		}
	}

	extractDir := filepath.Join(cacheDir, strings.TrimSuffix(zipName, ".zip"))
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return "", eris.Wrap(err, "shapes: create extract dir")
	}
	if err := extractZIP(zipPath, extractDir); err != nil {
		return "", eris.Wrap(err, "shapes: extract zip")
	}

	shpPath, err := findFileByExt(extractDir, ".shp")
	if err != nil {
		return "", eris.Wrap(err, "shapes: find .shp file")
	}
	return shpPath, nil
}

func extractZIP(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "open zip")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		destPath := filepath.Join(destDir, name)

		rc, err := f.Open()
		if err != nil {
			return eris.Wrapf(err, "open zip entry %s", f.Name)
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			_ = rc.Close()
			return eris.Wrapf(err, "create %s", destPath)
		}

		if _, err := io.Copy(outFile, rc); err != nil {
			_ = outFile.Close()
			_ = rc.Close()
			return eris.Wrapf(err, "extract %s", f.Name)
		}
		_ = outFile.Close()
		_ = rc.Close()
	}

	return nil
}

func findFileByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrap(err, "read directory")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("no %s file found in %s", ext, dir)
}
