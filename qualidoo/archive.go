package qualidoo

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Path segments that never belong in an uploaded archive, regardless of
// depth: caches, VCS metadata, virtualenvs, vendored deps, packaging junk.
var skipSegments = map[string]struct{}{
	"__pycache__":  {},
	".git":         {},
	".svn":         {},
	".hg":          {},
	".egg-info":    {},
	".eggs":        {},
	"node_modules": {},
	".venv":        {},
	"venv":         {},
}

// Compiled-bytecode suffixes, matched against file names only.
var skipSuffixes = []string{".pyc", ".pyo"}

// buildArchive zips every regular file under addonPath into an in-memory
// deflate archive. Entries are named <addonName>/<relative path>. Returns
// the archive bytes and the addon name (the directory's base name).
func buildArchive(addonPath string) ([]byte, string, error) {
	info, err := os.Stat(addonPath)
	if os.IsNotExist(err) {
		return nil, "", &APIError{Kind: KindInvalidInput, Message: fmt.Sprintf("Addon path not found: %s", addonPath)}
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat addon path %s: %w", addonPath, err)
	}
	if !info.IsDir() {
		return nil, "", &APIError{Kind: KindInvalidInput, Message: fmt.Sprintf("Addon path must be a directory: %s", addonPath)}
	}

	addonName := filepath.Base(filepath.Clean(addonPath))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err = filepath.WalkDir(addonPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(addonPath, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && skipEntry(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || shouldSkip(rel) {
			return nil
		}
		return addFile(zw, path, addonName+"/"+filepath.ToSlash(rel))
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to archive %s: %w", addonName, err)
	}

	if err := zw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), addonName, nil
}

// shouldSkip reports whether any segment of the relative path is excluded.
func shouldSkip(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if skipEntry(segment) {
			return true
		}
	}
	return false
}

func skipEntry(segment string) bool {
	if _, ok := skipSegments[segment]; ok {
		return true
	}
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(segment, suffix) {
			return true
		}
	}
	return false
}

func addFile(zw *zip.Writer, path, arcName string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(arcName)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
