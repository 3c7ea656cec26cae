package blobstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"photovault/internal/fileutil"
	"photovault/internal/logging"
)

// Migrate copies both blob trees into newRoot with integrity verification. The
// old trees are left in place so a failed migration never strands blobs; the
// caller repoints the persisted storage root only after Migrate succeeds.
// It returns the number of files copied.
func (m *Manager) Migrate(newRoot string) (int, error) {
	if err := m.ensureInitialized(); err != nil {
		return 0, err
	}
	if newRoot == m.root {
		return 0, fmt.Errorf("new storage root matches the current root %q", m.root)
	}
	for _, dir := range []string{m.photosDirAt(newRoot), m.thumbnailsDirAt(newRoot)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create storage directory %q: %w", dir, err)
		}
	}

	copied := 0
	pairs := [][2]string{
		{m.PhotosDir(), m.photosDirAt(newRoot)},
		{m.ThumbnailsDir(), m.thumbnailsDirAt(newRoot)},
	}
	for _, pair := range pairs {
		n, err := copyTree(pair[0], pair[1])
		copied += n
		if err != nil {
			return copied, err
		}
	}
	m.logger.Info("storage migrated", logging.String("new_root", newRoot), logging.Int("files", copied))
	return copied, nil
}

func copyTree(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := fileutil.CopyFileVerified(path, target); err != nil {
			return fmt.Errorf("copy %q: %w", rel, err)
		}
		copied++
		return nil
	})
	return copied, err
}
