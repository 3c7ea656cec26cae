package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"photovault/internal/fileutil"
	"photovault/internal/logging"
)

// VaultDirName is the directory created under the storage root to hold both
// blob trees.
const VaultDirName = "PhotoVault"

// ErrNotInitialized reports a blob operation before Initialize succeeded.
var ErrNotInitialized = errors.New("storage not initialized")

// StoredBlob describes where an original landed. RelativePath is what gets
// persisted in the photo record so the root can move independently.
type StoredBlob struct {
	AbsolutePath string
	RelativePath string
}

// BlobFailure records one best-effort deletion that did not succeed.
type BlobFailure struct {
	Path string
	Err  error
}

// DeleteResult reports the outcome of removing a photo's blobs. A missing file
// is not a failure; permission and I/O faults are.
type DeleteResult struct {
	OriginalRemoved  bool
	ThumbnailRemoved bool
	Failures         []BlobFailure
}

// Manager maps source files into durable storage under the chosen root and
// produces the thumbnail representation.
type Manager struct {
	root       string
	extensions []string
	logger     *slog.Logger
	now        func() time.Time
}

// NewManager builds a manager. extensions is the thumbnail probe priority
// order used by DeleteBlobs. Initialize must be called before any blob
// operation.
func NewManager(extensions []string, logger *slog.Logger) *Manager {
	return &Manager{
		extensions: append([]string(nil), extensions...),
		logger:     logging.NewComponentLogger(logger, "blobstore"),
		now:        time.Now,
	}
}

// Initialize ensures the photos and thumbnails trees exist under
// root/PhotoVault, creating them if absent. It is idempotent and must succeed
// before any copy, read, or delete operation. An unwritable root surfaces the
// error; every later import depends on it.
func (m *Manager) Initialize(root string) error {
	if root == "" {
		return errors.New("storage root is required")
	}
	for _, dir := range []string{m.photosDirAt(root), m.thumbnailsDirAt(root)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage directory %q: %w", dir, err)
		}
	}
	if err := unix.Access(filepath.Join(root, VaultDirName), unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("storage root %q is not writable: %w", root, err)
	}
	m.root = root
	m.logger.Debug("storage initialized", logging.String("root", root))
	return nil
}

// Initialized reports whether a storage root has been established.
func (m *Manager) Initialized() bool {
	return m.root != ""
}

// Root returns the current storage root; empty until Initialize succeeds.
func (m *Manager) Root() string {
	return m.root
}

// PhotosDir returns the originals tree for the current root.
func (m *Manager) PhotosDir() string {
	return m.photosDirAt(m.root)
}

// ThumbnailsDir returns the thumbnails tree for the current root.
func (m *Manager) ThumbnailsDir() string {
	return m.thumbnailsDirAt(m.root)
}

func (m *Manager) photosDirAt(root string) string {
	return filepath.Join(root, VaultDirName, "photos")
}

func (m *Manager) thumbnailsDirAt(root string) string {
	return filepath.Join(root, VaultDirName, "thumbnails")
}

func (m *Manager) ensureInitialized() error {
	if m.root == "" {
		return ErrNotInitialized
	}
	return nil
}

// StoreOriginal copies src byte-for-byte into the photos tree, partitioned by
// the current calendar year-month. The extension is taken from the source
// filename verbatim, case preserved.
func (m *Manager) StoreOriginal(src, photoID string) (StoredBlob, error) {
	if err := m.ensureInitialized(); err != nil {
		return StoredBlob{}, err
	}
	partition := m.now().Format("2006-01")
	dir := filepath.Join(m.PhotosDir(), partition)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredBlob{}, fmt.Errorf("create partition %q: %w", partition, err)
	}

	name := photoID + filepath.Ext(src)
	dst := filepath.Join(dir, name)
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return StoredBlob{}, fmt.Errorf("store original: %w", err)
	}
	return StoredBlob{
		AbsolutePath: dst,
		RelativePath: filepath.Join(partition, name),
	}, nil
}

// StoreThumbnail produces the thumbnail representation for src. Without a
// resampling pipeline this is a byte-for-byte copy, so thumbnails may be
// full-resolution files; the gallery scales them visually.
func (m *Manager) StoreThumbnail(src, photoID string) (string, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", err
	}
	name := photoID + filepath.Ext(src)
	dst := filepath.Join(m.ThumbnailsDir(), name)
	if err := fileutil.CopyFile(src, dst); err != nil {
		return "", fmt.Errorf("store thumbnail: %w", err)
	}
	return name, nil
}

// InlineOriginal reads the original at the given relative path and returns it
// as a data URI. ok is false when the blob is missing so callers can
// substitute a placeholder; only uninitialized storage is an error.
func (m *Manager) InlineOriginal(relPath string) (string, bool, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", false, err
	}
	return m.inline(filepath.Join(m.PhotosDir(), relPath))
}

// InlineThumbnail reads the thumbnail at the given relative path as a data URI.
func (m *Manager) InlineThumbnail(relPath string) (string, bool, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", false, err
	}
	return m.inline(filepath.Join(m.ThumbnailsDir(), relPath))
}

func (m *Manager) inline(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("blob unreadable", logging.String("path", path), logging.Error(err))
		}
		return "", false, nil
	}
	return dataURI(filepath.Ext(path), data), true, nil
}

// OriginalPath resolves a persisted relative path against the photos tree.
func (m *Manager) OriginalPath(relPath string) (string, error) {
	if err := m.ensureInitialized(); err != nil {
		return "", err
	}
	return filepath.Join(m.PhotosDir(), relPath), nil
}

// DeleteBlobs removes the original at relOriginal and the thumbnail named by
// the record. When the record carries no thumbnail name, the thumbnails tree
// is probed for photoID with each supported extension in priority order and
// the first match is removed. Missing files are not failures; anything else
// is recorded in the result and logged, never propagated.
func (m *Manager) DeleteBlobs(photoID, relOriginal, thumbnail string) (DeleteResult, error) {
	if err := m.ensureInitialized(); err != nil {
		return DeleteResult{}, err
	}

	var result DeleteResult
	if relOriginal != "" {
		path := filepath.Join(m.PhotosDir(), relOriginal)
		switch err := os.Remove(path); {
		case err == nil:
			result.OriginalRemoved = true
		case errors.Is(err, fs.ErrNotExist):
		default:
			result.Failures = append(result.Failures, BlobFailure{Path: path, Err: err})
			m.logger.Warn("failed to delete original", logging.String("path", path), logging.Error(err))
		}
	}

	// The recorded name is authoritative: stored thumbnails keep the source
	// extension verbatim, which the lowercase probe set would never match.
	names := make([]string, 0, len(m.extensions)+1)
	if thumbnail != "" {
		names = append(names, thumbnail)
	} else {
		for _, ext := range m.extensions {
			names = append(names, photoID+ext)
		}
	}
	for _, name := range names {
		path := filepath.Join(m.ThumbnailsDir(), name)
		err := os.Remove(path)
		if err == nil {
			result.ThumbnailRemoved = true
			break
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		result.Failures = append(result.Failures, BlobFailure{Path: path, Err: err})
		m.logger.Warn("failed to delete thumbnail", logging.String("path", path), logging.Error(err))
		break
	}

	return result, nil
}
