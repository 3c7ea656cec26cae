package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"photovault/internal/blobstore"
	"photovault/internal/config"
	"photovault/internal/fileutil"
	"photovault/internal/gallery"
	"photovault/internal/importer"
	"photovault/internal/library"
	"photovault/internal/logging"
)

// PlaceholderImage is the inline image substituted when a referenced blob is
// missing on disk, so a broken file never fails a gallery load.
const PlaceholderImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMjAwIiBoZWlnaHQ9IjIwMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMjAwIiBoZWlnaHQ9IjIwMCIgZmlsbD0iI2NjYyIvPjx0ZXh0IHg9IjUwJSIgeT0iNTAlIiBmb250LXNpemU9IjE2IiBmaWxsPSIjNjY2IiB0ZXh0LWFuY2hvcj0ibWlkZGxlIiBkeT0iLjNlbSI+Tm8gSW1hZ2U8L3RleHQ+PC9zdmc+"

// ItemFailure reports one id that failed inside a batch operation.
type ItemFailure struct {
	ID  string
	Err error
}

// DeleteSummary reports the outcome of a batch photo delete.
type DeleteSummary struct {
	Deleted      []string
	Failures     []ItemFailure
	BlobFailures []blobstore.BlobFailure
}

// StorageInfo describes the library and blob storage state.
type StorageInfo struct {
	PhotoCount     int
	AlbumCount     int
	TotalSizeBytes int64
	PhotoBytes     int64
	ThumbnailBytes int64
	FreeBytes      uint64
	LibraryPath    string
	StorageRoot    string
	PhotosDir      string
	ThumbnailsDir  string
}

// Service wires the metadata store, blob manager, and import pipeline behind
// the boundary operations.
type Service struct {
	cfg      *config.Config
	store    *library.Store
	blobs    *blobstore.Manager
	importer *importer.Importer
	logger   *slog.Logger
}

// NewService builds the facade. Storage is attached lazily: operations that
// need blobs initialize from the persisted root, and importing establishes the
// configured default root on first use.
func NewService(cfg *config.Config, store *library.Store, logger *slog.Logger) *Service {
	blobs := blobstore.NewManager(cfg.Import.Extensions, logger)
	return &Service{
		cfg:      cfg,
		store:    store,
		blobs:    blobs,
		importer: importer.New(store, blobs, cfg.Import.Extensions, logger),
		logger:   logging.NewComponentLogger(logger, "api"),
	}
}

// ensureStorage initializes the blob manager from the persisted root. When no
// root has been chosen and establish is true, the configured default root is
// adopted and persisted; the choice happens at most once.
func (s *Service) ensureStorage(ctx context.Context, establish bool) error {
	if s.blobs.Initialized() {
		return nil
	}
	root, err := s.store.StoragePath(ctx)
	if err != nil {
		return err
	}
	if root == "" {
		if !establish {
			return blobstore.ErrNotInitialized
		}
		root = s.cfg.Paths.DefaultStorageRoot
		if err := s.store.SetStoragePath(ctx, root); err != nil {
			return err
		}
		s.logger.Info("storage root defaulted", logging.String("root", root))
	}
	return s.blobs.Initialize(root)
}

// Import runs the import pipeline over the given source files.
func (s *Service) Import(ctx context.Context, paths []string) (importer.Result, error) {
	if err := s.ensureStorage(ctx, true); err != nil {
		return importer.Result{}, err
	}
	return s.importer.Import(ctx, paths)
}

// Photos returns all photo records in insertion order.
func (s *Service) Photos(ctx context.Context) ([]library.Photo, error) {
	return s.store.ListPhotos(ctx)
}

// Query returns the photos matching the view and text filter, preserving
// insertion order.
func (s *Service) Query(ctx context.Context, view gallery.View, text string) ([]library.Photo, error) {
	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return nil, err
	}
	return gallery.Filter(photos, view, text), nil
}

// Photo returns the record matching id.
func (s *Service) Photo(ctx context.Context, id string) (library.Photo, error) {
	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return library.Photo{}, err
	}
	for _, photo := range photos {
		if photo.ID == id {
			return photo, nil
		}
	}
	return library.Photo{}, fmt.Errorf("photo %q: %w", id, library.ErrNotFound)
}

// FullResolution returns the stored original as inline data. A missing blob
// degrades to the placeholder image rather than an error.
func (s *Service) FullResolution(ctx context.Context, id string) (string, error) {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.ensureStorage(ctx, false); err != nil {
		return "", err
	}
	data, ok, err := s.blobs.InlineOriginal(photo.RelativePath)
	if err != nil {
		return "", err
	}
	if !ok {
		return PlaceholderImage, nil
	}
	return data, nil
}

// Thumbnail returns the stored thumbnail as inline data, degrading to the
// placeholder when missing.
func (s *Service) Thumbnail(ctx context.Context, id string) (string, error) {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.ensureStorage(ctx, false); err != nil {
		return "", err
	}
	data, ok, err := s.blobs.InlineThumbnail(photo.ThumbnailPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return PlaceholderImage, nil
	}
	return data, nil
}

// UpdatePhoto merges a partial update into the record.
func (s *Service) UpdatePhoto(ctx context.Context, id string, patch library.PhotoPatch) (library.Photo, error) {
	return s.store.UpdatePhoto(ctx, id, patch)
}

// ToggleFavorite flips the favorite flag and returns the updated record.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (library.Photo, error) {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return library.Photo{}, err
	}
	favorite := !photo.Favorite
	return s.store.UpdatePhoto(ctx, id, library.PhotoPatch{Favorite: &favorite})
}

// AddTags appends the given tags to the record, skipping duplicates.
func (s *Service) AddTags(ctx context.Context, id string, tags []string) (library.Photo, error) {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return library.Photo{}, err
	}
	merged := append([]string(nil), photo.Tags...)
	for _, tag := range tags {
		if tag != "" && !slices.Contains(merged, tag) {
			merged = append(merged, tag)
		}
	}
	return s.store.UpdatePhoto(ctx, id, library.PhotoPatch{Tags: &merged})
}

// RemoveTags drops the given tags from the record.
func (s *Service) RemoveTags(ctx context.Context, id string, tags []string) (library.Photo, error) {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return library.Photo{}, err
	}
	kept := make([]string, 0, len(photo.Tags))
	for _, tag := range photo.Tags {
		if !slices.Contains(tags, tag) {
			kept = append(kept, tag)
		}
	}
	return s.store.UpdatePhoto(ctx, id, library.PhotoPatch{Tags: &kept})
}

// DeletePhotos removes blobs and records for each id. Unknown ids become
// per-item not-found failures; blob deletion problems are reported but never
// block record removal.
func (s *Service) DeletePhotos(ctx context.Context, ids []string) (DeleteSummary, error) {
	var summary DeleteSummary
	if len(ids) == 0 {
		return summary, nil
	}
	if err := s.ensureStorage(ctx, false); err != nil {
		return summary, err
	}

	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return summary, err
	}
	byID := make(map[string]library.Photo, len(photos))
	for _, photo := range photos {
		byID[photo.ID] = photo
	}

	var present []string
	for _, id := range ids {
		photo, ok := byID[id]
		if !ok {
			summary.Failures = append(summary.Failures, ItemFailure{ID: id, Err: fmt.Errorf("photo %q: %w", id, library.ErrNotFound)})
			continue
		}
		result, err := s.blobs.DeleteBlobs(photo.ID, photo.RelativePath, photo.ThumbnailPath)
		if err != nil {
			summary.Failures = append(summary.Failures, ItemFailure{ID: id, Err: err})
			continue
		}
		summary.BlobFailures = append(summary.BlobFailures, result.Failures...)
		present = append(present, id)
	}

	if len(present) > 0 {
		removed, _, err := s.store.DeletePhotos(ctx, present)
		if err != nil {
			return summary, err
		}
		for _, photo := range removed {
			summary.Deleted = append(summary.Deleted, photo.ID)
		}
	}
	return summary, nil
}

// Albums returns all album records in insertion order.
func (s *Service) Albums(ctx context.Context) ([]library.Album, error) {
	return s.store.ListAlbums(ctx)
}

// SaveAlbum creates an album with a fresh random id.
func (s *Service) SaveAlbum(ctx context.Context, name string) (library.Album, error) {
	if name == "" {
		return library.Album{}, errors.New("album name is required")
	}
	album := library.Album{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.PutAlbum(ctx, album); err != nil {
		return library.Album{}, err
	}
	return album, nil
}

// DeleteAlbum removes the album and unassigns its member photos, reporting how
// many were cleared.
func (s *Service) DeleteAlbum(ctx context.Context, id string) (int, error) {
	return s.store.DeleteAlbum(ctx, id)
}

// AssignToAlbum sets the album reference on each photo. The album must exist;
// assignment never creates a dangling reference.
func (s *Service) AssignToAlbum(ctx context.Context, photoIDs []string, albumID string) ([]library.Photo, []ItemFailure, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, nil, err
	}
	found := false
	for _, album := range albums {
		if album.ID == albumID {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, fmt.Errorf("album %q: %w", albumID, library.ErrNotFound)
	}

	var updated []library.Photo
	var failures []ItemFailure
	for _, photoID := range photoIDs {
		photo, err := s.store.UpdatePhoto(ctx, photoID, library.PhotoPatch{Album: &albumID})
		if err != nil {
			failures = append(failures, ItemFailure{ID: photoID, Err: err})
			continue
		}
		updated = append(updated, photo)
	}
	return updated, failures, nil
}

// UnassignFromAlbum clears the album reference on each photo.
func (s *Service) UnassignFromAlbum(ctx context.Context, photoIDs []string) ([]library.Photo, []ItemFailure, error) {
	var updated []library.Photo
	var failures []ItemFailure
	for _, photoID := range photoIDs {
		photo, err := s.store.UpdatePhoto(ctx, photoID, library.PhotoPatch{ClearAlbum: true})
		if err != nil {
			failures = append(failures, ItemFailure{ID: photoID, Err: err})
			continue
		}
		updated = append(updated, photo)
	}
	return updated, failures, nil
}

// Export copies the stored original byte-for-byte to destPath.
func (s *Service) Export(ctx context.Context, id, destPath string) error {
	photo, err := s.Photo(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureStorage(ctx, false); err != nil {
		return err
	}
	src, err := s.blobs.OriginalPath(photo.RelativePath)
	if err != nil {
		return err
	}
	if err := fileutil.CopyFileVerified(src, destPath); err != nil {
		return fmt.Errorf("export photo %q: %w", id, err)
	}
	s.logger.Info("photo exported", logging.String("photo_id", id), logging.String("dest", destPath))
	return nil
}

// StorageInfo reports record counts, byte totals, and the storage paths.
func (s *Service) StorageInfo(ctx context.Context) (StorageInfo, error) {
	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return StorageInfo{}, err
	}
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return StorageInfo{}, err
	}

	info := StorageInfo{
		PhotoCount:  len(photos),
		AlbumCount:  len(albums),
		LibraryPath: s.store.Path(),
	}
	for _, photo := range photos {
		info.TotalSizeBytes += photo.FileSize
	}

	if err := s.ensureStorage(ctx, false); err != nil {
		if errors.Is(err, blobstore.ErrNotInitialized) {
			return info, nil
		}
		return StorageInfo{}, err
	}
	info.StorageRoot = s.blobs.Root()
	info.PhotosDir = s.blobs.PhotosDir()
	info.ThumbnailsDir = s.blobs.ThumbnailsDir()

	usage, err := s.blobs.Usage()
	if err != nil {
		return StorageInfo{}, err
	}
	info.PhotoBytes = usage.PhotoBytes
	info.ThumbnailBytes = usage.ThumbnailBytes
	info.FreeBytes = usage.FreeBytes
	return info, nil
}

// ChangeStorageRoot repoints the persisted storage root. With migrate, both
// blob trees are copied into the new root first; without it, existing blobs
// stay where they are (the documented two-step policy).
func (s *Service) ChangeStorageRoot(ctx context.Context, newRoot string, migrate bool) (int, error) {
	expanded, err := config.ExpandPath(newRoot)
	if err != nil {
		return 0, err
	}

	copied := 0
	if migrate {
		switch err := s.ensureStorage(ctx, false); {
		case errors.Is(err, blobstore.ErrNotInitialized):
			// Nothing stored yet, so there is nothing to migrate.
		case err != nil:
			return 0, err
		default:
			if copied, err = s.blobs.Migrate(expanded); err != nil {
				return copied, err
			}
		}
	}
	if err := s.blobs.Initialize(expanded); err != nil {
		return copied, err
	}
	if err := s.store.SetStoragePath(ctx, expanded); err != nil {
		return copied, err
	}
	return copied, nil
}

// ClearAllData deletes every photo's blobs and then empties the library
// document. Irreversible.
func (s *Service) ClearAllData(ctx context.Context) (DeleteSummary, error) {
	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return DeleteSummary{}, err
	}

	var summary DeleteSummary
	if len(photos) > 0 {
		if err := s.ensureStorage(ctx, false); err != nil {
			return summary, err
		}
		for _, photo := range photos {
			result, err := s.blobs.DeleteBlobs(photo.ID, photo.RelativePath, photo.ThumbnailPath)
			if err != nil {
				summary.Failures = append(summary.Failures, ItemFailure{ID: photo.ID, Err: err})
				continue
			}
			summary.BlobFailures = append(summary.BlobFailures, result.Failures...)
			summary.Deleted = append(summary.Deleted, photo.ID)
		}
	}

	if err := s.store.ClearAll(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}
