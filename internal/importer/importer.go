// Package importer orchestrates photo ingestion: id generation, blob copies,
// and metadata record creation, one file at a time.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"photovault/internal/blobstore"
	"photovault/internal/fileutil"
	"photovault/internal/library"
	"photovault/internal/logging"
)

// Failure records one source file that could not be imported.
type Failure struct {
	Path string
	Err  error
}

// Result carries the records that made it into the library plus the per-file
// failures. One bad file never aborts the batch.
type Result struct {
	Imported []library.Photo
	Failures []Failure
}

// Importer runs the import pipeline against a library store and blob manager.
type Importer struct {
	store      *library.Store
	blobs      *blobstore.Manager
	extensions map[string]struct{}
	logger     *slog.Logger

	// Seams for tests.
	now   func() time.Time
	newID func() string
	faces func() int
}

// New builds an importer. extensions is the accepted image extension set.
func New(store *library.Store, blobs *blobstore.Manager, extensions []string, logger *slog.Logger) *Importer {
	extSet := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = struct{}{}
	}
	return &Importer{
		store:      store,
		blobs:      blobs,
		extensions: extSet,
		logger:     logging.NewComponentLogger(logger, "importer"),
		now:        time.Now,
		newID:      uuid.NewString,
		faces:      func() int { return rand.Intn(4) },
	}
}

// Import processes each source file sequentially: fresh id, original copy,
// thumbnail copy, size stat, record creation, persistence. Files that fail are
// skipped and reported; there is no rollback of a copied original when a later
// step fails. Uninitialized storage fails the whole operation since nothing
// could succeed.
func (i *Importer) Import(ctx context.Context, paths []string) (Result, error) {
	if !i.blobs.Initialized() {
		return Result{}, blobstore.ErrNotInitialized
	}

	var result Result
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		photo, err := i.importOne(ctx, path)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			i.logger.Warn("import failed", logging.String("path", path), logging.Error(err))
			continue
		}
		result.Imported = append(result.Imported, photo)
		i.logger.Info("photo imported",
			logging.String("photo_id", photo.ID),
			logging.String("name", photo.Name),
			logging.Int64("bytes", photo.FileSize))
	}
	return result, nil
}

func (i *Importer) importOne(ctx context.Context, path string) (library.Photo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return library.Photo{}, fmt.Errorf("resolve path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(abs))
	if _, ok := i.extensions[ext]; !ok {
		return library.Photo{}, fmt.Errorf("unsupported image extension %q", ext)
	}

	size, err := fileutil.FileSize(abs)
	if err != nil {
		return library.Photo{}, fmt.Errorf("inspect source: %w", err)
	}

	id := i.newID()
	original, err := i.blobs.StoreOriginal(abs, id)
	if err != nil {
		return library.Photo{}, err
	}
	thumbnail, err := i.blobs.StoreThumbnail(abs, id)
	if err != nil {
		// The original stays behind; accepted orphan rather than a rollback.
		return library.Photo{}, err
	}

	now := i.now()
	photo := library.Photo{
		ID:            id,
		Name:          filepath.Base(abs),
		RelativePath:  original.RelativePath,
		ThumbnailPath: thumbnail,
		OriginalPath:  abs,
		Date:          now.Format("1/2/2006"),
		DateAdded:     now.UTC().Format(time.RFC3339),
		Favorite:      false,
		Faces:         i.faces(),
		Album:         nil,
		Tags:          []string{},
		FileSize:      size,
	}
	if err := i.store.PutPhoto(ctx, photo); err != nil {
		return library.Photo{}, err
	}
	return photo, nil
}
