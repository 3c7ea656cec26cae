package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"photovault/internal/logging"
)

// Document is the on-disk shape of the library file: the storage root pointer
// plus the two record collections.
type Document struct {
	StoragePath string  `json:"storage_path"`
	Photos      []Photo `json:"photos"`
	Albums      []Album `json:"albums"`
}

// Store owns the library document. All operations run on a single writer
// goroutine; see the package comment for the consistency model.
type Store struct {
	path   string
	logger *slog.Logger
	lock   *flock.Flock

	ops    chan operation
	done   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup
}

type operation struct {
	apply func(doc *Document) (any, bool, error)
	reply chan opResult
}

type opResult struct {
	value any
	err   error
}

// Open prepares the store at path, acquiring the instance lock beside the
// document. The document itself is created lazily on first mutation.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("library path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create library directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrLocked)
	}

	s := &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "library"),
		lock:   lock,
		ops:    make(chan operation),
		done:   make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s, nil
}

// Path returns the library document location.
func (s *Store) Path() string {
	return s.path
}

// Close stops the writer goroutine and releases the instance lock.
func (s *Store) Close() error {
	if s == nil || !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(s.done)
	s.wg.Wait()
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release library lock: %w", err)
	}
	return nil
}

func (s *Store) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case op := <-s.ops:
			op.reply <- s.execute(op.apply)
		}
	}
}

// execute performs one full load-apply-save cycle. Mutations that fail leave
// the on-disk document untouched.
func (s *Store) execute(apply func(doc *Document) (any, bool, error)) opResult {
	doc, err := s.read()
	if err != nil {
		return opResult{err: err}
	}
	value, dirty, err := apply(&doc)
	if err != nil {
		return opResult{value: value, err: err}
	}
	if dirty {
		if err := s.write(doc); err != nil {
			return opResult{err: err}
		}
	}
	return opResult{value: value}
}

func (s *Store) do(ctx context.Context, apply func(doc *Document) (any, bool, error)) (any, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	op := operation{apply: apply, reply: make(chan opResult, 1)}
	select {
	case s.ops <- op:
	case <-s.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-op.reply:
		return res.value, res.err
	case <-s.done:
		return nil, ErrClosed
	}
}

// PutPhoto appends a photo record. The id must be unique across the library.
func (s *Store) PutPhoto(ctx context.Context, photo Photo) error {
	if photo.ID == "" {
		return errors.New("photo id is required")
	}
	_, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		for _, existing := range doc.Photos {
			if existing.ID == photo.ID {
				return nil, false, fmt.Errorf("photo %q already exists", photo.ID)
			}
		}
		doc.Photos = append(doc.Photos, clonePhoto(photo))
		return nil, true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("photo saved", logging.String("photo_id", photo.ID), logging.String("name", photo.Name))
	return nil
}

// ListPhotos returns all photo records in insertion order.
func (s *Store) ListPhotos(ctx context.Context) ([]Photo, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		return clonePhotos(doc.Photos), false, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]Photo), nil
}

// UpdatePhoto merges the patch into the first record matching id and returns
// the merged record.
func (s *Store) UpdatePhoto(ctx context.Context, id string, patch PhotoPatch) (Photo, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		for i := range doc.Photos {
			if doc.Photos[i].ID != id {
				continue
			}
			patch.applyTo(&doc.Photos[i])
			return clonePhoto(doc.Photos[i]), true, nil
		}
		return nil, false, fmt.Errorf("photo %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return Photo{}, err
	}
	return value.(Photo), nil
}

// DeletePhotos removes every record whose id is in ids and reports the removed
// records plus the ids that matched nothing. Blob deletion is the caller's
// responsibility; the store never touches files other than the document.
func (s *Store) DeletePhotos(ctx context.Context, ids []string) (removed []Photo, missing []string, err error) {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		var kept []Photo
		var gone []Photo
		for _, photo := range doc.Photos {
			if _, ok := idSet[photo.ID]; ok {
				gone = append(gone, clonePhoto(photo))
				continue
			}
			kept = append(kept, photo)
		}
		if len(gone) == 0 {
			return []Photo(nil), false, nil
		}
		doc.Photos = kept
		return gone, true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	removed = value.([]Photo)
	removedSet := make(map[string]struct{}, len(removed))
	for _, photo := range removed {
		removedSet[photo.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := removedSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(removed) > 0 {
		s.logger.Debug("photos deleted", logging.Int("count", len(removed)))
	}
	return removed, missing, nil
}

// PutAlbum appends an album record.
func (s *Store) PutAlbum(ctx context.Context, album Album) error {
	if album.ID == "" {
		return errors.New("album id is required")
	}
	_, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		for _, existing := range doc.Albums {
			if existing.ID == album.ID {
				return nil, false, fmt.Errorf("album %q already exists", album.ID)
			}
		}
		doc.Albums = append(doc.Albums, album)
		return nil, true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("album saved", logging.String("album_id", album.ID), logging.String("name", album.Name))
	return nil
}

// ListAlbums returns all album records in insertion order.
func (s *Store) ListAlbums(ctx context.Context) ([]Album, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		return append([]Album(nil), doc.Albums...), false, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]Album), nil
}

// UpdateAlbum merges the patch into the first record matching id.
func (s *Store) UpdateAlbum(ctx context.Context, id string, patch AlbumPatch) (Album, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		for i := range doc.Albums {
			if doc.Albums[i].ID != id {
				continue
			}
			patch.applyTo(&doc.Albums[i])
			return doc.Albums[i], true, nil
		}
		return nil, false, fmt.Errorf("album %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return Album{}, err
	}
	return value.(Album), nil
}

// DeleteAlbum removes the album and clears the Album field of every member
// photo in the same document rewrite, so no photo can ever reference a missing
// album. It reports how many photos were unassigned.
func (s *Store) DeleteAlbum(ctx context.Context, id string) (int, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		index := -1
		for i := range doc.Albums {
			if doc.Albums[i].ID == id {
				index = i
				break
			}
		}
		if index < 0 {
			return 0, false, fmt.Errorf("album %q: %w", id, ErrNotFound)
		}
		doc.Albums = append(doc.Albums[:index], doc.Albums[index+1:]...)

		cleared := 0
		for i := range doc.Photos {
			if doc.Photos[i].Album != nil && *doc.Photos[i].Album == id {
				doc.Photos[i].Album = nil
				cleared++
			}
		}
		return cleared, true, nil
	})
	if err != nil {
		return 0, err
	}
	cleared := value.(int)
	s.logger.Debug("album deleted", logging.String("album_id", id), logging.Int("photos_unassigned", cleared))
	return cleared, nil
}

// ClearAll empties both collections and the storage pointer. Callers must
// delete blobs first; this operation is irreversible.
func (s *Store) ClearAll(ctx context.Context) error {
	_, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		*doc = Document{}
		return nil, true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("library cleared")
	return nil
}

// StoragePath returns the persisted storage root pointer; empty means no root
// has been chosen yet.
func (s *Store) StoragePath(ctx context.Context) (string, error) {
	value, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		return doc.StoragePath, false, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// SetStoragePath updates the persisted storage root pointer. Existing blobs
// are not moved; see the blob store's Migrate.
func (s *Store) SetStoragePath(ctx context.Context, path string) error {
	_, err := s.do(ctx, func(doc *Document) (any, bool, error) {
		doc.StoragePath = path
		return nil, true, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("storage root updated", logging.String("path", path))
	return nil
}

func (s *Store) read() (Document, error) {
	var doc Document
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read library document: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse library document: %w", err)
	}
	for i := range doc.Photos {
		if doc.Photos[i].Tags == nil {
			doc.Photos[i].Tags = []string{}
		}
	}
	return doc, nil
}

// write persists the document atomically via temp file + rename.
func (s *Store) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library document: %w", err)
	}
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace library document: %w", err)
	}
	return nil
}
