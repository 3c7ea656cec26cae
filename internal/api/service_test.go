package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photovault/internal/blobstore"
	"photovault/internal/config"
	"photovault/internal/gallery"
	"photovault/internal/library"
	"photovault/internal/logging"
	"photovault/internal/testsupport"
)

func newTestService(t *testing.T) (*Service, *config.Config) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store, err := library.Open(cfg.Paths.LibraryPath, logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewService(cfg, store, logging.NewNop()), cfg
}

func importOne(t *testing.T, svc *Service, name string, size int) library.Photo {
	t.Helper()

	src := testsupport.WriteImage(t, name, size)
	result, err := svc.Import(context.Background(), []string{src})
	if err != nil {
		t.Fatalf("import %s: %v", name, err)
	}
	if len(result.Failures) != 0 {
		t.Fatalf("import %s failed: %v", name, result.Failures)
	}
	return result.Imported[0]
}

func originalBlobPath(cfg *config.Config, photo library.Photo) string {
	return filepath.Join(cfg.Paths.DefaultStorageRoot, blobstore.VaultDirName, "photos", photo.RelativePath)
}

func thumbnailBlobPath(cfg *config.Config, photo library.Photo) string {
	return filepath.Join(cfg.Paths.DefaultStorageRoot, blobstore.VaultDirName, "thumbnails", photo.ThumbnailPath)
}

func TestImportEstablishesDefaultStorageRoot(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	photo := importOne(t, svc, "cat.jpg", 2048)

	root, err := svc.store.StoragePath(ctx)
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	if root != cfg.Paths.DefaultStorageRoot {
		t.Fatalf("expected persisted root %s, got %s", cfg.Paths.DefaultStorageRoot, root)
	}
	if _, err := os.Stat(originalBlobPath(cfg, photo)); err != nil {
		t.Errorf("original blob missing: %v", err)
	}
	if _, err := os.Stat(thumbnailBlobPath(cfg, photo)); err != nil {
		t.Errorf("thumbnail blob missing: %v", err)
	}
}

func TestPhotoLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	photo := importOne(t, svc, "cat.jpg", 2048)
	if photo.FileSize != 2048 {
		t.Fatalf("expected file size 2048, got %d", photo.FileSize)
	}
	if photo.Favorite || photo.Album != nil || len(photo.Tags) != 0 {
		t.Fatalf("unexpected initial record state: %+v", photo)
	}

	toggled, err := svc.ToggleFavorite(ctx, photo.ID)
	if err != nil {
		t.Fatalf("toggle favorite: %v", err)
	}
	if !toggled.Favorite {
		t.Fatal("expected favorite set after toggle")
	}

	album, err := svc.SaveAlbum(ctx, "Pets")
	if err != nil {
		t.Fatalf("save album: %v", err)
	}
	if album.ID == "" || album.Name != "Pets" {
		t.Fatalf("unexpected album record: %+v", album)
	}

	updated, failures, err := svc.AssignToAlbum(ctx, []string{photo.ID}, album.ID)
	if err != nil {
		t.Fatalf("assign to album: %v", err)
	}
	if len(failures) != 0 || len(updated) != 1 {
		t.Fatalf("expected clean assignment, got updated=%d failures=%v", len(updated), failures)
	}
	if updated[0].Album == nil || *updated[0].Album != album.ID {
		t.Fatalf("expected album reference set, got %v", updated[0].Album)
	}

	members, err := svc.Query(ctx, gallery.Album(album.ID), "")
	if err != nil {
		t.Fatalf("query album: %v", err)
	}
	if len(members) != 1 || members[0].ID != photo.ID {
		t.Fatalf("expected album view to contain the photo, got %v", members)
	}

	cleared, err := svc.DeleteAlbum(ctx, album.ID)
	if err != nil {
		t.Fatalf("delete album: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 photo unassigned, got %d", cleared)
	}

	after, err := svc.Photo(ctx, photo.ID)
	if err != nil {
		t.Fatalf("fetch photo: %v", err)
	}
	if after.Album != nil {
		t.Fatalf("expected album cleared after delete, got %q", *after.Album)
	}
	if !after.Favorite {
		t.Error("favorite flag lost during album delete")
	}

	albums, err := svc.Albums(ctx)
	if err != nil {
		t.Fatalf("list albums: %v", err)
	}
	if len(albums) != 0 {
		t.Fatalf("expected no albums left, got %d", len(albums))
	}
}

func TestAssignToMissingAlbum(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	photo := importOne(t, svc, "cat.jpg", 100)

	if _, _, err := svc.AssignToAlbum(ctx, []string{photo.ID}, "ghost"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing album, got %v", err)
	}
}

func TestUnassignFromAlbum(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	photo := importOne(t, svc, "cat.jpg", 100)

	album, err := svc.SaveAlbum(ctx, "Trips")
	if err != nil {
		t.Fatalf("save album: %v", err)
	}
	if _, _, err := svc.AssignToAlbum(ctx, []string{photo.ID}, album.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, failures, err := svc.UnassignFromAlbum(ctx, []string{photo.ID})
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected no failures, got %v", failures)
	}
	if updated[0].Album != nil {
		t.Fatalf("expected album cleared, got %v", *updated[0].Album)
	}
}

func TestTagOperations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	photo := importOne(t, svc, "cat.jpg", 100)

	tagged, err := svc.AddTags(ctx, photo.ID, []string{"pets", "cute", "pets", ""})
	if err != nil {
		t.Fatalf("add tags: %v", err)
	}
	if len(tagged.Tags) != 2 || tagged.Tags[0] != "pets" || tagged.Tags[1] != "cute" {
		t.Fatalf("expected deduplicated tags [pets cute], got %v", tagged.Tags)
	}

	tagged, err = svc.RemoveTags(ctx, photo.ID, []string{"pets", "missing"})
	if err != nil {
		t.Fatalf("remove tags: %v", err)
	}
	if len(tagged.Tags) != 1 || tagged.Tags[0] != "cute" {
		t.Fatalf("expected tags [cute], got %v", tagged.Tags)
	}
}

func TestDeletePhotosRemovesRecordsAndBlobs(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	keep := importOne(t, svc, "keep.jpg", 100)
	gone := importOne(t, svc, "gone.jpg", 100)

	summary, err := svc.DeletePhotos(ctx, []string{gone.ID})
	if err != nil {
		t.Fatalf("delete photos: %v", err)
	}
	if len(summary.Deleted) != 1 || summary.Deleted[0] != gone.ID {
		t.Fatalf("expected deleted [%s], got %v", gone.ID, summary.Deleted)
	}
	if len(summary.Failures) != 0 || len(summary.BlobFailures) != 0 {
		t.Fatalf("expected clean delete, got %+v", summary)
	}

	if _, err := os.Stat(originalBlobPath(cfg, gone)); !errors.Is(err, os.ErrNotExist) {
		t.Error("deleted original blob still present")
	}
	if _, err := os.Stat(thumbnailBlobPath(cfg, gone)); !errors.Is(err, os.ErrNotExist) {
		t.Error("deleted thumbnail blob still present")
	}
	if _, err := os.Stat(originalBlobPath(cfg, keep)); err != nil {
		t.Errorf("unrelated blob removed: %v", err)
	}

	photos, err := svc.Photos(ctx)
	if err != nil {
		t.Fatalf("list photos: %v", err)
	}
	if len(photos) != 1 || photos[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %v", keep.ID, photos)
	}
}

func TestDeletePhotosRemovesUppercaseExtensionBlobs(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	photo := importOne(t, svc, "cat.JPG", 256)
	if _, err := os.Stat(thumbnailBlobPath(cfg, photo)); err != nil {
		t.Fatalf("thumbnail not stored: %v", err)
	}

	summary, err := svc.DeletePhotos(ctx, []string{photo.ID})
	if err != nil {
		t.Fatalf("delete photos: %v", err)
	}
	if len(summary.Deleted) != 1 || len(summary.BlobFailures) != 0 {
		t.Fatalf("expected clean delete, got %+v", summary)
	}
	if _, err := os.Stat(originalBlobPath(cfg, photo)); !errors.Is(err, os.ErrNotExist) {
		t.Error("original still present after delete")
	}
	if _, err := os.Stat(thumbnailBlobPath(cfg, photo)); !errors.Is(err, os.ErrNotExist) {
		t.Error("thumbnail still present after delete")
	}
}

func TestDeletePhotosReportsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	photo := importOne(t, svc, "cat.jpg", 100)

	summary, err := svc.DeletePhotos(ctx, []string{photo.ID, "ghost"})
	if err != nil {
		t.Fatalf("delete photos: %v", err)
	}
	if len(summary.Deleted) != 1 {
		t.Fatalf("expected 1 deleted, got %v", summary.Deleted)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].ID != "ghost" {
		t.Fatalf("expected per-item failure for ghost, got %v", summary.Failures)
	}
	if !errors.Is(summary.Failures[0].Err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", summary.Failures[0].Err)
	}
}

func TestInlineRepresentations(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)
	photo := importOne(t, svc, "cat.jpg", 256)

	full, err := svc.FullResolution(ctx, photo.ID)
	if err != nil {
		t.Fatalf("full resolution: %v", err)
	}
	if !strings.HasPrefix(full, "data:image/jpeg;base64,") {
		t.Fatalf("expected JPEG data URI, got %.40s", full)
	}

	thumb, err := svc.Thumbnail(ctx, photo.ID)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if !strings.HasPrefix(thumb, "data:image/jpeg;base64,") {
		t.Fatalf("expected JPEG data URI, got %.40s", thumb)
	}

	// Missing blobs degrade to the placeholder rather than failing.
	if err := os.Remove(thumbnailBlobPath(cfg, photo)); err != nil {
		t.Fatalf("remove thumbnail: %v", err)
	}
	thumb, err = svc.Thumbnail(ctx, photo.ID)
	if err != nil {
		t.Fatalf("thumbnail after removal: %v", err)
	}
	if thumb != PlaceholderImage {
		t.Fatal("expected placeholder for missing thumbnail")
	}

	if err := os.Remove(originalBlobPath(cfg, photo)); err != nil {
		t.Fatalf("remove original: %v", err)
	}
	full, err = svc.FullResolution(ctx, photo.ID)
	if err != nil {
		t.Fatalf("full resolution after removal: %v", err)
	}
	if full != PlaceholderImage {
		t.Fatal("expected placeholder for missing original")
	}
}

func TestInlineUnknownPhoto(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Thumbnail(context.Background(), "ghost"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	src := testsupport.WriteImage(t, "cat.jpg", 300)
	result, err := svc.Import(ctx, []string{src})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	photo := result.Imported[0]

	dest := filepath.Join(t.TempDir(), "exported.jpg")
	if err := svc.Export(ctx, photo.ID, dest); err != nil {
		t.Fatalf("export: %v", err)
	}

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(got) != string(want) {
		t.Error("exported bytes differ from source")
	}
}

func TestStorageInfo(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	// Before any import the library is empty and storage is unattached.
	info, err := svc.StorageInfo(ctx)
	if err != nil {
		t.Fatalf("storage info: %v", err)
	}
	if info.PhotoCount != 0 || info.StorageRoot != "" {
		t.Fatalf("expected empty info before import, got %+v", info)
	}
	if info.LibraryPath != cfg.Paths.LibraryPath {
		t.Errorf("expected library path %s, got %s", cfg.Paths.LibraryPath, info.LibraryPath)
	}

	importOne(t, svc, "cat.jpg", 2048)

	info, err = svc.StorageInfo(ctx)
	if err != nil {
		t.Fatalf("storage info: %v", err)
	}
	if info.PhotoCount != 1 {
		t.Errorf("expected 1 photo, got %d", info.PhotoCount)
	}
	if info.TotalSizeBytes != 2048 {
		t.Errorf("expected 2048 recorded bytes, got %d", info.TotalSizeBytes)
	}
	if info.PhotoBytes != 2048 || info.ThumbnailBytes != 2048 {
		t.Errorf("expected 2048 bytes in each tree, got %d/%d", info.PhotoBytes, info.ThumbnailBytes)
	}
	if info.StorageRoot != cfg.Paths.DefaultStorageRoot {
		t.Errorf("expected storage root %s, got %s", cfg.Paths.DefaultStorageRoot, info.StorageRoot)
	}
	if info.FreeBytes == 0 {
		t.Error("expected nonzero filesystem free bytes")
	}
}

func TestChangeStorageRootWithMigration(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first := importOne(t, svc, "one.jpg", 100)
	second := importOne(t, svc, "two.jpg", 100)

	newRoot := t.TempDir()
	copied, err := svc.ChangeStorageRoot(ctx, newRoot, true)
	if err != nil {
		t.Fatalf("change storage root: %v", err)
	}
	if copied != 4 {
		t.Fatalf("expected 4 files migrated, got %d", copied)
	}

	root, err := svc.store.StoragePath(ctx)
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	if root != newRoot {
		t.Fatalf("expected persisted root %s, got %s", newRoot, root)
	}

	// Blobs resolve under the new root.
	for _, photo := range []library.Photo{first, second} {
		full, err := svc.FullResolution(ctx, photo.ID)
		if err != nil {
			t.Fatalf("full resolution after migration: %v", err)
		}
		if full == PlaceholderImage {
			t.Errorf("photo %s unreadable after migration", photo.ID)
		}
	}
}

func TestChangeStorageRootWithoutMigration(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	photo := importOne(t, svc, "cat.jpg", 100)

	newRoot := t.TempDir()
	copied, err := svc.ChangeStorageRoot(ctx, newRoot, false)
	if err != nil {
		t.Fatalf("change storage root: %v", err)
	}
	if copied != 0 {
		t.Fatalf("expected no files copied, got %d", copied)
	}

	// Old blobs stay where they are; reads under the new root degrade to the
	// placeholder.
	if _, err := os.Stat(originalBlobPath(cfg, photo)); err != nil {
		t.Errorf("old blob removed without migration: %v", err)
	}
	full, err := svc.FullResolution(ctx, photo.ID)
	if err != nil {
		t.Fatalf("full resolution: %v", err)
	}
	if full != PlaceholderImage {
		t.Error("expected placeholder under the new root")
	}
}

func TestChangeStorageRootMigrateBeforeFirstImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	newRoot := t.TempDir()
	copied, err := svc.ChangeStorageRoot(ctx, newRoot, true)
	if err != nil {
		t.Fatalf("change storage root: %v", err)
	}
	if copied != 0 {
		t.Fatalf("expected nothing to migrate, got %d", copied)
	}

	root, err := svc.store.StoragePath(ctx)
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	if root != newRoot {
		t.Fatalf("expected persisted root %s, got %s", newRoot, root)
	}

	// The chosen root is usable immediately.
	result, err := svc.Import(ctx, []string{testsupport.WriteImage(t, "cat.jpg", 100)})
	if err != nil {
		t.Fatalf("import after root change: %v", err)
	}
	if len(result.Imported) != 1 {
		t.Fatalf("expected import into the new root, failures: %v", result.Failures)
	}
}

func TestReadsBeforeStorageInitFail(t *testing.T) {
	svc, _ := newTestService(t)

	// Seed a record directly so the read path is reachable without an import.
	photo := library.Photo{ID: "p1", Name: "a.jpg", RelativePath: "2024-03/p1.jpg", ThumbnailPath: "p1.jpg", Tags: []string{}}
	if err := svc.store.PutPhoto(context.Background(), photo); err != nil {
		t.Fatalf("put photo: %v", err)
	}

	if _, err := svc.Thumbnail(context.Background(), "p1"); !errors.Is(err, blobstore.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestClearAllData(t *testing.T) {
	ctx := context.Background()
	svc, cfg := newTestService(t)

	first := importOne(t, svc, "one.jpg", 100)
	second := importOne(t, svc, "two.jpg", 100)
	if _, err := svc.SaveAlbum(ctx, "Pets"); err != nil {
		t.Fatalf("save album: %v", err)
	}

	summary, err := svc.ClearAllData(ctx)
	if err != nil {
		t.Fatalf("clear all data: %v", err)
	}
	if len(summary.Deleted) != 2 {
		t.Fatalf("expected 2 deleted, got %v", summary.Deleted)
	}

	photos, _ := svc.Photos(ctx)
	albums, _ := svc.Albums(ctx)
	if len(photos) != 0 || len(albums) != 0 {
		t.Fatalf("expected empty library, got %d photos, %d albums", len(photos), len(albums))
	}
	root, _ := svc.store.StoragePath(ctx)
	if root != "" {
		t.Fatalf("expected storage pointer cleared, got %q", root)
	}
	for _, photo := range []library.Photo{first, second} {
		if _, err := os.Stat(originalBlobPath(cfg, photo)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("blob for %s still present after clear", photo.ID)
		}
	}
}
