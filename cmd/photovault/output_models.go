package main

import (
	"photovault/internal/api"
	"photovault/internal/config"
	"photovault/internal/importer"
	"photovault/internal/library"
)

// JSON view models for --json output. Records marshal with their library
// field names; failures flatten errors to strings.

type importFailureView struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type importReportView struct {
	Imported []library.Photo     `json:"imported"`
	Failures []importFailureView `json:"failures"`
}

func importReport(result importer.Result) importReportView {
	view := importReportView{
		Imported: result.Imported,
		Failures: make([]importFailureView, 0, len(result.Failures)),
	}
	for _, failure := range result.Failures {
		view.Failures = append(view.Failures, importFailureView{Path: failure.Path, Error: failure.Err.Error()})
	}
	return view
}

type itemFailureView struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type deleteReportView struct {
	Deleted      []string          `json:"deleted"`
	Failures     []itemFailureView `json:"failures"`
	BlobFailures []itemFailureView `json:"blob_failures"`
}

func deleteReport(summary api.DeleteSummary) deleteReportView {
	view := deleteReportView{
		Deleted:      summary.Deleted,
		Failures:     make([]itemFailureView, 0, len(summary.Failures)),
		BlobFailures: make([]itemFailureView, 0, len(summary.BlobFailures)),
	}
	for _, failure := range summary.Failures {
		view.Failures = append(view.Failures, itemFailureView{ID: failure.ID, Error: failure.Err.Error()})
	}
	for _, failure := range summary.BlobFailures {
		view.BlobFailures = append(view.BlobFailures, itemFailureView{ID: failure.Path, Error: failure.Err.Error()})
	}
	return view
}

type storageInfoView struct {
	PhotoCount     int    `json:"photo_count"`
	AlbumCount     int    `json:"album_count"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	PhotoBytes     int64  `json:"photo_bytes"`
	ThumbnailBytes int64  `json:"thumbnail_bytes"`
	FreeBytes      uint64 `json:"free_bytes"`
	LibraryPath    string `json:"library_path"`
	StorageRoot    string `json:"storage_root,omitempty"`
	PhotosDir      string `json:"photos_dir,omitempty"`
	ThumbnailsDir  string `json:"thumbnails_dir,omitempty"`
}

type configView struct {
	ConfigPath         string   `json:"config_path"`
	ConfigExists       bool     `json:"config_exists"`
	LibraryPath        string   `json:"library_path"`
	DefaultStorageRoot string   `json:"default_storage_root"`
	LogDir             string   `json:"log_dir"`
	Extensions         []string `json:"extensions"`
	LogFormat          string   `json:"log_format"`
	LogLevel           string   `json:"log_level"`
}

func configViewOf(cfg *config.Config, path string, exists bool) configView {
	return configView{
		ConfigPath:         path,
		ConfigExists:       exists,
		LibraryPath:        cfg.Paths.LibraryPath,
		DefaultStorageRoot: cfg.Paths.DefaultStorageRoot,
		LogDir:             cfg.Paths.LogDir,
		Extensions:         cfg.Import.Extensions,
		LogFormat:          cfg.Logging.Format,
		LogLevel:           cfg.Logging.Level,
	}
}

func storageInfoViewOf(info api.StorageInfo) storageInfoView {
	return storageInfoView{
		PhotoCount:     info.PhotoCount,
		AlbumCount:     info.AlbumCount,
		TotalSizeBytes: info.TotalSizeBytes,
		PhotoBytes:     info.PhotoBytes,
		ThumbnailBytes: info.ThumbnailBytes,
		FreeBytes:      info.FreeBytes,
		LibraryPath:    info.LibraryPath,
		StorageRoot:    info.StorageRoot,
		PhotosDir:      info.PhotosDir,
		ThumbnailsDir:  info.ThumbnailsDir,
	}
}
