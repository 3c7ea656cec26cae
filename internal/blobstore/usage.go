package blobstore

import (
	"errors"
	"io/fs"
	"path/filepath"
	"syscall"
)

// Usage describes blob storage consumption and the filesystem headroom under
// the current root.
type Usage struct {
	PhotoBytes     int64
	ThumbnailBytes int64
	FreeBytes      uint64
	TotalFSBytes   uint64
}

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

var statfs statfsFunc = realStatfs

// Usage walks both trees and reports their byte totals plus filesystem free
// space at the root.
func (m *Manager) Usage() (Usage, error) {
	if err := m.ensureInitialized(); err != nil {
		return Usage{}, err
	}

	var usage Usage
	var err error
	if usage.PhotoBytes, err = treeSize(m.PhotosDir()); err != nil {
		return Usage{}, err
	}
	if usage.ThumbnailBytes, err = treeSize(m.ThumbnailsDir()); err != nil {
		return Usage{}, err
	}
	total, free, err := statfs(m.root)
	if err != nil {
		return Usage{}, err
	}
	usage.TotalFSBytes = total
	usage.FreeBytes = free
	return usage, nil
}

func treeSize(root string) (int64, error) {
	var size int64
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if entry.IsDir() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
