package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name string, size int) string {
	t.Helper()
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCopyFile(t *testing.T) {
	src := writeFixture(t, "src.bin", 1024)
	dst := filepath.Join(t.TempDir(), "dst.bin")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy file: %v", err)
	}

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(want) {
		t.Error("copied bytes differ from source")
	}
}

func TestCopyFileTruncatesExisting(t *testing.T) {
	src := writeFixture(t, "src.bin", 16)
	dst := filepath.Join(t.TempDir(), "dst.bin")
	if err := os.WriteFile(dst, make([]byte, 4096), 0o644); err != nil {
		t.Fatalf("seed dst: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	size, err := FileSize(dst)
	if err != nil {
		t.Fatalf("file size: %v", err)
	}
	if size != 16 {
		t.Fatalf("expected truncated destination of 16 bytes, got %d", size)
	}
}

func TestCopyFileMode(t *testing.T) {
	src := writeFixture(t, "src.bin", 8)
	dst := filepath.Join(t.TempDir(), "dst.bin")

	if err := CopyFileMode(src, dst, 0o600); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestCopyFileVerified(t *testing.T) {
	src := writeFixture(t, "src.bin", 2048)
	dst := filepath.Join(t.TempDir(), "dst.bin")

	if err := CopyFileVerified(src, dst); err != nil {
		t.Fatalf("verified copy: %v", err)
	}

	want, _ := os.ReadFile(src)
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != string(want) {
		t.Error("copied bytes differ from source")
	}
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst.bin")
	err := CopyFileVerified(filepath.Join(t.TempDir(), "missing.bin"), dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(dst); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("destination created despite failed copy")
	}
}

func TestFileSize(t *testing.T) {
	src := writeFixture(t, "src.bin", 321)
	size, err := FileSize(src)
	if err != nil {
		t.Fatalf("file size: %v", err)
	}
	if size != 321 {
		t.Fatalf("expected 321, got %d", size)
	}

	if _, err := FileSize(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
