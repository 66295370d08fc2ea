// Package storage is a small filesystem abstraction with two drivers:
//   - "local": a directory on this machine (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
//	m := storage.NewManager("local")
//	m.Register("local", storage.NewLocalDisk("storage", ""))
//	disk, err := m.Disk("")
//	err = disk.Put(ctx, "backups/paladar.json", data)
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned when reading a path that holds no file.
var ErrNotExist = errors.New("storage: file does not exist")

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// Files lists the files directly inside directory, as paths relative to
	// the disk root, sorted.
	Files(ctx context.Context, directory string) ([]string, error)

	// URL returns where path can be fetched from, for display.
	URL(path string) string
}
