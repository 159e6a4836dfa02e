// Package storage provides file storage behind a Disk interface with
// local-filesystem and S3-compatible drivers. Product images are written
// through the default disk and served under /uploads.
package storage

import (
	"io"
	"time"
)

// Disk is the contract every storage driver implements.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Missing(path string) bool
	Delete(path string) error
	URL(path string) string
	Size(path string) (int64, error)
	LastModified(path string) (time.Time, error)
}
