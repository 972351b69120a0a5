package storage

import "io"

// FileStore abstracts the image file backend. The metadata layer only ever
// deals in remote paths and URLs; payload bytes pass straight through.
type FileStore interface {
	UploadFile(remotePath string, data io.Reader) error
	DownloadFile(remotePath string) (io.ReadCloser, error)
	DeleteFile(remotePath string) error
	GenerateURL(remotePath string) string
	Close() error
}

// Ensure both clients implement the interface
var _ FileStore = (*FTPStore)(nil)
var _ FileStore = (*LocalStore)(nil)
