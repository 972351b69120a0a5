package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore saves files to the local filesystem. Used in development and
// in tests in place of the FTP backend.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates a filesystem-backed store rooted at baseDir.
func NewLocalStore(baseDir, baseURL string) *LocalStore {
	os.MkdirAll(baseDir, 0755)

	return &LocalStore{
		baseDir: baseDir,
		baseURL: baseURL,
	}
}

// UploadFile saves a file to the local filesystem
func (s *LocalStore) UploadFile(remotePath string, data io.Reader) error {
	localPath := filepath.Join(s.baseDir, remotePath)

	dir := filepath.Dir(localPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// DownloadFile reads a file from the local filesystem
func (s *LocalStore) DownloadFile(remotePath string) (io.ReadCloser, error) {
	localPath := filepath.Join(s.baseDir, remotePath)

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// DeleteFile deletes a file from the local filesystem
func (s *LocalStore) DeleteFile(remotePath string) error {
	localPath := filepath.Join(s.baseDir, remotePath)

	if err := os.Remove(localPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GenerateURL generates the full URL for a file
func (s *LocalStore) GenerateURL(remotePath string) string {
	return s.baseURL + "/" + remotePath
}

// Close is a no-op for the local store
func (s *LocalStore) Close() error {
	return nil
}
