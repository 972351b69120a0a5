package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTPStore stores image files on a remote FTP server.
type FTPStore struct {
	host     string
	port     string
	user     string
	password string
	baseURL  string
	conn     *ftp.ServerConn
}

// NewFTPStore creates an FTP-backed file store. The connection is opened
// lazily on first use.
func NewFTPStore(host, port, user, password, baseURL string) *FTPStore {
	return &FTPStore{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		baseURL:  baseURL,
	}
}

// Connect establishes connection to the FTP server
func (s *FTPStore) Connect() error {
	addr := s.host + ":" + s.port
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to FTP: %w", err)
	}

	if err := conn.Login(s.user, s.password); err != nil {
		conn.Quit()
		return fmt.Errorf("failed to login to FTP: %w", err)
	}

	s.conn = conn
	return nil
}

// UploadFile uploads a file to the FTP server
func (s *FTPStore) UploadFile(remotePath string, data io.Reader) error {
	if s.conn == nil {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	if err := s.conn.Stor(remotePath, data); err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}

	return nil
}

// DownloadFile downloads a file from the FTP server
func (s *FTPStore) DownloadFile(remotePath string) (io.ReadCloser, error) {
	if s.conn == nil {
		if err := s.Connect(); err != nil {
			return nil, err
		}
	}

	resp, err := s.conn.Retr(remotePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return resp, nil
}

// DeleteFile deletes a file from the FTP server
func (s *FTPStore) DeleteFile(remotePath string) error {
	if s.conn == nil {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	if err := s.conn.Delete(remotePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GenerateURL generates the full URL for a file
func (s *FTPStore) GenerateURL(remotePath string) string {
	return s.baseURL + "/" + remotePath
}

// Close closes the FTP connection
func (s *FTPStore) Close() error {
	if s.conn != nil {
		return s.conn.Quit()
	}
	return nil
}
