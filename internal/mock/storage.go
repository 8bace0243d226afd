package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/asubedi/media-convert-go/internal/port"
)

type nopReadSeekCloser struct{ *bytes.Reader }

func (nopReadSeekCloser) Close() error { return nil }

// ReadSeekCloser wraps raw bytes into the io.ReadSeekCloser storage returns.
func ReadSeekCloser(data []byte) io.ReadSeekCloser {
	return nopReadSeekCloser{bytes.NewReader(data)}
}

// Storage is a hand-rolled port.Storage for unit tests.
type Storage struct {
	FileData   []byte
	StatInfo   port.FileInfo
	Exists     bool
	ExistsErr  error
	StatErr    error
	GetErr     error
	SaveErr    error
	RemoveErr  error

	StatCalled   bool
	GetCalled    bool
	SaveCalled   bool
	RemoveCalled bool
	SavedKey     string
	SavedData    []byte
	SavedOpts    map[string]string
	RemovedKeys  []string
}

var _ port.Storage = (*Storage)(nil)

func (m *Storage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	return m.Exists, m.ExistsErr
}

func (m *Storage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.StatInfo, nil
}

func (m *Storage) RemoveFile(ctx context.Context, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedKeys = append(m.RemovedKeys, fileKey)
	return m.RemoveErr
}

func (m *Storage) GetFile(ctx context.Context, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return ReadSeekCloser(m.FileData), nil
}

func (m *Storage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.SavedKey = fileKey
	m.SavedData = data
	m.SavedOpts = opts
	return nil
}
