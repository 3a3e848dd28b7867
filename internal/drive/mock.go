package drive

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MockUploader is a test double for Uploader.
type MockUploader struct {
	mu      sync.Mutex
	Err     error
	Uploads []string
}

// Upload records the call and returns a deterministic link, or Err if set.
func (m *MockUploader) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	m.Uploads = append(m.Uploads, name)
	return fmt.Sprintf("https://drive.example/%s", name), nil
}
