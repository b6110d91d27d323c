package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jaumet/avook-catalog/internal/domain"
)

// FileSource reads the embedded catalog payload from disk, the deployment
// mode where the storefront ships its data with the page.
type FileSource struct {
	path string
}

// NewFileSource builds a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load parses the file. Both payload shapes are accepted: the wrapped
// document and a bare raw-title array.
func (s *FileSource) Load(_ context.Context) (*domain.Payload, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	var p domain.Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}
	return &p, nil
}
