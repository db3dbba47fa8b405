package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink delivers a rendered report and returns where it ended up
type Sink interface {
	Publish(ctx context.Context, name string, contentType string, body []byte) (string, error)
}

// FileName turns a report title into a safe artifact name with the given extension
func FileName(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "report"
	}
	return name + ext
}

type localSink struct {
	dir string
}

func NewLocalSink(dir string) Sink {
	return &localSink{dir: dir}
}

func (s *localSink) Publish(_ context.Context, name string, _ string, body []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}
