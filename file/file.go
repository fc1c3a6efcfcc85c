// Package file hands finished export payloads to wherever they should end up.
package file

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/export"
	"go.uber.org/zap"
)

// Sink persists or offers a payload. It returns where the payload went.
type Sink interface {
	Save(ctx context.Context, p *export.Payload) (string, error)
}

// DirSink writes payloads into a directory, creating it when needed.
type DirSink struct {
	Dir    string
	Logger *zap.Logger
}

func NewDirSink(dir string, logger *zap.Logger) *DirSink {
	if dir == "" {
		dir = constants.GetOutDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirSink{Dir: dir, Logger: logger}
}

func (s *DirSink) Save(ctx context.Context, p *export.Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.Dir, filepath.Base(p.Filename))
	if err := os.WriteFile(path, p.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	s.Logger.Info("saved export",
		zap.String("path", path),
		zap.String("mime_type", p.MimeType),
		zap.Int("bytes", len(p.Data)),
	)
	return path, nil
}

// ResponseSink offers the payload as a download on an HTTP response.
type ResponseSink struct {
	W http.ResponseWriter
}

func (s ResponseSink) Save(ctx context.Context, p *export.Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h := s.W.Header()
	h.Set("Content-Type", p.MimeType)
	h.Set("Content-Disposition", "attachment; filename="+strconv.Quote(p.Filename))
	h.Set("Content-Length", strconv.Itoa(len(p.Data)))
	s.W.WriteHeader(http.StatusOK)
	if _, err := s.W.Write(p.Data); err != nil {
		return "", fmt.Errorf("write response: %w", err)
	}
	return p.Filename, nil
}

// WriterSink copies the raw payload to W, e.g. stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Save(ctx context.Context, p *export.Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := s.W.Write(p.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", p.Filename, err)
	}
	return p.Filename, nil
}
