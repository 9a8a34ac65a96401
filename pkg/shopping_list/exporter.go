package shopping_list

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klokku/mealplanner/internal/config"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyTarget = errors.New("target name is empty")
var ErrUnknownExporter = errors.New("unknown export driver")

// Exporter writes a rendered shopping list under a user supplied name and
// returns where it ended up.
type Exporter interface {
	Export(ctx context.Context, target string, content []byte) (string, error)
}

// NewExporter picks the exporter configured by cfg.Driver.
func NewExporter(ctx context.Context, cfg config.Export) (Exporter, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "fs", "file":
		return &FileExporter{Dir: cfg.Dir}, nil
	case "s3":
		return NewS3Exporter(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.Driver)
	}
}

// FileExporter writes files to the local filesystem. Relative targets resolve against Dir.
type FileExporter struct {
	Dir string
}

func (e *FileExporter) Export(ctx context.Context, target string, content []byte) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrEmptyTarget
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := target
	if !filepath.IsAbs(path) {
		dir := e.Dir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, target)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("wrote %d bytes to %s", len(content), path)
	return path, nil
}
