package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Local keeps uploads in a flat directory on disk, keyed by generated
// filename
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory, %w", err)
	}

	return &Local{dir: dir}, nil
}

func (l *Local) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	f, err := os.Create(filepath.Join(l.dir, key))
	if err != nil {
		return fmt.Errorf("failed to create dest file, %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("failed to write dest file, %w", err)
	}

	return nil
}

func (l *Local) Remove(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (l *Local) Serve(c *gin.Context, key string) error {
	p := filepath.Join(l.dir, filepath.Base(key))

	if _, err := os.Stat(p); err != nil {
		return err
	}

	c.File(p)
	return nil
}
