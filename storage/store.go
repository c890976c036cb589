// Package storage abstracts where uploaded work files are kept
package storage

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Store holds uploaded files under generated keys. Implementations are
// selected with the storage.type config value.
type Store interface {
	// Save persists the file under key. Keys are generated, collisions
	// are not expected.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Remove deletes the stored file. Removing a missing file is not an
	// error, metadata deletion must be able to proceed regardless.
	Remove(ctx context.Context, key string) error

	// Serve answers the request with the file contents, either by
	// streaming it or by redirecting to a download URL.
	Serve(c *gin.Context, key string) error
}

func New() (Store, error) {
	switch viper.GetString("storage.type") {
	case "s3":
		return NewS3()
	case "local":
		return NewLocal(viper.GetString("storage.local.path"))
	default:
		return nil, errors.New("invalid storage type provided")
	}
}
