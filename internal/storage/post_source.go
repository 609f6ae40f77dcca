// ABOUTME: Interface definition for read-only post sources.
// ABOUTME: Defines the contract for loading the initial post collection.
package storage

import (
	"errors"

	"github.com/2389-research/postboard/internal/models"
)

// ErrNotDir is returned when a seed path exists but is not a directory.
var ErrNotDir = errors.New("seed path is not a directory")

// PostSource loads the initial post collection for a store.
type PostSource interface {
	// ListPosts returns every post the source holds, oldest first.
	ListPosts() ([]models.Post, error)

	// Close releases any resources held by the source.
	Close() error
}

var _ PostSource = (*PostsMDSource)(nil)
