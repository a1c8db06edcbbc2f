package storage

import (
	"errors"
	"fmt"
)

const (
	// RunDir is the table holding computed projection runs.
	RunDir = "runs"
)

var (
	// DefaultDir is the root of the file based storage implementations.
	DefaultDir = "file-storage"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

// Key is the storage key for a general implementation.
type Key struct {
	Hash  int64  `json:"hash"`
	Set   string `json:"set"`
	Label string `json:"label"`
}

// Path encodes the key into a file name.
func (k Key) Path() string {
	return fmt.Sprintf("%s_%v_%s", k.Set, k.Hash, k.Label)
}

// Persistence allows storing and loading values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
