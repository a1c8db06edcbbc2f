package json

import (
	"testing"

	"github.com/drakos74/free-draw/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestBlobStorage_StoreLoad(t *testing.T) {
	storage.DefaultDir = t.TempDir()

	blob := NewJsonBlob("runs", "test", false)

	key := storage.Key{Set: "digits", Hash: 42, Label: "basis"}
	value := map[string][]float64{
		"mean": {0.5, 0.25, 0},
	}

	err := blob.Store(key, value)
	assert.NoError(t, err)

	var loaded map[string][]float64
	err = blob.Load(key, &loaded)
	assert.NoError(t, err)
	assert.Equal(t, value, loaded)
}

func TestBlobStorage_LoadMissing(t *testing.T) {
	storage.DefaultDir = t.TempDir()

	blob := NewJsonBlob("runs", "test", false)

	var loaded map[string]interface{}
	err := blob.Load(storage.Key{Set: "digits", Label: "missing"}, &loaded)
	assert.Error(t, err)
	assert.ErrorIs(t, err, storage.NotFoundErr)
}
