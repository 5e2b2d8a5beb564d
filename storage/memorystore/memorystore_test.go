package memorystore

import (
	"testing"

	"github.com/plumekv/plume/storage"
	"github.com/plumekv/plume/storage/storagetests"
)

func TestMemoryStore(t *testing.T) {
	storagetests.Run(t, func() storage.Store {
		return New()
	})
}
