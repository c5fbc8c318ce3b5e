package memory_test

import (
	"testing"

	"github.com/makebuild-code/slidenav/pkg/adapters/memory"
	"github.com/makebuild-code/slidenav/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunPositionStoreContract(t, store)
}
