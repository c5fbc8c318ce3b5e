package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makebuild-code/slidenav/pkg/domain"
)

// RunPositionStoreContract runs a suite of tests to verify that a
// PositionStore implementation adheres to the defined interface contract.
func RunPositionStoreContract(t *testing.T, store PositionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		pos := domain.NewPosition(0)
		pos.CurrentIndex = 2
		pos.MaxVisitedIndex = 3
		pos.History = append(pos.History, 1, 3, 2)

		err := store.Save(ctx, sessionID, pos)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, pos.CurrentIndex, loaded.CurrentIndex)
		assert.Equal(t, pos.MaxVisitedIndex, loaded.MaxVisitedIndex)
		assert.Equal(t, pos.History, loaded.History)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		pos := domain.NewPosition(1)
		require.NoError(t, store.Save(ctx, sessionID, pos))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.History = append(loaded.History, 99)

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, again.History, "mutating a loaded position must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewPosition(0)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewPosition(0))
		_ = store.Save(ctx, id2, domain.NewPosition(0))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
