package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSpots_Pagination(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "Demo", "Host", "host@example.com")
	for i := 0; i < 25; i++ {
		seedSpot(t, db, owner.ID, fmt.Sprintf("Spot %02d", i))
	}

	t.Run("first page", func(t *testing.T) {
		spots, err := db.ListSpots(ctx, 20, 0)
		require.NoError(t, err)
		require.Len(t, spots, 20)
		assert.Equal(t, "Spot 00", spots[0].Name)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		spots, err := db.ListSpots(ctx, 20, 20)
		require.NoError(t, err)
		require.Len(t, spots, 5)
		assert.Equal(t, "Spot 20", spots[0].Name)
	})

	t.Run("window past the end is empty", func(t *testing.T) {
		spots, err := db.ListSpots(ctx, 20, 100)
		require.NoError(t, err)
		assert.Empty(t, spots)
	})
}

func TestListSpotsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := seedUser(t, db, "Alice", "Host", "alice@example.com")
	bob := seedUser(t, db, "Bob", "Host", "bob@example.com")
	seedSpot(t, db, alice.ID, "Alice 1")
	seedSpot(t, db, bob.ID, "Bob 1")
	seedSpot(t, db, alice.ID, "Alice 2")

	spots, err := db.ListSpotsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "Alice 1", spots[0].Name)
	assert.Equal(t, "Alice 2", spots[1].Name)
}

func TestSpotCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := seedUser(t, db, "Demo", "Host", "host@example.com")
	spot := seedSpot(t, db, owner.ID, "Original")

	t.Run("get", func(t *testing.T) {
		got, err := db.GetSpot(ctx, spot.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", got.Name)
		assert.Equal(t, owner.ID, got.OwnerID)
	})

	t.Run("update", func(t *testing.T) {
		spot.Name = "Renamed"
		spot.Price = 456
		require.NoError(t, db.UpdateSpot(ctx, spot))

		got, err := db.GetSpot(ctx, spot.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, int64(456), got.Price)
	})

	t.Run("delete then not found", func(t *testing.T) {
		require.NoError(t, db.DeleteSpot(ctx, spot.ID))
		_, err := db.GetSpot(ctx, spot.ID)
		assert.ErrorIs(t, err, ErrSpotNotFound)
		assert.ErrorIs(t, db.DeleteSpot(ctx, spot.ID), ErrSpotNotFound)
	})
}
