// Package repotest holds behaviour tests shared by every repository.Inventory implementation.
package repotest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/repository"
	"github.com/osse101/casevault/internal/testing/fixtures"
)

// RunInventoryContract exercises repo against the repository.Inventory contract.
// Every subtest uses a fresh owner id so one repo can serve them all.
func RunInventoryContract(t *testing.T, repo repository.Inventory) {
	ctx := context.Background()

	t.Run("missing owner is not found", func(t *testing.T) {
		_, err := repo.GetInventory(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("create then update bumps version", func(t *testing.T) {
		owner := uuid.NewString()
		snap := domain.InventorySnapshot{
			Capacity: 8,
			Items: []domain.ItemInstance{
				{ItemID: fixtures.RedlineAK, Wear: domain.Ptr(0.123456), Seed: domain.Ptr(661), StatTrak: domain.Ptr(0),
					Nametag: domain.Ptr("Fire"), Stickers: []*domain.AppliedSticker{nil, {ID: fixtures.StickerCrown, Wear: domain.Ptr(0.5)}},
					EquippedT: true},
			},
		}

		v1, err := repo.SaveInventory(ctx, owner, snap)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v1)

		got, err := repo.GetInventory(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, v1, got.Version)
		assert.Equal(t, 8, got.Capacity)
		assert.Equal(t, snap.Items, got.Items, "attributes round-trip exactly")

		got.Items = got.Items[:0]
		v2, err := repo.SaveInventory(ctx, owner, *got)
		require.NoError(t, err)
		assert.Equal(t, v1+1, v2)

		again, err := repo.GetInventory(ctx, owner)
		require.NoError(t, err)
		assert.Empty(t, again.Items)
		assert.NotNil(t, again.Items)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		owner := uuid.NewString()
		_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		require.NoError(t, err)

		_, err = repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		assert.ErrorIs(t, err, repository.ErrVersionConflict, "second create")

		_, err = repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4, Version: 7})
		assert.ErrorIs(t, err, repository.ErrVersionConflict, "wrong version")

		_, err = repo.SaveInventory(ctx, uuid.NewString(), domain.InventorySnapshot{Capacity: 4, Version: 1})
		assert.ErrorIs(t, err, repository.ErrVersionConflict, "update of missing owner")
	})

	t.Run("concurrent writers of one version", func(t *testing.T) {
		owner := uuid.NewString()
		_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		require.NoError(t, err)

		const writers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4, Version: 1})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case assert.ErrorIs(t, err, repository.ErrVersionConflict):
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, writers-1, conflicts)
	})

	t.Run("transaction commits inventory and unlock together", func(t *testing.T) {
		owner := uuid.NewString()
		_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		require.NoError(t, err)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)

		snap, err := tx.GetInventory(ctx, owner)
		require.NoError(t, err)
		snap.Items = append(snap.Items, domain.ItemInstance{ItemID: fixtures.SportGlovesVice, Seed: domain.Ptr(3), Wear: domain.Ptr(0.2)})
		_, err = tx.SaveInventory(ctx, owner, *snap)
		require.NoError(t, err)

		require.NoError(t, tx.RecordUnlock(ctx, &domain.UnlockRecord{
			OwnerID:     owner,
			ContainerID: fixtures.WeaponCase,
			Result: domain.UnlockResult{
				ItemID:               fixtures.SportGlovesVice,
				Special:              true,
				RarityForSoundEffect: "ancient",
				Attributes:           domain.UnlockAttributes{Seed: domain.Ptr(3), Wear: domain.Ptr(0.2)},
			},
		}))
		require.NoError(t, tx.Commit(ctx))

		stored, err := repo.GetInventory(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Version)
		require.Len(t, stored.Items, 1)

		records, err := repo.ListUnlocks(ctx, owner, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, fixtures.WeaponCase, records[0].ContainerID)
		assert.Equal(t, owner, records[0].OwnerID)
		assert.True(t, records[0].Result.Special)
		assert.NotZero(t, records[0].ID)
		assert.False(t, records[0].CreatedAt.IsZero())
	})

	t.Run("rolled back transaction leaves no trace", func(t *testing.T) {
		owner := uuid.NewString()
		_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		require.NoError(t, err)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		_, err = tx.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4, Version: 1,
			Items: []domain.ItemInstance{{ItemID: fixtures.CaseKey}}})
		require.NoError(t, err)
		require.NoError(t, tx.RecordUnlock(ctx, &domain.UnlockRecord{OwnerID: owner, ContainerID: fixtures.WeaponCase,
			Result: domain.UnlockResult{ItemID: fixtures.SafariMeshAK}}))
		require.NoError(t, tx.Rollback(ctx))

		stored, err := repo.GetInventory(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Version)
		assert.Empty(t, stored.Items)

		records, err := repo.ListUnlocks(ctx, owner, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("unlocks list newest first with limit", func(t *testing.T) {
		owner := uuid.NewString()
		for _, item := range []int{fixtures.SafariMeshAK, fixtures.RedlineAK, fixtures.DragonLoreAWP} {
			tx, err := repo.BeginTx(ctx)
			require.NoError(t, err)
			require.NoError(t, tx.RecordUnlock(ctx, &domain.UnlockRecord{OwnerID: owner, ContainerID: fixtures.WeaponCase,
				Result: domain.UnlockResult{ItemID: item}}))
			require.NoError(t, tx.Commit(ctx))
		}

		records, err := repo.ListUnlocks(ctx, owner, 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, fixtures.DragonLoreAWP, records[0].Result.ItemID)
		assert.Equal(t, fixtures.RedlineAK, records[1].Result.ItemID)
	})

	t.Run("delete", func(t *testing.T) {
		owner := uuid.NewString()
		_, err := repo.SaveInventory(ctx, owner, domain.InventorySnapshot{Capacity: 4})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteInventory(ctx, owner))
		_, err = repo.GetInventory(ctx, owner)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, repo.DeleteInventory(ctx, owner), "deleting twice is fine")
	})
}
