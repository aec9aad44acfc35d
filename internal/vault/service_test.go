package vault

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/concurrency"
	"github.com/osse101/casevault/internal/database/memory"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/repository"
	"github.com/osse101/casevault/internal/testing/fixtures"
	"github.com/osse101/casevault/internal/testing/leaktest"
	"github.com/osse101/casevault/internal/utils"
)

type testEnv struct {
	svc  Service
	repo *memory.InventoryRepository
}

func newVaultService(t *testing.T, repo repository.Inventory, src utils.RandomSource, opts ...Option) Service {
	t.Helper()
	cat := fixtures.Catalog(t)
	checker := attribute.NewChecker(cat)
	if src == nil {
		src = utils.NewRandomSource(99)
	}
	unlocker, err := lootbox.NewService(cat, checker, lootbox.WithRandomSource(src))
	require.NoError(t, err)
	return NewService(repo, cat, checker, unlocker, concurrency.NewLockManager(), opts...)
}

func setup(t *testing.T, opts ...Option) testEnv {
	t.Helper()
	repo := memory.NewInventoryRepository()
	return testEnv{svc: newVaultService(t, repo, nil, opts...), repo: repo}
}

// conflictRepo fails the first n inventory saves with a version conflict
type conflictRepo struct {
	*memory.InventoryRepository
	mu       sync.Mutex
	failures int
}

func (r *conflictRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.InventoryRepository.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &conflictTx{Tx: tx, repo: r}, nil
}

type conflictTx struct {
	repository.Tx
	repo *conflictRepo
}

func (t *conflictTx) SaveInventory(ctx context.Context, ownerID string, snap domain.InventorySnapshot) (int64, error) {
	t.repo.mu.Lock()
	fail := t.repo.failures > 0
	if fail {
		t.repo.failures--
	}
	t.repo.mu.Unlock()
	if fail {
		return 0, repository.ErrVersionConflict
	}
	return t.Tx.SaveInventory(ctx, ownerID, snap)
}

func TestGet_NewOwnerIsEmpty(t *testing.T) {
	env := setup(t, WithCapacity(16))

	view, err := env.svc.Get(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Version)
	assert.Equal(t, 0, view.Inventory.Len())
	assert.Equal(t, 16, view.Inventory.Capacity())
}

func TestInvalidOwner(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.Get(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.svc.Add(ctx, "alice", domain.ItemInstance{ItemID: fixtures.CaseKey})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = env.svc.Unlocks(ctx, "alice", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, env.svc.Delete(ctx, "alice"), domain.ErrInvalidInput)
}

func TestAddRemoveEquip(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	owner := uuid.NewString()

	view, err := env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.SafariMeshAK, Wear: domain.Ptr(0.2)})
	require.NoError(t, err)
	assert.True(t, view.Changed)
	assert.Equal(t, int64(1), view.Version)

	view, err = env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.RedlineAK, Wear: domain.Ptr(0.05)})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.Nil(t, view)

	view, err = env.svc.Equip(ctx, owner, 0, domain.EquipSlotT)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.Version)
	inst, _ := view.Inventory.At(0)
	assert.True(t, inst.EquippedT)

	view, err = env.svc.Equip(ctx, owner, 0, domain.EquipSlotCT)
	require.NoError(t, err)
	assert.False(t, view.Changed, "safari mesh is T only")
	assert.Equal(t, int64(2), view.Version)

	view, err = env.svc.Unequip(ctx, owner, 0, domain.EquipSlotT)
	require.NoError(t, err)
	assert.Equal(t, int64(3), view.Version)

	view, err = env.svc.Remove(ctx, owner, 4)
	require.NoError(t, err)
	assert.False(t, view.Changed)

	view, err = env.svc.Remove(ctx, owner, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Inventory.Len())

	stored, err := env.repo.GetInventory(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, view.Version, stored.Version)
	assert.Empty(t, stored.Items)
}

func TestMutate_RetriesOnConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds within the retry budget", func(t *testing.T) {
		repo := &conflictRepo{InventoryRepository: memory.NewInventoryRepository(), failures: MaxSaveAttempts - 1}
		svc := newVaultService(t, repo, nil)

		view, err := svc.Add(ctx, uuid.NewString(), domain.ItemInstance{ItemID: fixtures.GraffitiSmile})
		require.NoError(t, err)
		assert.Equal(t, int64(1), view.Version)
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		repo := &conflictRepo{InventoryRepository: memory.NewInventoryRepository(), failures: MaxSaveAttempts}
		svc := newVaultService(t, repo, nil)
		owner := uuid.NewString()

		_, err := svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.GraffitiSmile})
		assert.ErrorIs(t, err, repository.ErrVersionConflict)
		assert.ErrorIs(t, err, domain.ErrConflict)

		_, err = repo.GetInventory(ctx, owner)
		assert.ErrorIs(t, err, domain.ErrNotFound, "nothing was stored")
	})

	t.Run("reloads after an external writer", func(t *testing.T) {
		env := setup(t)
		owner := uuid.NewString()

		_, err := env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.GraffitiSmile})
		require.NoError(t, err)

		// another process stores version 2 behind the cache's back
		_, err = env.repo.SaveInventory(ctx, owner, domain.InventorySnapshot{
			Capacity: domain.DefaultInventoryCapacity,
			Version:  1,
			Items:    []domain.ItemInstance{{ItemID: fixtures.CoinService}, {ItemID: fixtures.GraffitiSmile}},
		})
		require.NoError(t, err)

		view, err := env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.CaseKey})
		require.NoError(t, err)
		assert.Equal(t, int64(3), view.Version)
		assert.Equal(t, 3, view.Inventory.Len())
	})
}

func TestConcurrentAdds(t *testing.T) {
	env := setup(t)
	leaktest.Verify(t)
	ctx := context.Background()
	owner := uuid.NewString()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			_, err := env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.P250Shared, Seed: domain.Ptr(seed + 1)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	view, err := env.svc.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, writers, view.Inventory.Len())
	assert.Equal(t, int64(writers), view.Version)
}

func TestOpenContainer(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewInventoryRepository()
	// tier roll lands on the special pool, second special is the gloves
	src := &utils.SequenceSource{Floats: []float64{1.0, 0.3}, Ints: []int{1, 99}}
	svc := newVaultService(t, repo, src)
	owner := uuid.NewString()

	_, err := svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.WeaponCase})
	require.NoError(t, err)
	_, err = svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.MusicKitDaniel})
	require.NoError(t, err)

	t.Run("slot is not a container", func(t *testing.T) {
		_, err := svc.OpenContainer(ctx, owner, 0)
		assert.ErrorIs(t, err, domain.ErrNotAContainer)
	})

	t.Run("slot out of range", func(t *testing.T) {
		_, err := svc.OpenContainer(ctx, owner, 7)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("opens and records", func(t *testing.T) {
		res, err := svc.OpenContainer(ctx, owner, 1)
		require.NoError(t, err)

		assert.Equal(t, fixtures.SportGlovesVice, res.Unlock.ItemID)
		assert.True(t, res.Unlock.Special)
		assert.Equal(t, 2, res.Inventory.Len())

		first, _ := res.Inventory.At(0)
		assert.Equal(t, fixtures.SportGlovesVice, first.ItemID)
		assert.Equal(t, 100, *first.Seed)
		second, _ := res.Inventory.At(1)
		assert.Equal(t, fixtures.MusicKitDaniel, second.ItemID)

		records, err := svc.Unlocks(ctx, owner, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, fixtures.WeaponCase, records[0].ContainerID)
		assert.Equal(t, *res.Unlock, records[0].Result)
	})
}

func TestDelete(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	owner := uuid.NewString()

	_, err := env.svc.Add(ctx, owner, domain.ItemInstance{ItemID: fixtures.CaseKey})
	require.NoError(t, err)
	require.NoError(t, env.svc.Delete(ctx, owner))

	view, err := env.svc.Get(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Version)
	assert.Equal(t, 0, view.Inventory.Len())
}
