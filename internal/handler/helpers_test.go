package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/concurrency"
	"github.com/osse101/casevault/internal/database/memory"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/testing/fixtures"
	"github.com/osse101/casevault/internal/utils"
	"github.com/osse101/casevault/internal/vault"
)

// MockVaultService mocks vault.Service
type MockVaultService struct {
	mock.Mock
}

func (m *MockVaultService) Get(ctx context.Context, ownerID string) (*vault.View, error) {
	args := m.Called(ctx, ownerID)
	view, _ := args.Get(0).(*vault.View)
	return view, args.Error(1)
}

func (m *MockVaultService) Add(ctx context.Context, ownerID string, inst domain.ItemInstance) (*vault.View, error) {
	args := m.Called(ctx, ownerID, inst)
	view, _ := args.Get(0).(*vault.View)
	return view, args.Error(1)
}

func (m *MockVaultService) Remove(ctx context.Context, ownerID string, index int) (*vault.View, error) {
	args := m.Called(ctx, ownerID, index)
	view, _ := args.Get(0).(*vault.View)
	return view, args.Error(1)
}

func (m *MockVaultService) Equip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*vault.View, error) {
	args := m.Called(ctx, ownerID, index, slot)
	view, _ := args.Get(0).(*vault.View)
	return view, args.Error(1)
}

func (m *MockVaultService) Unequip(ctx context.Context, ownerID string, index int, slot domain.EquipSlot) (*vault.View, error) {
	args := m.Called(ctx, ownerID, index, slot)
	view, _ := args.Get(0).(*vault.View)
	return view, args.Error(1)
}

func (m *MockVaultService) OpenContainer(ctx context.Context, ownerID string, index int) (*vault.OpenResult, error) {
	args := m.Called(ctx, ownerID, index)
	res, _ := args.Get(0).(*vault.OpenResult)
	return res, args.Error(1)
}

func (m *MockVaultService) Unlocks(ctx context.Context, ownerID string, limit int) ([]domain.UnlockRecord, error) {
	args := m.Called(ctx, ownerID, limit)
	records, _ := args.Get(0).([]domain.UnlockRecord)
	return records, args.Error(1)
}

func (m *MockVaultService) Delete(ctx context.Context, ownerID string) error {
	return m.Called(ctx, ownerID).Error(0)
}

// testEnv wires real services over the fixture catalog
type testEnv struct {
	catalog   *catalog.Catalog
	presenter *Presenter
	unlocker  lootbox.Service
	vault     vault.Service
}

func newTestEnv(t *testing.T, src utils.RandomSource) *testEnv {
	t.Helper()
	cat := fixtures.Catalog(t)
	loc, err := catalog.NewLocalizer(cat, map[string]map[string]catalog.Localization{
		"en": {"900": {Desc: "The first case"}},
		"de": {"900": {Name: "Waffenkiste"}},
	})
	require.NoError(t, err)

	if src == nil {
		src = utils.NewRandomSource(7)
	}
	checker := attribute.NewChecker(cat)
	unlocker, err := lootbox.NewService(cat, checker, lootbox.WithRandomSource(src))
	require.NoError(t, err)

	return &testEnv{
		catalog:   cat,
		presenter: NewPresenter(loc, fixtures.ImageBaseURL, "en"),
		unlocker:  unlocker,
		vault:     vault.NewService(memory.NewInventoryRepository(), cat, checker, unlocker, concurrency.NewLockManager()),
	}
}

// router mounts the handlers on the same patterns the server uses
func (e *testEnv) router(svc vault.Service) http.Handler {
	if svc == nil {
		svc = e.vault
	}
	r := chi.NewRouter()
	r.Get("/catalog/{id}", HandleGetCatalogItem(e.catalog, e.presenter))
	r.Route("/containers/{id}", func(r chi.Router) {
		r.Get("/contents", HandleContainerContents(e.unlocker, e.presenter))
		r.Get("/odds", HandleContainerOdds(e.unlocker))
		r.Post("/unlock", HandleUnlock(e.unlocker, e.catalog, e.presenter))
		r.Post("/verify", HandleVerifyUnlock(e.unlocker))
	})
	r.Route("/inventory/{owner}", func(r chi.Router) {
		r.Get("/", HandleGetInventory(svc, e.presenter))
		r.Delete("/", HandleDeleteInventory(svc))
		r.Get("/unlocks", HandleListUnlocks(svc))
		r.Post("/items", HandleAddItem(svc, e.presenter))
		r.Delete("/items/{index}", HandleRemoveItem(svc, e.presenter))
		r.Post("/items/{index}/equip", HandleEquipItem(svc, e.presenter))
		r.Post("/items/{index}/unequip", HandleUnequipItem(svc, e.presenter))
		r.Post("/items/{index}/open", HandleOpenContainer(svc, e.catalog, e.presenter))
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
