package lootbox

import (
	"context"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"

	"github.com/osse101/casevault/internal/attribute"
	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/domain"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/metrics"
	"github.com/osse101/casevault/internal/utils"
)

// TierOdds is the disclosed probability of one tier in a container
type TierOdds struct {
	Tier        string  `json:"tier"`
	Probability float64 `json:"probability"`
	Items       []int   `json:"items"`
}

// Service defines the container unlock interface
type Service interface {
	// Unlock opens the container with the given id
	Unlock(ctx context.Context, containerID int) (*domain.UnlockResult, error)
	// UnlockItem opens an already resolved container
	UnlockItem(ctx context.Context, container *domain.CatalogItem) (*domain.UnlockResult, error)
	// ValidateUnlocked re-checks a result submitted by a client
	ValidateUnlocked(ctx context.Context, containerID int, result *domain.UnlockResult) error
	// Contents returns the drawable tiers of a container in ascending order
	Contents(containerID int) ([]TierBucket, error)
	// ListContents lists a container's items by rarity, optionally without specials
	ListContents(containerID int, hideSpecials bool) ([]*domain.CatalogItem, error)
	// Odds discloses the per-tier probabilities of a container
	Odds(containerID int) ([]TierOdds, error)
}

type service struct {
	catalog   catalog.Lookup
	validator attribute.Validator
	rnd       utils.RandomSource
	cacheSize int
	cache     *lru.Cache[int, *oddsTable]
}

// Option configures the service
type Option func(*service)

// WithRandomSource replaces the default random source
func WithRandomSource(src utils.RandomSource) Option {
	return func(s *service) {
		s.rnd = src
	}
}

// WithCacheSize sets how many container odds tables are kept
func WithCacheSize(size int) Option {
	return func(s *service) {
		s.cacheSize = size
	}
}

// NewService creates a new unlock service
func NewService(lookup catalog.Lookup, validator attribute.Validator, opts ...Option) (Service, error) {
	svc := &service{
		catalog:   lookup,
		validator: validator,
		cacheSize: DefaultOddsCacheSize,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.rnd == nil {
		svc.rnd = utils.NewRandomSource(0)
	}

	cache, err := lru.New[int, *oddsTable](svc.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create odds cache: %w", err)
	}
	svc.cache = cache

	return svc, nil
}

// Unlock opens the container with the given id
func (s *service) Unlock(ctx context.Context, containerID int) (*domain.UnlockResult, error) {
	container, err := s.catalog.Get(containerID)
	if err != nil {
		return nil, err
	}
	return s.UnlockItem(ctx, container)
}

// UnlockItem draws one item from the container and synthesizes its attributes
func (s *service) UnlockItem(ctx context.Context, container *domain.CatalogItem) (*domain.UnlockResult, error) {
	table, err := s.table(container)
	if err != nil {
		return nil, err
	}

	result, tier := table.draw(s.rnd)

	metrics.RecordUnlock(tier.String(), result.Special)
	logger.FromContext(ctx).Debug(LogMsgContainerUnlocked,
		LogFieldContainer, container.ID,
		LogFieldItem, result.ItemID,
		LogFieldTier, tier.String(),
		LogFieldSpecial, result.Special)

	return result, nil
}

// ValidateUnlocked checks that result could have come from the container.
// Every failure kind is returned wrapped so callers can tell them apart.
func (s *service) ValidateUnlocked(ctx context.Context, containerID int, result *domain.UnlockResult) error {
	err := s.validateUnlocked(containerID, result)
	if err != nil {
		kind := domain.ErrorKind(err)
		metrics.UnlockVerificationsTotal.WithLabelValues(kind).Inc()
		logger.FromContext(ctx).Warn(LogMsgUnlockRejected,
			LogFieldContainer, containerID,
			LogFieldItem, result.ItemID,
			LogFieldKind, kind,
			LogFieldError, err)
		return err
	}
	metrics.UnlockVerificationsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return nil
}

func (s *service) validateUnlocked(containerID int, result *domain.UnlockResult) error {
	container, err := s.container(containerID)
	if err != nil {
		return err
	}

	if !slices.Contains(container.Contents, result.ItemID) && !slices.Contains(container.Specials, result.ItemID) {
		return fmt.Errorf(ErrFmtForeignItem, domain.ErrForeignItem, result.ItemID, containerID)
	}

	item, err := s.catalog.Get(result.ItemID)
	if err != nil {
		return err
	}

	if err := attribute.ValidateUnlocked(s.validator, &result.Attributes, item); err != nil {
		return fmt.Errorf(ErrFmtUnlockedItem, item.ID, err)
	}
	return nil
}

// Contents returns the drawable tiers of a container
func (s *service) Contents(containerID int) ([]TierBucket, error) {
	container, err := s.container(containerID)
	if err != nil {
		return nil, err
	}
	table, err := s.table(container)
	if err != nil {
		return nil, err
	}
	return slices.Clone(table.Buckets), nil
}

// ListContents returns every contained item sorted by rarity order, unknown rarities first.
// The sort is stable so items of one rarity keep their catalog order.
func (s *service) ListContents(containerID int, hideSpecials bool) ([]*domain.CatalogItem, error) {
	container, err := s.container(containerID)
	if err != nil {
		return nil, err
	}

	ids := slices.Clone(container.Contents)
	if !hideSpecials {
		ids = append(ids, container.Specials...)
	}

	items := make([]*domain.CatalogItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.catalog.Get(id)
		if err != nil {
			return nil, fmt.Errorf(ErrFmtContainedItem, containerID, err)
		}
		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b *domain.CatalogItem) int {
		return a.Rarity.Order() - b.Rarity.Order()
	})
	return items, nil
}

// Odds discloses the normalized probability of each present tier
func (s *service) Odds(containerID int) ([]TierOdds, error) {
	buckets, err := s.Contents(containerID)
	if err != nil {
		return nil, err
	}
	return lo.Map(buckets, func(b TierBucket, _ int) TierOdds {
		return TierOdds{
			Tier:        b.Tier.String(),
			Probability: b.Probability,
			Items: lo.Map(b.Items, func(item *domain.CatalogItem, _ int) int {
				return item.ID
			}),
		}
	}), nil
}

// container resolves id and checks it is unlockable
func (s *service) container(id int) (*domain.CatalogItem, error) {
	item, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}
	if !item.IsContainer() {
		return nil, fmt.Errorf(ErrFmtNotAContainer, domain.ErrNotAContainer, item.ID, item.Type)
	}
	return item, nil
}

// table returns the cached odds table of container, building it on first use
func (s *service) table(container *domain.CatalogItem) (*oddsTable, error) {
	if !container.IsContainer() {
		return nil, fmt.Errorf(ErrFmtNotAContainer, domain.ErrNotAContainer, container.ID, container.Type)
	}

	if table, ok := s.cache.Get(container.ID); ok {
		metrics.RecordCacheLookup(metrics.OddsCacheLookups, true)
		return table, nil
	}
	metrics.RecordCacheLookup(metrics.OddsCacheLookups, false)

	table, err := buildOddsTable(s.catalog, container)
	if err != nil {
		return nil, err
	}
	s.cache.Add(container.ID, table)
	return table, nil
}
