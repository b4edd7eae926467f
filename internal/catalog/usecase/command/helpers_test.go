package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/repository"
	"github.com/tair/cocktail-catalog/pkg/database"
)

func newTestStore(t *testing.T) domain.Store {
	t.Helper()

	db, err := database.NewGormConnection(database.Config{
		Driver:   database.DriverSQLite,
		Path:     fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return repository.NewGormStore(db)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.CatalogEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event domain.CatalogEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingCache struct {
	domain.NopCache
	mu      sync.Mutex
	evicted []uint
}

func (c *recordingCache) Invalidate(_ context.Context, ids ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evicted = append(c.evicted, ids...)
	return nil
}

// flakyStore fails the n-th composition upsert, counted across transactions.
type flakyStore struct {
	domain.Store
	calls  *int
	failOn int
}

func (s flakyStore) Compositions() domain.CompositionRepository {
	return flakyCompositions{CompositionRepository: s.Store.Compositions(), calls: s.calls, failOn: s.failOn}
}

func (s flakyStore) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.Store.Atomic(ctx, func(tx domain.Store) error {
		return fn(flakyStore{Store: tx, calls: s.calls, failOn: s.failOn})
	})
}

type flakyCompositions struct {
	domain.CompositionRepository
	calls  *int
	failOn int
}

var errDiskFull = errors.New("disk full")

func (c flakyCompositions) Upsert(ctx context.Context, entry *domain.CompositionEntry) error {
	*c.calls++
	if *c.calls == c.failOn {
		return errDiskFull
	}
	return c.CompositionRepository.Upsert(ctx, entry)
}

func createCocktail(t *testing.T, store domain.Store, name string, lines ...domain.CompositionLine) *domain.Cocktail {
	t.Helper()
	cocktail, err := NewCreateCocktailHandler(store, domain.NopPublisher{}).Handle(context.Background(), CreateCocktailCommand{
		Name:  name,
		Lines: lines,
	})
	require.NoError(t, err)
	return cocktail
}

func line(name, quantity string) domain.CompositionLine {
	return domain.CompositionLine{Name: name, Quantity: quantity}
}

func ptr[T any](v T) *T {
	return &v
}

// staleLookupStore answers the next FindByName for name with NotFound even
// when the row exists, as if another writer committed it just after the read.
type staleLookupStore struct {
	domain.Store
	lookup *staleLookup
}

type staleLookup struct {
	mu     sync.Mutex
	name   string
	misses int
}

func (l *staleLookup) miss(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.misses > 0 && strings.EqualFold(strings.TrimSpace(name), l.name) {
		l.misses--
		return true
	}
	return false
}

func newStaleLookupStore(store domain.Store, name string) staleLookupStore {
	return staleLookupStore{Store: store, lookup: &staleLookup{name: name, misses: 1}}
}

func (s staleLookupStore) Ingredients() domain.IngredientRepository {
	return staleIngredients{IngredientRepository: s.Store.Ingredients(), lookup: s.lookup}
}

func (s staleLookupStore) Atomic(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.Store.Atomic(ctx, func(tx domain.Store) error {
		return fn(staleLookupStore{Store: tx, lookup: s.lookup})
	})
}

type staleIngredients struct {
	domain.IngredientRepository
	lookup *staleLookup
}

func (r staleIngredients) FindByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	if r.lookup.miss(name) {
		return nil, domain.NotFoundf("ingredient %q", name)
	}
	return r.IngredientRepository.FindByName(ctx, name)
}
