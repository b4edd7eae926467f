package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
	"github.com/tair/cocktail-catalog/internal/catalog/repository"
	"github.com/tair/cocktail-catalog/internal/catalog/usecase/command"
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

func seed(t *testing.T, store domain.Store, name, category string, alcoholic bool, lines ...domain.CompositionLine) *domain.Cocktail {
	t.Helper()
	cocktail, err := command.NewCreateCocktailHandler(store, domain.NopPublisher{}).Handle(context.Background(), command.CreateCocktailCommand{
		Name:      name,
		Category:  category,
		Alcoholic: &alcoholic,
		Lines:     lines,
	})
	require.NoError(t, err)
	return cocktail
}

func line(name, quantity string) domain.CompositionLine {
	return domain.CompositionLine{Name: name, Quantity: quantity}
}

type memoryCache struct {
	mu    sync.Mutex
	items map[uint]domain.Cocktail
	hits  int
	sets  int
}

func (c *memoryCache) Get(_ context.Context, id uint) (*domain.Cocktail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cocktail, ok := c.items[id]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	c.hits++
	return &cocktail, nil
}

func (c *memoryCache) Set(_ context.Context, cocktail *domain.Cocktail) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[uint]domain.Cocktail)
	}
	c.items[cocktail.ID] = *cocktail
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, ids ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.items, id)
	}
	return nil
}

func TestGetCocktailReadsThroughCache(t *testing.T) {
	store := newTestStore(t)
	cache := &memoryCache{}
	handler := NewGetCocktailHandler(store, cache)
	ctx := context.Background()

	created := seed(t, store, "Negroni", "Classici", true, line("Gin", "3 cl"), line("Campari", "3 cl"), line("Vermouth", "3 cl"))

	first, err := handler.Handle(ctx, GetCocktailQuery{ID: created.ID})
	require.NoError(t, err)
	require.Len(t, first.Ingredients, 3)
	assert.Equal(t, "Gin", first.Ingredients[0].Ingredient.Name)
	assert.Equal(t, 1, cache.sets)
	assert.Zero(t, cache.hits)

	second, err := handler.Handle(ctx, GetCocktailQuery{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, cache.hits)

	_, err = handler.Handle(ctx, GetCocktailQuery{ID: 404})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = handler.Handle(ctx, GetCocktailQuery{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGetCocktailLoadSurvivesCancelledCaller(t *testing.T) {
	store := newTestStore(t)
	cache := &memoryCache{}
	handler := NewGetCocktailHandler(store, cache)

	created := seed(t, store, "Gimlet", "Classic", true, line("Gin", "6 cl"), line("Lime Cordial", "2 cl"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cocktail, err := handler.Handle(ctx, GetCocktailQuery{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, "Gimlet", cocktail.Name)
	assert.Len(t, cocktail.Ingredients, 2)
	assert.Equal(t, 1, cache.sets)
}

func TestListCocktailsPaginatesAndFilters(t *testing.T) {
	store := newTestStore(t)
	handler := NewListCocktailsHandler(store)
	ctx := context.Background()

	seed(t, store, "Mojito", "Tropicali", true, line("Rum", "5 cl"))
	seed(t, store, "Daiquiri", "Tropicali", true, line("Rum", "6 cl"))
	seed(t, store, "Shirley Temple", "Analcolici", false, line("Ginger Ale", "20 cl"))

	page, err := handler.Handle(ctx, ListCocktailsQuery{Page: domain.PageRequest{Size: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Daiquiri", page.Content[0].Name)
	assert.Equal(t, "Mojito", page.Content[1].Name)

	page, err = handler.Handle(ctx, ListCocktailsQuery{Page: domain.PageRequest{Page: 1, Size: 2}})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Shirley Temple", page.Content[0].Name)

	page, err = handler.Handle(ctx, ListCocktailsQuery{
		Filter: domain.CocktailFilter{Category: "Tropicali"},
		Page:   domain.PageRequest{SortBy: "name", SortDir: "DESC"},
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Mojito", page.Content[0].Name)
	assert.Equal(t, domain.DefaultPageSize, page.Size)

	page, err = handler.Handle(ctx, ListCocktailsQuery{Filter: domain.CocktailFilter{Name: "TEMP"}})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)

	_, err = handler.Handle(ctx, ListCocktailsQuery{Page: domain.PageRequest{SortBy: "password"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = handler.Handle(ctx, ListCocktailsQuery{Page: domain.PageRequest{Page: -1}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	nonAlcoholic := false
	all, err := NewFindCocktailsHandler(store).Handle(ctx, FindCocktailsQuery{Filter: domain.CocktailFilter{Alcoholic: &nonAlcoholic}})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Shirley Temple", all[0].Name)
}

func TestIDGapsReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	handler := NewIDGapsHandler(store)

	empty, err := handler.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(1), empty.NextAvailableID)
	assert.Empty(t, empty.MissingIDs)

	var ids []uint
	for i := 1; i <= 7; i++ {
		ids = append(ids, seed(t, store, fmt.Sprintf("Cocktail %d", i), "", true, line("Acqua", "1 cl")).ID)
	}
	remove := command.NewDeleteCocktailHandler(store, domain.NopPublisher{}, domain.NopCache{})
	for _, i := range []int{2, 4, 5} {
		require.NoError(t, remove.Handle(ctx, command.DeleteCocktailCommand{ID: ids[i]}))
	}

	report, err := handler.Handle(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[0], ids[1], ids[3], ids[6]}, report.ExistingIDs)
	assert.Equal(t, []uint{ids[2], ids[4], ids[5]}, report.MissingIDs)
	assert.Equal(t, 4, report.TotalCocktails)
	assert.Equal(t, ids[6], report.MaxID)
	assert.Equal(t, ids[6]+1, report.NextAvailableID)
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed(t, store, "Mojito", "Tropicali", true, line("Rum", "5 cl"), line("Menta", "6 foglie"))
	seed(t, store, "Pina Colada", "Tropicali", true, line("Rum", "5 cl"), line("Ananas", "10 cl"))
	last := seed(t, store, "Virgin Mary", "Analcolici", false, line("Pomodoro", "12 cl"))

	stats, err := NewGetStatsHandler(store).Handle(ctx, GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalCocktails)
	assert.Equal(t, int64(2), stats.AlcoholicCocktails)
	assert.Equal(t, int64(1), stats.NonAlcoholicCocktails)
	assert.Equal(t, int64(4), stats.TotalIngredients)
	require.NotEmpty(t, stats.TopCategories)
	assert.Equal(t, domain.CategoryCount{Category: "Tropicali", Count: 2}, stats.TopCategories[0])
	require.NotNil(t, stats.LastCreated)
	assert.Equal(t, last.ID, stats.LastCreated.ID)
	assert.NotNil(t, stats.LastUpdated)

	empty, err := NewGetStatsHandler(newTestStore(t)).Handle(ctx, GetStatsQuery{})
	require.NoError(t, err)
	assert.Zero(t, empty.TotalCocktails)
	assert.Nil(t, empty.LastCreated)
	assert.NotNil(t, empty.TopCategories)
}

func TestIngredientQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	create := command.NewCreateIngredientHandler(store, domain.NopPublisher{})

	for _, cmd := range []command.CreateIngredientCommand{
		{Name: "Lime", Category: "Frutta"},
		{Name: "Limone", Category: "Frutta"},
		{Name: "Vodka", Category: "Distillati"},
		{Name: "Zucchero"},
	} {
		_, err := create.Handle(ctx, cmd)
		require.NoError(t, err)
	}

	handler := NewIngredientsHandler(store)

	found, err := handler.List(ctx, ListIngredientsQuery{Name: "LIM"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.TotalElements)

	all, err := handler.List(ctx, ListIngredientsQuery{Page: domain.PageRequest{Size: 3, SortBy: "name", SortDir: "desc"}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.TotalElements)
	require.Len(t, all.Content, 3)
	assert.Equal(t, "Zucchero", all.Content[0].Name)

	groups, err := handler.GroupedByCategory(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 3)
	require.Len(t, groups["Frutta"], 2)
	assert.Equal(t, "Lime", groups["Frutta"][0].Name)
	assert.Len(t, groups[domain.DefaultIngredientCategory], 1)

	got, err := handler.Get(ctx, all.Content[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Zucchero", got.Name)

	_, err = handler.Get(ctx, 9999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFavoriteQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	spritz := seed(t, store, "Spritz", "Aperitivi", true, line("Aperol", "6 cl"))
	hugo := seed(t, store, "Hugo", "Aperitivi", true, line("Sambuco", "2 cl"))
	seed(t, store, "Americano", "Aperitivi", true, line("Campari", "3 cl"))

	add := command.NewAddFavoriteHandler(store, domain.NopPublisher{})
	for _, pair := range []command.FavoriteCommand{
		{UserID: "alice", CocktailID: spritz.ID},
		{UserID: "alice", CocktailID: hugo.ID},
		{UserID: "bob", CocktailID: hugo.ID},
	} {
		_, err := add.Handle(ctx, pair)
		require.NoError(t, err)
	}

	orange, err := command.NewCreateColorHandler(store).Handle(ctx, command.CreateColorCommand{Name: "Arancione", HexCode: "#FFA500"})
	require.NoError(t, err)
	_, err = command.NewSetFavoriteColorHandler(store).Handle(ctx, command.SetFavoriteColorCommand{
		UserID: "alice", CocktailID: spritz.ID, Color: domain.ColorRef{ID: &orange.ID},
	})
	require.NoError(t, err)

	handler := NewFavoritesHandler(store)

	list, err := handler.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, spritz.ID, list[0].CocktailID)
	require.NotNil(t, list[0].Color)
	assert.Equal(t, "Arancione", list[0].Color.Name)
	require.NotNil(t, list[0].Cocktail)
	require.Len(t, list[0].Cocktail.Ingredients, 1)
	assert.Nil(t, list[1].Color)

	empty, err := handler.List(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	yes, err := handler.IsFavorite(ctx, "bob", hugo.ID)
	require.NoError(t, err)
	assert.True(t, yes)
	no, err := handler.IsFavorite(ctx, "bob", spritz.ID)
	require.NoError(t, err)
	assert.False(t, no)

	count, err := handler.Count(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	ranking, err := handler.MostFavorited(ctx, 0)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, domain.FavoriteCount{CocktailID: hugo.ID, Count: 2}, ranking[0])
	assert.Equal(t, domain.FavoriteCount{CocktailID: spritz.ID, Count: 1}, ranking[1])

	annotated, err := handler.CocktailsWithFavorites(ctx, CocktailsWithFavoritesQuery{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, annotated.Content, 3)
	byName := make(map[string]domain.CocktailWithFavorite)
	for _, c := range annotated.Content {
		byName[c.Name] = c
	}
	assert.False(t, byName["Americano"].IsFavorite)
	assert.True(t, byName["Hugo"].IsFavorite)
	assert.Nil(t, byName["Hugo"].FavoriteColor)
	require.NotNil(t, byName["Spritz"].FavoriteColor)
	assert.Equal(t, "#FFA500", byName["Spritz"].FavoriteColor.HexCode)

	_, err = handler.Count(ctx, " ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestColorQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	handler := NewColorsHandler(store)

	empty, err := handler.All(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)

	create := command.NewCreateColorHandler(store)
	_, err = create.Handle(ctx, command.CreateColorCommand{Name: "Viola", HexCode: "#800080"})
	require.NoError(t, err)
	blue, err := create.Handle(ctx, command.CreateColorCommand{Name: "Azzurro", HexCode: "#007FFF"})
	require.NoError(t, err)

	all, err := handler.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Azzurro", all[0].Name)

	got, err := handler.Get(ctx, blue.ID)
	require.NoError(t, err)
	assert.Equal(t, "#007FFF", got.HexCode)

	_, err = handler.Get(ctx, 77)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
