package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/cocktail-catalog/internal/catalog/domain"
)

func TestAddFavoriteTwiceConflicts(t *testing.T) {
	store := newTestStore(t)
	events := &recordingPublisher{}
	handler := NewAddFavoriteHandler(store, events)
	ctx := context.Background()

	cocktail := createCocktail(t, store, "Spritz", line("Aperol", "6 cl"))
	pair := FavoriteCommand{UserID: "alice", CocktailID: cocktail.ID}

	favorite, err := handler.Handle(ctx, pair)
	require.NoError(t, err)
	assert.Nil(t, favorite.ColorID)
	require.NotNil(t, favorite.Cocktail)
	assert.Equal(t, "Spritz", favorite.Cocktail.Name)

	_, err = handler.Handle(ctx, pair)
	assert.True(t, errors.Is(err, domain.ErrConflict), "got %v", err)

	_, err = handler.Handle(ctx, FavoriteCommand{UserID: "alice", CocktailID: 12345})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = handler.Handle(ctx, FavoriteCommand{UserID: "", CocktailID: cocktail.ID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, []string{domain.EventFavoriteAdded}, events.types())
}

func TestToggleFavorite(t *testing.T) {
	store := newTestStore(t)
	handler := NewToggleFavoriteHandler(store, domain.NopPublisher{})
	ctx := context.Background()

	cocktail := createCocktail(t, store, "Bellini", line("Prosecco", "10 cl"))
	pair := FavoriteCommand{UserID: "bob", CocktailID: cocktail.ID}

	added, err := handler.Handle(ctx, pair)
	require.NoError(t, err)
	assert.True(t, added)
	_, err = store.Favorites().Find(ctx, "bob", cocktail.ID)
	assert.NoError(t, err)

	added, err = handler.Handle(ctx, pair)
	require.NoError(t, err)
	assert.False(t, added)
	_, err = store.Favorites().Find(ctx, "bob", cocktail.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = handler.Handle(ctx, FavoriteCommand{UserID: "bob", CocktailID: 999})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemoveAndClearFavorites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := createCocktail(t, store, "Mimosa", line("Arancia", "7 cl"))
	second := createCocktail(t, store, "Rossini", line("Fragola", "5 cl"))

	adder := NewAddFavoriteHandler(store, domain.NopPublisher{})
	for _, id := range []uint{first.ID, second.ID} {
		_, err := adder.Handle(ctx, FavoriteCommand{UserID: "carol", CocktailID: id})
		require.NoError(t, err)
	}
	_, err := adder.Handle(ctx, FavoriteCommand{UserID: "dave", CocktailID: first.ID})
	require.NoError(t, err)

	remover := NewRemoveFavoriteHandler(store, domain.NopPublisher{})
	require.NoError(t, remover.Handle(ctx, FavoriteCommand{UserID: "carol", CocktailID: first.ID}))
	err = remover.Handle(ctx, FavoriteCommand{UserID: "carol", CocktailID: first.ID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	clearer := NewClearFavoritesHandler(store)
	removed, err := clearer.Handle(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = clearer.Handle(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, removed)

	remaining, err := store.Favorites().CountByUser(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}

func TestSetFavoriteColor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cocktail := createCocktail(t, store, "Hugo", line("Sambuco", "2 cl"))
	_, err := NewAddFavoriteHandler(store, domain.NopPublisher{}).Handle(ctx, FavoriteCommand{UserID: "erin", CocktailID: cocktail.ID})
	require.NoError(t, err)

	colors := NewCreateColorHandler(store)
	green, err := colors.Handle(ctx, CreateColorCommand{Name: "Verde", HexCode: "#00ff00"})
	require.NoError(t, err)
	blue, err := colors.Handle(ctx, CreateColorCommand{Name: "Blu", HexCode: "0000FF"})
	require.NoError(t, err)

	handler := NewSetFavoriteColorHandler(store)

	_, err = handler.Handle(ctx, SetFavoriteColorCommand{UserID: "erin", CocktailID: cocktail.ID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = handler.Handle(ctx, SetFavoriteColorCommand{UserID: "erin", CocktailID: cocktail.ID, Color: domain.ColorRef{ID: ptr(uint(9999))}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = handler.Handle(ctx, SetFavoriteColorCommand{UserID: "frank", CocktailID: cocktail.ID, Color: domain.ColorRef{ID: &green.ID}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	favorite, err := handler.Handle(ctx, SetFavoriteColorCommand{UserID: "erin", CocktailID: cocktail.ID, Color: domain.ColorRef{ID: &green.ID}})
	require.NoError(t, err)
	require.NotNil(t, favorite.Color)
	assert.Equal(t, "Verde", favorite.Color.Name)

	listed, err := store.Favorites().ListByUser(ctx, "erin")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Color)
	assert.Equal(t, green.ID, listed[0].Color.ID)

	// a name takes precedence over an id
	favorite, err = handler.Handle(ctx, SetFavoriteColorCommand{
		UserID:     "erin",
		CocktailID: cocktail.ID,
		Color:      domain.ColorRef{ID: &green.ID, Name: "Blu"},
	})
	require.NoError(t, err)
	assert.Equal(t, blue.ID, *favorite.ColorID)
}

func TestColorLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	create := NewCreateColorHandler(store)

	red, err := create.Handle(ctx, CreateColorCommand{Name: "Rosso", HexCode: "#ff0000", Description: "acceso"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", red.HexCode)

	tests := []struct {
		name string
		cmd  CreateColorCommand
		want error
	}{
		{name: "blank name", cmd: CreateColorCommand{HexCode: "#123456"}, want: domain.ErrInvalidInput},
		{name: "malformed hex", cmd: CreateColorCommand{Name: "Strano", HexCode: "#12"}, want: domain.ErrInvalidInput},
		{name: "duplicate name", cmd: CreateColorCommand{Name: "Rosso", HexCode: "#EE0000"}, want: domain.ErrConflict},
		{name: "duplicate hex", cmd: CreateColorCommand{Name: "Scarlatto", HexCode: "#FF0000"}, want: domain.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := create.Handle(ctx, tt.cmd)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	cocktail := createCocktail(t, store, "Campari Soda", line("Campari", "10 cl"))
	_, err = NewAddFavoriteHandler(store, domain.NopPublisher{}).Handle(ctx, FavoriteCommand{UserID: "gina", CocktailID: cocktail.ID})
	require.NoError(t, err)
	_, err = NewSetFavoriteColorHandler(store).Handle(ctx, SetFavoriteColorCommand{UserID: "gina", CocktailID: cocktail.ID, Color: domain.ColorRef{Name: "Rosso"}})
	require.NoError(t, err)

	remove := NewDeleteColorHandler(store, domain.NopPublisher{})
	require.NoError(t, remove.Handle(ctx, red.ID))

	favorite, err := store.Favorites().Find(ctx, "gina", cocktail.ID)
	require.NoError(t, err, "deleting a color must keep the favorite")
	assert.Nil(t, favorite.ColorID)

	err = remove.Handle(ctx, red.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
