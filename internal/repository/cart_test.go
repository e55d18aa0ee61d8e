package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/apperrors"
)

func TestCreateCartIsEmpty(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	cart, err := NewCarts(testDB).Create(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, cart.ID)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalPrice.IsZero())
	assert.False(t, cart.CreatedAt.IsZero())
}

func TestAddItemMergesQuantities(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	first, err := repo.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	second, err := repo.AddItem(ctx, cart.ID, p.ID, 3)
	require.NoError(t, err)

	// Fusion additive : une seule ligne, quantité 5, jamais deux lignes
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, 1, countRows(t, "cart_items"))
}

func TestGetCartTotals(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	_, err = repo.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, cart.ID, p.ID, 3)
	require.NoError(t, err)

	got, err := repo.Get(ctx, cart.ID)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, 5, got.Items[0].Quantity)
	assert.True(t, got.Items[0].TotalPrice.Equal(decimal.RequireFromString("50.00")),
		"item total = %s", got.Items[0].TotalPrice)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("50.00")),
		"cart total = %s", got.TotalPrice)
}

func TestGetCartUsesCurrentProductPrice(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)

	// Le total reflète le prix courant du produit, pas un instantané à l'ajout
	newPrice := decimal.RequireFromString("12.50")
	_, err = NewCatalog(testDB).UpdateProduct(ctx, p.ID, ProductChangeSet{UnitPrice: &newPrice})
	require.NoError(t, err)

	got, err := repo.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("25.00")),
		"cart total = %s", got.TotalPrice)
}

func TestGetEmptyCartTotalIsZero(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	got, err := repo.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.TotalPrice.IsZero())
}

func TestGetCartNotFound(t *testing.T) {
	resetTables(t)

	_, err := NewCarts(testDB).Get(context.Background(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	for _, quantity := range []int{0, -1} {
		_, err := repo.AddItem(ctx, cart.ID, p.ID, quantity)
		assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "quantity %d", quantity)
	}
	// Aucune ligne créée ni modifiée
	assert.Equal(t, 0, countRows(t, "cart_items"))
}

func TestAddItemUnknownCartOrProduct(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)

	_, err := repo.AddItem(ctx, uuid.New(), p.ID, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, cart.ID, 9999, 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestConcurrentAddItemKeepsSingleRow(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)

	// L'upsert atomique sérialise les ajouts concurrents sur la même paire
	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddItem(ctx, cart.ID, p.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, workers, got.Items[0].Quantity)
}

func TestUpdateItemReplacesQuantity(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	item, err := repo.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)

	updated, err := repo.UpdateItem(ctx, cart.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = repo.UpdateItem(ctx, cart.ID, item.ID, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = repo.UpdateItem(ctx, cart.ID, 9999, 3)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRemoveItem(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p := seedProduct(t, col.ID, "guide-go", "10.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	item, err := repo.AddItem(ctx, cart.ID, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, repo.RemoveItem(ctx, cart.ID, item.ID))
	assert.Equal(t, 0, countRows(t, "cart_items"))

	err = repo.RemoveItem(ctx, cart.ID, item.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteCartCascadesItems(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	col := seedCollection(t, "Livres")
	p1 := seedProduct(t, col.ID, "guide-go", "10.00")
	p2 := seedProduct(t, col.ID, "guide-sql", "20.00")

	repo := NewCarts(testDB)
	cart, err := repo.Create(ctx)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, cart.ID, p1.ID, 1)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, cart.ID, p2.ID, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, cart.ID))

	// Pas de lignes orphelines
	assert.Equal(t, 0, countRows(t, "cart_items"))
	assert.Equal(t, 0, countRows(t, "carts"))

	err = repo.Delete(ctx, cart.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
