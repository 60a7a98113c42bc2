package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage/memory"
	"github.com/utafrali/EcommerceGo/storefront/pkg/logger"
)

func flush(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, e.Flush(ctx))
}

func TestEngine_Queries(t *testing.T) {
	e := NewEngine(memory.New(), "", logger.Discard())

	e.AddItem(product(1, 9.99))
	e.AddItem(product(1, 9.99))
	e.AddItem(product(2, 5))
	flush(t, e)

	assert.True(t, e.IsInCart(1))
	assert.False(t, e.IsInCart(3))
	assert.Equal(t, 2, e.GetItemQuantity(1))
	assert.Equal(t, 0, e.GetItemQuantity(3))
	assert.Equal(t, 3, e.TotalItems())
	assert.Equal(t, 24.98, e.TotalPrice())
	assert.Equal(t, 2, e.Count())

	item, ok := e.Item(2)
	require.True(t, ok)
	assert.Equal(t, 5.0, item.Price)
	_, ok = e.Item(3)
	assert.False(t, ok)
}

func TestEngine_AddQuantityPersistsOnce(t *testing.T) {
	store := memory.New()
	e := NewEngine(store, "", logger.Discard())

	before := e.AddItem(product(1, 4))
	got := e.AddQuantity(product(1, 4), 4)
	flush(t, e)

	assert.Equal(t, 1, before.TotalItems)
	assert.Equal(t, 5, got.TotalItems)
	assert.Equal(t, 20.0, got.TotalPrice)

	raw, ok, err := store.Get(context.Background(), storage.CartKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"quantity":5`)
}

func TestEngine_ItemsIsACopy(t *testing.T) {
	e := NewEngine(memory.New(), "", logger.Discard())
	e.AddItem(product(1, 1))
	flush(t, e)

	items := e.Items()
	items[0].Quantity = 100

	assert.Equal(t, 1, e.GetItemQuantity(1))
}

func TestEngine_PersistsUnderNamespacedKey(t *testing.T) {
	store := memory.New()
	e := NewEngine(store, "dev", logger.Discard())
	assert.Equal(t, "dev:"+storage.CartKey, e.Key())

	e.AddItem(product(1, 9.99))
	flush(t, e)
	e.UpdateQuantity(1, 3)
	flush(t, e)

	raw, ok, err := store.Get(context.Background(), "dev:ecommerce_cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1,"title":"Product","price":9.99,"image":"thumb.png","quantity":3}]`, raw)
}

func TestEngine_ClearPersistsEmptyArray(t *testing.T) {
	store := memory.New()
	e := NewEngine(store, "", logger.Discard())
	e.AddItem(product(1, 1))
	flush(t, e)
	e.Clear()
	flush(t, e)

	raw, _, _ := store.Get(context.Background(), storage.CartKey)
	assert.Equal(t, "[]", raw)
}

func TestEngine_HydrateRoundTrip(t *testing.T) {
	store := memory.New()
	first := NewEngine(store, "", logger.Discard())
	first.AddItem(product(3, 2.5))
	first.AddItem(product(3, 2.5))
	flush(t, first)
	first.AddItem(product(8, 1))
	flush(t, first)

	second := NewEngine(store, "", logger.Discard())
	second.Hydrate(context.Background())
	flush(t, second)

	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, 3, second.TotalItems())
	assert.Equal(t, 6.0, second.TotalPrice())
}

func TestEngine_HydrateCorruptLeavesEmpty(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Set(context.Background(), storage.CartKey, `{"items":`))

	e := NewEngine(store, "", logger.Discard())
	e.Hydrate(context.Background())

	assert.Equal(t, 0, e.Count())
	assert.Equal(t, []domain.CartItem{}, e.Items())
}
