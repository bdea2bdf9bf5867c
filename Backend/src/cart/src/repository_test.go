package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

func newTestSQLiteStore(t *testing.T) CartStore {
	t.Helper()
	db, err := openSQLite(filepath.Join(t.TempDir(), "data", "cart.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrate(context.Background(), db))
	return NewSQLiteStore(db)
}

func sampleCart(userID int64) aggregator.Cart {
	return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{
		{BookID: 3, Title: "人工智能导论", Author: "王五", CoverURL: "https://picsum.photos/id/42/300/400", UnitPrice: aggregator.Money{Cents: 8800}, Qty: 1},
		{BookID: 1, Title: "深入理解React", Author: "张三", UnitPrice: aggregator.Money{Cents: 7990}, Qty: 2},
	}}
}

func TestSQLiteStoreMissingCartLoadsEmpty(t *testing.T) {
	store := newTestSQLiteStore(t)

	c, err := store.Load(context.Background(), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 10, c.UserID)
	assert.Empty(t, c.Items)
}

func TestSQLiteStoreRoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	want := sampleCart(10)

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStoreSaveReplacesLines(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Save(ctx, sampleCart(10)))
	require.NoError(t, store.Save(ctx, sampleCart(11)))

	next := aggregator.RemoveItem(sampleCart(10), 3)
	require.NoError(t, store.Save(ctx, next))

	got, err := store.Load(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.EqualValues(t, 1, got.Items[0].BookID)

	other, err := store.Load(ctx, 11)
	require.NoError(t, err)
	assert.Len(t, other.Items, 2)

	require.NoError(t, store.Save(ctx, aggregator.Clear(got)))
	got, err = store.Load(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}
