package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (CartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, "cart", ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	empty, err := store.Load(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	want := sampleCart(4)
	require.NoError(t, store.Save(ctx, want))
	assert.True(t, mr.Exists("cart:4"))

	got, err := store.Load(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisStoreDocumentShape(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	c := aggregator.Cart{UserID: 1, Items: []aggregator.LineItem{
		{BookID: 1, Title: "深入理解React", Author: "张三", CoverURL: "c.png", UnitPrice: aggregator.FromFloat(79.9), Qty: 2},
	}}
	require.NoError(t, store.Save(ctx, c))

	raw, err := mr.Get("cart:1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"深入理解React","author":"张三","price":79.9,"cover":"c.png","quantity":2}]`, raw)

	require.NoError(t, store.Save(ctx, aggregator.Clear(c)))
	raw, _ = mr.Get("cart:1")
	assert.Equal(t, "[]", raw)
}

func TestRedisStoreLegacyDocumentIsNormalized(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)
	require.NoError(t, mr.Set("cart:2",
		`[{"id":2,"title":"JS","price":99,"quantity":1},{"id":2,"title":"JS","price":99,"quantity":2}]`))

	c, err := store.Load(ctx, 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 3, c.Items[0].Qty)
	assert.Equal(t, "297.00", aggregator.TotalAmount(c).String())
}

func TestRedisStoreRejectsCorruptDocument(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, 0)

	require.NoError(t, mr.Set("cart:3", `{"not":"a list"}`))
	_, err := store.Load(ctx, 3)
	assert.ErrorIs(t, err, aggregator.ErrInvalidItem)

	require.NoError(t, mr.Set("cart:3", `[{"id":1,"title":"x","price":1,"quantity":0}]`))
	_, err = store.Load(ctx, 3)
	assert.ErrorIs(t, err, aggregator.ErrInvalidItem)
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t, time.Hour)
	require.NoError(t, store.Save(ctx, sampleCart(5)))

	assert.Equal(t, time.Hour, mr.TTL("cart:5"))
	mr.FastForward(2 * time.Hour)

	c, err := store.Load(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
