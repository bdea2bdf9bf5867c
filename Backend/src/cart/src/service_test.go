package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

type memStore struct {
	mu      sync.Mutex
	carts   map[int64]aggregator.Cart
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore { return &memStore{carts: map[int64]aggregator.Cart{}} }

func (m *memStore) Load(_ context.Context, userID int64) (aggregator.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return aggregator.Cart{}, m.loadErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{}}, nil
	}
	return c, nil
}

func (m *memStore) Save(_ context.Context, c aggregator.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.carts[c.UserID] = c
	return nil
}

type fakeBooks struct {
	mu    sync.Mutex
	books map[int64]aggregator.Book
	calls int
	err   error
}

func (f *fakeBooks) GetBook(_ context.Context, id int64) (aggregator.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return aggregator.Book{}, f.err
	}
	b, ok := f.books[id]
	if !ok {
		return aggregator.Book{}, fmt.Errorf("%w: %d", ErrBookNotFound, id)
	}
	return b, nil
}

type published struct {
	rk      string
	payload CartChangedPayload
}

type recordingEvents struct {
	mu   sync.Mutex
	got  []published
	fail bool
}

func (r *recordingEvents) Publish(_ context.Context, rk string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("broker down")
	}
	r.got = append(r.got, published{rk: rk, payload: payload.(CartChangedPayload)})
	return nil
}

func (r *recordingEvents) Close() {}

func catalogFixture() *fakeBooks {
	return &fakeBooks{books: map[int64]aggregator.Book{
		1: {ID: 1, Title: "深入理解React", Author: "张三", Price: aggregator.FromFloat(79.9)},
		2: {ID: 2, Title: "JavaScript高级程序设计", Author: "李四", Price: aggregator.FromFloat(99)},
	}}
}

func TestCartServiceAddMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	store, books, events := newMemStore(), catalogFixture(), &recordingEvents{}
	svc := NewCartService(store, books, events, false)

	c, err := svc.Add(ctx, 42, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "159.80", aggregator.TotalAmount(c).String())

	c, err = svc.Add(ctx, 42, 1, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 3, c.Items[0].Qty)
	assert.Equal(t, "239.70", aggregator.TotalAmount(c).String())

	stored, err := store.Load(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, c, stored)
	assert.Equal(t, 2, store.saves)

	require.Len(t, events.got, 2)
	assert.Equal(t, RKCartUpdated, events.got[1].rk)
	assert.Equal(t, CartChangedPayload{UserID: 42, Lines: 1, TotalQty: 3, TotalCents: 23970}, events.got[1].payload)
}

func TestCartServiceAddValidatesBeforeCatalog(t *testing.T) {
	books := catalogFixture()
	svc := NewCartService(newMemStore(), books, nil, false)

	_, err := svc.Add(context.Background(), 1, 1, 0)
	assert.ErrorIs(t, err, aggregator.ErrInvalidQuantity)
	assert.Zero(t, books.calls)
}

func TestCartServiceAddUnknownBook(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store, catalogFixture(), nil, false)

	_, err := svc.Add(context.Background(), 1, 99, 1)
	assert.ErrorIs(t, err, ErrBookNotFound)
	assert.Zero(t, store.saves)
}

func TestCartServiceSetQuantity(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := NewCartService(store, catalogFixture(), nil, false)
	_, err := svc.Add(ctx, 5, 2, 1)
	require.NoError(t, err)

	c, err := svc.SetQuantity(ctx, 5, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 4, aggregator.TotalQuantity(c))

	before, _ := store.Load(ctx, 5)
	_, err = svc.SetQuantity(ctx, 5, 2, 0)
	assert.ErrorIs(t, err, aggregator.ErrInvalidQuantity)
	after, _ := store.Load(ctx, 5)
	assert.Equal(t, before, after)

	c, err = svc.SetQuantity(ctx, 5, 77, 3)
	require.NoError(t, err)
	assert.Equal(t, before, c)
}

func TestCartServiceRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	events := &recordingEvents{}
	svc := NewCartService(newMemStore(), catalogFixture(), events, false)
	_, _ = svc.Add(ctx, 8, 1, 1)
	_, _ = svc.Add(ctx, 8, 2, 1)

	c, err := svc.Remove(ctx, 8, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)

	again, err := svc.Remove(ctx, 8, 1)
	require.NoError(t, err)
	assert.Equal(t, c, again)

	c, err = svc.Clear(ctx, 8)
	require.NoError(t, err)
	assert.True(t, aggregator.IsEmpty(c))
	assert.Equal(t, RKCartCleared, events.got[len(events.got)-1].rk)
}

func TestCartServicePublishFailureIsNotReturned(t *testing.T) {
	svc := NewCartService(newMemStore(), catalogFixture(), &recordingEvents{fail: true}, false)

	_, err := svc.Add(context.Background(), 1, 1, 1)
	assert.NoError(t, err)
}

func TestCartServiceSaveFailure(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	events := &recordingEvents{}
	svc := NewCartService(store, catalogFixture(), events, false)

	_, err := svc.Add(context.Background(), 1, 1, 1)
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, events.got)
}

func TestCartServiceRefreshOnRead(t *testing.T) {
	ctx := context.Background()
	books := catalogFixture()
	store := newMemStore()
	_, err := NewCartService(store, books, nil, false).Add(ctx, 3, 1, 2)
	require.NoError(t, err)

	books.books[1] = aggregator.Book{ID: 1, Title: "深入理解React", Price: aggregator.FromFloat(50)}

	stale, err := NewCartService(store, books, nil, false).Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "159.80", aggregator.TotalAmount(stale).String())

	fresh, err := NewCartService(store, books, nil, true).Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "100.00", aggregator.TotalAmount(fresh).String())

	// el catálogo caído no rompe la lectura
	books.err = errors.New("unavailable")
	c, err := NewCartService(store, books, nil, true).Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, stale, c)
}

func TestCartServiceItem(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newMemStore(), catalogFixture(), nil, false)
	_, _ = svc.Add(ctx, 1, 2, 3)

	it, err := svc.Item(ctx, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, it.Qty)

	_, err = svc.Item(ctx, 1, 1)
	assert.ErrorIs(t, err, aggregator.ErrItemNotFound)
}

func TestCartServiceNoOpMutationsAreNotSaved(t *testing.T) {
	ctx := context.Background()
	store, events := newMemStore(), &recordingEvents{}
	svc := NewCartService(store, catalogFixture(), events, false)

	c, err := svc.Remove(ctx, 11, 1)
	require.NoError(t, err)
	assert.True(t, aggregator.IsEmpty(c))
	_, err = svc.Clear(ctx, 11)
	require.NoError(t, err)
	assert.Zero(t, store.saves)
	assert.Empty(t, events.got)

	_, err = svc.Add(ctx, 11, 1, 1)
	require.NoError(t, err)

	c, err = svc.SetQuantity(ctx, 11, 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, aggregator.TotalQuantity(c))
	_, err = svc.SetQuantity(ctx, 11, 1, 1)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, 11, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, store.saves)
	assert.Len(t, events.got, 1)
}
