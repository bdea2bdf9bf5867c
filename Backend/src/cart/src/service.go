package main

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

// CartService: load -> operación pura -> save -> evento.
type CartService struct {
	store   CartStore
	books   BookLookup
	events  Events
	refresh bool
}

func NewCartService(store CartStore, books BookLookup, events Events, refreshOnRead bool) *CartService {
	if events == nil {
		events = noopEvents{}
	}
	return &CartService{store: store, books: books, events: events, refresh: refreshOnRead}
}

func (s *CartService) Get(ctx context.Context, userID int64) (aggregator.Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return aggregator.Cart{}, err
	}
	if !s.refresh || aggregator.IsEmpty(c) {
		return c, nil
	}
	fresh := make(map[int64]aggregator.Book, len(c.Items))
	for _, it := range c.Items {
		b, err := s.books.GetBook(ctx, it.BookID)
		if err != nil {
			// se muestra la copia guardada si el catálogo falla
			log.Warn().Err(err).Int64("book", it.BookID).Msg("refresh skipped")
			continue
		}
		fresh[b.ID] = b
	}
	return aggregator.Reprice(c, fresh), nil
}

func (s *CartService) Item(ctx context.Context, userID, bookID int64) (aggregator.LineItem, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return aggregator.LineItem{}, err
	}
	return aggregator.Find(c, bookID)
}

func (s *CartService) Add(ctx context.Context, userID, bookID int64, qty int32) (aggregator.Cart, error) {
	if qty < 1 {
		return aggregator.Cart{}, aggregator.ErrInvalidQuantity
	}
	b, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return aggregator.Cart{}, err
	}
	return s.mutate(ctx, userID, RKCartUpdated, func(c aggregator.Cart) (aggregator.Cart, error) {
		return aggregator.AddItem(c, b, qty)
	})
}

func (s *CartService) SetQuantity(ctx context.Context, userID, bookID int64, qty int32) (aggregator.Cart, error) {
	return s.mutate(ctx, userID, RKCartUpdated, func(c aggregator.Cart) (aggregator.Cart, error) {
		return aggregator.SetQuantity(c, bookID, qty)
	})
}

func (s *CartService) Remove(ctx context.Context, userID, bookID int64) (aggregator.Cart, error) {
	return s.mutate(ctx, userID, RKCartUpdated, func(c aggregator.Cart) (aggregator.Cart, error) {
		return aggregator.RemoveItem(c, bookID), nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID int64) (aggregator.Cart, error) {
	return s.mutate(ctx, userID, RKCartCleared, func(c aggregator.Cart) (aggregator.Cart, error) {
		return aggregator.Clear(c), nil
	})
}

func (s *CartService) mutate(ctx context.Context, userID int64, rk string, op func(aggregator.Cart) (aggregator.Cart, error)) (aggregator.Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return aggregator.Cart{}, err
	}
	next, err := op(c)
	if err != nil {
		return aggregator.Cart{}, err
	}
	// sin cambios (remove/set de un libro ausente, clear de un carrito vacío): no se guarda ni se publica
	if slices.Equal(c.Items, next.Items) {
		return next, nil
	}
	if err := s.store.Save(ctx, next); err != nil {
		return aggregator.Cart{}, err
	}

	payload := CartChangedPayload{
		UserID:     userID,
		Lines:      len(next.Items),
		TotalQty:   aggregator.TotalQuantity(next),
		TotalCents: aggregator.TotalAmount(next).Cents,
	}
	if err := s.events.Publish(ctx, rk, payload); err != nil {
		log.Warn().Err(err).Str("rk", rk).Msg("publish failed")
	}
	return next, nil
}
