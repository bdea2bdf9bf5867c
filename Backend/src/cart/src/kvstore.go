package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

// storedItem tiene la misma forma que el valor "cart" que el navegador guardaba
// en localStorage, con el precio en decimal.
type storedItem struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Cover    string  `json:"cover"`
	Quantity int32   `json:"quantity"`
}

// redisStore guarda un documento JSON por usuario bajo <prefix>:<userID>.
type redisStore struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rdb redis.UniversalClient, prefix string, ttl time.Duration) CartStore {
	return &redisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(userID int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}

func (s *redisStore) Load(ctx context.Context, userID int64) (aggregator.Cart, error) {
	raw, err := s.rdb.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{}}, nil
	}
	if err != nil {
		return aggregator.Cart{}, err
	}

	var doc []storedItem
	if err := json.Unmarshal(raw, &doc); err != nil {
		return aggregator.Cart{}, fmt.Errorf("%w: decode %s: %v", aggregator.ErrInvalidItem, s.key(userID), err)
	}
	items := make([]aggregator.LineItem, 0, len(doc))
	for _, d := range doc {
		items = append(items, aggregator.LineItem{
			BookID:    d.ID,
			Title:     d.Title,
			Author:    d.Author,
			CoverURL:  d.Cover,
			UnitPrice: aggregator.FromFloat(d.Price),
			Qty:       d.Quantity,
		})
	}
	return aggregator.FromItems(userID, items)
}

func (s *redisStore) Save(ctx context.Context, c aggregator.Cart) error {
	doc := make([]storedItem, 0, len(c.Items))
	for _, it := range c.Items {
		doc = append(doc, storedItem{
			ID:       it.BookID,
			Title:    it.Title,
			Author:   it.Author,
			Price:    it.UnitPrice.Float(),
			Cover:    it.CoverURL,
			Quantity: it.Qty,
		})
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(c.UserID), body, s.ttl).Err()
}
