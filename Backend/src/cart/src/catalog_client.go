package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

var ErrBookNotFound = errors.New("book not found")

// BookLookup resuelve los datos del catálogo que se copian en la línea del carrito.
type BookLookup interface {
	GetBook(ctx context.Context, id int64) (aggregator.Book, error)
}

type CatalogClient struct {
	api     rpc.CatalogClient
	cache   *expirable.LRU[int64, aggregator.Book]
	timeout time.Duration
}

func NewCatalogClient(api rpc.CatalogClient, size int, ttl time.Duration) *CatalogClient {
	return &CatalogClient{
		api:     api,
		cache:   expirable.NewLRU[int64, aggregator.Book](size, nil, ttl),
		timeout: 4 * time.Second,
	}
}

func (c *CatalogClient) GetBook(ctx context.Context, id int64) (aggregator.Book, error) {
	if b, ok := c.cache.Get(id); ok {
		return b, nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pb, err := c.api.GetBook(ctx, &rpc.GetBookRequest{ID: id})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound, codes.InvalidArgument:
			return aggregator.Book{}, fmt.Errorf("%w: %d", ErrBookNotFound, id)
		}
		return aggregator.Book{}, fmt.Errorf("catalog get book %d: %w", id, err)
	}
	b := aggregator.Book{
		ID:       pb.ID,
		Title:    pb.Title,
		Author:   pb.Author,
		CoverURL: pb.CoverURL,
		Price:    aggregator.Money{Cents: pb.Price.Cents},
	}
	c.cache.Add(id, b)
	return b, nil
}
