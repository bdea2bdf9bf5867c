package main

import (
	"context"
	"time"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

// CartReader es lo único que Order necesita del servicio de carrito.
type CartReader interface {
	GetCart(ctx context.Context, userID int64) (aggregator.Cart, error)
}

type CartClient struct {
	api     rpc.CartClient
	timeout time.Duration
}

func NewCartClient(api rpc.CartClient) *CartClient {
	return &CartClient{api: api, timeout: 4 * time.Second}
}

// GetCart trae el carrito y lo valida como cualquier dato externo.
func (c *CartClient) GetCart(ctx context.Context, userID int64) (aggregator.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	cv, err := c.api.GetCart(ctx, &rpc.UserRef{UserID: userID})
	if err != nil {
		return aggregator.Cart{}, err
	}
	items := make([]aggregator.LineItem, 0, len(cv.Items))
	for _, it := range cv.Items {
		items = append(items, aggregator.LineItem{
			BookID:    it.BookID,
			Title:     it.Title,
			Author:    it.Author,
			CoverURL:  it.CoverURL,
			UnitPrice: aggregator.Money{Cents: it.UnitPrice.Cents},
			Qty:       it.Qty,
		})
	}
	return aggregator.FromItems(userID, items)
}
