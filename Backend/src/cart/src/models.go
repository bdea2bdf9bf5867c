package main

import (
	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

// ---- mapping entidad <-> rpc ----

func toCartItem(it aggregator.LineItem) *rpc.CartItem {
	return &rpc.CartItem{
		BookID:    it.BookID,
		Title:     it.Title,
		Author:    it.Author,
		CoverURL:  it.CoverURL,
		Qty:       it.Qty,
		UnitPrice: rpc.Money{Cents: it.UnitPrice.Cents},
		LineTotal: rpc.Money{Cents: aggregator.LineSubtotal(it).Cents},
	}
}

func toCartView(c aggregator.Cart) *rpc.CartView {
	view := &rpc.CartView{
		UserID:   c.UserID,
		Items:    make([]*rpc.CartItem, 0, len(c.Items)),
		TotalQty: aggregator.TotalQuantity(c),
		Total:    rpc.Money{Cents: aggregator.TotalAmount(c).Cents},
	}
	for _, it := range c.Items {
		view.Items = append(view.Items, toCartItem(it))
	}
	return view
}
