package main

import (
	"time"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type Order struct {
	ID          int64
	UserID      int64
	Status      string
	TotalCents  int64
	ShipName    string
	ShipPhone   string
	ShipAddress string
	CreatedUnix int64
	UpdatedUnix int64
	Items       []OrderItem
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	BookID    int64
	Title     string
	Qty       int32
	UnitCents int64
	LineCents int64
}

func nowUnix() int64 { return time.Now().Unix() }

func orderToRPC(o *Order) *rpc.Order {
	out := &rpc.Order{
		OrderID: o.ID,
		UserID:  o.UserID,
		Status:  o.Status,
		Items:   make([]*rpc.OrderItem, 0, len(o.Items)),
		Total:   rpc.Money{Cents: o.TotalCents},
		Shipping: rpc.Shipping{
			Name:    o.ShipName,
			Phone:   o.ShipPhone,
			Address: o.ShipAddress,
		},
		CreatedUnix: o.CreatedUnix,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, &rpc.OrderItem{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitPrice: rpc.Money{Cents: it.UnitCents},
			LineTotal: rpc.Money{Cents: it.LineCents},
		})
	}
	return out
}
