package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

// formatMoney muestra centavos como "1,234.50".
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

func amount(m rpc.Money) float64 { return float64(m.Cents) / 100 }

type ItemVM struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Cover    string  `json:"cover"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type CartVM struct {
	Items         []ItemVM `json:"items"`
	TotalQuantity int64    `json:"total_quantity"`
	TotalAmount   float64  `json:"total_amount"`
	TotalDisplay  string   `json:"total_display"`
	Empty         bool     `json:"empty"`
}

func toItemVM(it *rpc.CartItem) ItemVM {
	return ItemVM{
		ID:       it.BookID,
		Title:    it.Title,
		Author:   it.Author,
		Cover:    it.CoverURL,
		Price:    amount(it.UnitPrice),
		Quantity: it.Qty,
		Subtotal: amount(it.LineTotal),
	}
}

func toCartVM(cv *rpc.CartView) CartVM {
	vm := CartVM{
		Items:         make([]ItemVM, 0, len(cv.Items)),
		TotalQuantity: cv.TotalQty,
		TotalAmount:   amount(cv.Total),
		TotalDisplay:  formatMoney(cv.Total.Cents),
		Empty:         len(cv.Items) == 0,
	}
	for _, it := range cv.Items {
		vm.Items = append(vm.Items, toItemVM(it))
	}
	return vm
}

type OrderItemVM struct {
	BookID   int64   `json:"book_id"`
	Title    string  `json:"title"`
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type OrderVM struct {
	ID           int64         `json:"id"`
	Status       string        `json:"status"`
	Items        []OrderItemVM `json:"items"`
	TotalAmount  float64       `json:"total_amount"`
	TotalDisplay string        `json:"total_display"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Address      string        `json:"address"`
	CreatedAt    string        `json:"created_at"`
	CreatedAgo   string        `json:"created_ago"`
}

func toOrderVM(o *rpc.Order) OrderVM {
	created := unixTime(o.CreatedUnix)
	vm := OrderVM{
		ID:           o.OrderID,
		Status:       o.Status,
		Items:        make([]OrderItemVM, 0, len(o.Items)),
		TotalAmount:  amount(o.Total),
		TotalDisplay: formatMoney(o.Total.Cents),
		Name:         o.Shipping.Name,
		Phone:        o.Shipping.Phone,
		Address:      o.Shipping.Address,
		CreatedAt:    created.Format("2006-01-02 15:04:05"),
		CreatedAgo:   humanize.Time(created),
	}
	for _, it := range o.Items {
		vm.Items = append(vm.Items, OrderItemVM{
			BookID:   it.BookID,
			Title:    it.Title,
			Quantity: it.Qty,
			Price:    amount(it.UnitPrice),
			Subtotal: amount(it.LineTotal),
		})
	}
	return vm
}

func unixTime(sec int64) time.Time { return time.Unix(sec, 0) }
