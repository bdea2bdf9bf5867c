package main

import "github.com/ahinestrog/bookcart/Backend/src/rpc"

type Book struct {
	ID          int64
	Title       string
	Author      string
	PriceCents  int64
	CoverURL    string
	Description string
	Category    string
	CreatedUnix int64
}

// ---- mapping entidad <-> rpc ----

func bookToRPC(b *Book) *rpc.Book {
	return &rpc.Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Price:       rpc.Money{Cents: b.PriceCents},
		CoverURL:    b.CoverURL,
		Description: b.Description,
		Category:    b.Category,
		CreatedUnix: b.CreatedUnix,
	}
}
