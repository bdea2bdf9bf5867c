package main

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type BookVM struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Cover        string  `json:"cover"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category,omitempty"`
}

type BookPageVM struct {
	Items      []BookVM `json:"items"`
	Page       int32    `json:"page"`
	PageSize   int32    `json:"page_size"`
	TotalPages int32    `json:"total_pages"`
	TotalItems int64    `json:"total_items"`
}

func toBookVM(b *rpc.Book) BookVM {
	return BookVM{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Cover:        b.CoverURL,
		Price:        amount(b.Price),
		PriceDisplay: formatMoney(b.Price.Cents),
		Description:  b.Description,
		Category:     b.Category,
	}
}

func atoiDefault(s string, d int32) int32 {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return d
	}
	return int32(n)
}

// listBooks: el catálogo normaliza page/page_size, aquí solo se reenvían.
func (s *Server) listBooks(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	resp, err := s.books.ListBooks(ctx, &rpc.ListBooksRequest{
		Q:        c.Query("q"),
		Page:     atoiDefault(c.Query("page"), 1),
		PageSize: atoiDefault(c.Query("page_size"), 12),
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	out := BookPageVM{Items: make([]BookVM, 0, len(resp.Items))}
	for _, b := range resp.Items {
		out.Items = append(out.Items, toBookVM(b))
	}
	if resp.Page != nil {
		out.Page = resp.Page.Page
		out.PageSize = resp.Page.PageSize
		out.TotalPages = resp.Page.TotalPages
		out.TotalItems = resp.Page.TotalItems
	}
	respondOK(c, out)
}

func (s *Server) getBook(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	b, err := s.books.GetBook(ctx, &rpc.GetBookRequest{ID: id})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toBookVM(b))
}
