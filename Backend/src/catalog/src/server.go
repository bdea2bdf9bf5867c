package main

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

const (
	defaultPageSize int32 = 20
	maxPageSize     int32 = 100
)

type CatalogServer struct {
	repo Repository
}

func NewCatalogServer(repo Repository) *CatalogServer { return &CatalogServer{repo: repo} }

// normalizePage aplica defaults y el tope de tamaño de página.
func normalizePage(page, size int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (s *CatalogServer) ListBooks(ctx context.Context, in *rpc.ListBooksRequest) (*rpc.ListBooksResponse, error) {
	page, size := normalizePage(in.Page, in.PageSize)
	offset := (page - 1) * size

	total, err := s.repo.Count(ctx, in.Q)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "count: %v", err)
	}
	items, err := s.repo.List(ctx, in.Q, size, offset)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list: %v", err)
	}

	out := make([]*rpc.Book, 0, len(items))
	for _, b := range items {
		out = append(out, bookToRPC(b))
	}
	totalPages := int32((total + int64(size) - 1) / int64(size))

	return &rpc.ListBooksResponse{
		Items: out,
		Page: &rpc.PageResponse{
			Page:       page,
			PageSize:   size,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}, nil
}

func (s *CatalogServer) GetBook(ctx context.Context, in *rpc.GetBookRequest) (*rpc.Book, error) {
	if in.ID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "id must be > 0")
	}
	b, err := s.repo.Get(ctx, in.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, status.Error(codes.NotFound, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get: %v", err)
	}
	return bookToRPC(b), nil
}
