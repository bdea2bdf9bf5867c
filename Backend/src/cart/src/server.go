// Servidor que utiliza la comunicación RPC (gRPC)
package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type CartServer struct {
	svc *CartService
}

func NewCartServer(svc *CartService) *CartServer {
	return &CartServer{svc: svc}
}

func checkUser(userID int64) error {
	if userID <= 0 {
		return status.Error(codes.InvalidArgument, "user_id must be > 0")
	}
	return nil
}

func (s *CartServer) GetCart(ctx context.Context, req *rpc.UserRef) (*rpc.CartView, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	c, err := s.svc.Get(ctx, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartView(c), nil
}

func (s *CartServer) GetItem(ctx context.Context, req *rpc.ItemRef) (*rpc.CartItem, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	it, err := s.svc.Item(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartItem(it), nil
}

func (s *CartServer) AddItem(ctx context.Context, req *rpc.AddItemRequest) (*rpc.CartView, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	if req.BookID <= 0 {
		return nil, status.Error(codes.InvalidArgument, "book_id must be > 0")
	}
	c, err := s.svc.Add(ctx, req.UserID, req.BookID, req.Qty)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartView(c), nil
}

func (s *CartServer) SetQuantity(ctx context.Context, req *rpc.SetQuantityRequest) (*rpc.CartView, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	c, err := s.svc.SetQuantity(ctx, req.UserID, req.BookID, req.Qty)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartView(c), nil
}

func (s *CartServer) RemoveItem(ctx context.Context, req *rpc.ItemRef) (*rpc.CartView, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	c, err := s.svc.Remove(ctx, req.UserID, req.BookID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartView(c), nil
}

func (s *CartServer) ClearCart(ctx context.Context, req *rpc.UserRef) (*rpc.CartView, error) {
	if err := checkUser(req.UserID); err != nil {
		return nil, err
	}
	c, err := s.svc.Clear(ctx, req.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toCartView(c), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, aggregator.ErrInvalidQuantity):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, ErrBookNotFound), errors.Is(err, aggregator.ErrItemNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, aggregator.ErrInvalidItem):
		log.Error().Err(err).Msg("stored cart is corrupt")
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "cart: %v", err)
}
