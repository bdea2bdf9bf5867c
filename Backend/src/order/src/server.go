package main

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type OrderServer struct {
	repo   *Repository
	events Publisher
	cart   CartReader
}

func NewOrderServer(repo *Repository, events Publisher, cart CartReader) *OrderServer {
	if events == nil {
		events = noopPublisher{}
	}
	return &OrderServer{repo: repo, events: events, cart: cart}
}

func validateShipping(sh rpc.Shipping) error {
	switch {
	case strings.TrimSpace(sh.Name) == "":
		return status.Error(codes.InvalidArgument, "shipping.name is required")
	case strings.TrimSpace(sh.Phone) == "":
		return status.Error(codes.InvalidArgument, "shipping.phone is required")
	case strings.TrimSpace(sh.Address) == "":
		return status.Error(codes.InvalidArgument, "shipping.address is required")
	}
	return nil
}

func (s *OrderServer) CreateOrder(ctx context.Context, req *rpc.CreateOrderRequest) (*rpc.Order, error) {
	if req.UserID == 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	if err := validateShipping(req.Shipping); err != nil {
		return nil, err
	}

	// 1) Obtener carrito
	c, err := s.cart.GetCart(ctx, req.UserID)
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Errorf(codes.Internal, "cart: %v", err)
	}
	if aggregator.IsEmpty(c) {
		return nil, status.Error(codes.FailedPrecondition, "cart is empty")
	}

	// 2) Mapear ítems; los totales se recalculan aquí, no se confía en el carrito
	now := nowUnix()
	o := Order{
		UserID:      req.UserID,
		Status:      rpc.OrderStatusCreated,
		TotalCents:  aggregator.TotalAmount(c).Cents,
		ShipName:    strings.TrimSpace(req.Shipping.Name),
		ShipPhone:   strings.TrimSpace(req.Shipping.Phone),
		ShipAddress: strings.TrimSpace(req.Shipping.Address),
		CreatedUnix: now,
		UpdatedUnix: now,
	}
	itemsEvt := make([]OrderItemEvt, 0, len(c.Items))
	for _, it := range c.Items {
		line := aggregator.LineSubtotal(it).Cents
		o.Items = append(o.Items, OrderItem{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitCents: it.UnitPrice.Cents,
			LineCents: line,
		})
		itemsEvt = append(itemsEvt, OrderItemEvt{
			BookID:    it.BookID,
			Title:     it.Title,
			Qty:       it.Qty,
			UnitCents: it.UnitPrice.Cents,
			LineCents: line,
		})
	}

	oid, err := s.repo.CreateOrder(ctx, &o)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "create order: %v", err)
	}
	o.ID = oid

	// 3) Publicar evento order.created
	payload := OrderCreatedPayload{
		OrderID:    oid,
		UserID:     o.UserID,
		Items:      itemsEvt,
		TotalCents: o.TotalCents,
	}
	if err := s.events.PublishJSON(ctx, RKOrderCreated, payload); err != nil {
		log.Warn().Err(err).Int64("order", oid).Msg("publish order.created failed")
	}
	log.Info().Int64("order", oid).Int64("user", o.UserID).Int64("total_cents", o.TotalCents).Msg("order created")

	return orderToRPC(&o), nil
}

func (s *OrderServer) GetOrder(ctx context.Context, req *rpc.GetOrderRequest) (*rpc.Order, error) {
	o, err := s.ownedOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	return orderToRPC(o), nil
}

// ownedOrder carga la orden; las de otro usuario se reportan como inexistentes.
func (s *OrderServer) ownedOrder(ctx context.Context, req *rpc.GetOrderRequest) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, req.OrderID)
	if errors.Is(err, ErrNotFound) {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "get order: %v", err)
	}
	if req.UserID != 0 && o.UserID != req.UserID {
		return nil, status.Error(codes.NotFound, "order not found")
	}
	return o, nil
}

// CancelOrder solo aplica a órdenes en estado created (pendientes de envío).
func (s *OrderServer) CancelOrder(ctx context.Context, req *rpc.GetOrderRequest) (*rpc.Order, error) {
	if req.UserID == 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	o, err := s.ownedOrder(ctx, req)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.TransitionStatus(ctx, o.ID, rpc.OrderStatusCreated, rpc.OrderStatusCancelled)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "cancel order: %v", err)
	}
	if !ok {
		return nil, status.Errorf(codes.FailedPrecondition, "order %d is %s, only %s orders can be cancelled", o.ID, o.Status, rpc.OrderStatusCreated)
	}
	o.Status = rpc.OrderStatusCancelled

	payload := OrderCancelledPayload{OrderID: o.ID, UserID: o.UserID, TotalCents: o.TotalCents}
	if err := s.events.PublishJSON(ctx, RKOrderCancelled, payload); err != nil {
		log.Warn().Err(err).Int64("order", o.ID).Msg("publish order.cancelled failed")
	}
	log.Info().Int64("order", o.ID).Int64("user", o.UserID).Msg("order cancelled")
	return orderToRPC(o), nil
}

func (s *OrderServer) ListOrders(ctx context.Context, req *rpc.UserRef) (*rpc.ListOrdersResponse, error) {
	if req.UserID == 0 {
		return nil, status.Error(codes.InvalidArgument, "user_id is required")
	}
	orders, err := s.repo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list orders: %v", err)
	}
	out := &rpc.ListOrdersResponse{Orders: make([]*rpc.Order, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, orderToRPC(o))
	}
	return out, nil
}
