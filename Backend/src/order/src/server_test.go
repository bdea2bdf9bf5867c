package main

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type fakeCart struct {
	carts map[int64]aggregator.Cart
	err   error
}

func (f *fakeCart) GetCart(_ context.Context, userID int64) (aggregator.Cart, error) {
	if f.err != nil {
		return aggregator.Cart{}, f.err
	}
	if c, ok := f.carts[userID]; ok {
		return c, nil
	}
	return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{}}, nil
}

type published struct {
	rk string
	v  any
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, rk string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{rk: rk, v: v})
	return p.err
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "order.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func twoBookCart(userID int64) aggregator.Cart {
	return aggregator.Cart{UserID: userID, Items: []aggregator.LineItem{
		{BookID: 1, Title: "深入理解React", Author: "张三", UnitPrice: aggregator.Money{Cents: 7990}, Qty: 2},
		{BookID: 2, Title: "Go语言实战", Author: "李四", UnitPrice: aggregator.Money{Cents: 9900}, Qty: 1},
	}}
}

var shipping = rpc.Shipping{Name: "王五", Phone: "13800000000", Address: "北京市海淀区"}

func TestCreateOrder(t *testing.T) {
	pub := &recordingPublisher{}
	srv := NewOrderServer(newTestRepo(t), pub, &fakeCart{carts: map[int64]aggregator.Cart{7: twoBookCart(7)}})

	o, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)
	assert.NotZero(t, o.OrderID)
	assert.Equal(t, rpc.OrderStatusCreated, o.Status)
	assert.EqualValues(t, 25880, o.Total.Cents)
	require.Len(t, o.Items, 2)
	assert.EqualValues(t, 15980, o.Items[0].LineTotal.Cents)
	assert.Equal(t, shipping, o.Shipping)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, RKOrderCreated, pub.msgs[0].rk)
	payload, ok := pub.msgs[0].v.(OrderCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, o.OrderID, payload.OrderID)
	assert.EqualValues(t, 25880, payload.TotalCents)

	got, err := srv.GetOrder(context.Background(), &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, o, got)
}

func TestCreateOrderIgnoresPublishFailure(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	srv := NewOrderServer(newTestRepo(t), pub, &fakeCart{carts: map[int64]aggregator.Cart{7: twoBookCart(7)}})

	_, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)
}

func TestCreateOrderRejects(t *testing.T) {
	srv := NewOrderServer(newTestRepo(t), nil, &fakeCart{})

	cases := []struct {
		name string
		req  *rpc.CreateOrderRequest
		code codes.Code
	}{
		{"no user", &rpc.CreateOrderRequest{Shipping: shipping}, codes.InvalidArgument},
		{"no name", &rpc.CreateOrderRequest{UserID: 7, Shipping: rpc.Shipping{Phone: "1", Address: "a"}}, codes.InvalidArgument},
		{"blank phone", &rpc.CreateOrderRequest{UserID: 7, Shipping: rpc.Shipping{Name: "n", Phone: "  ", Address: "a"}}, codes.InvalidArgument},
		{"no address", &rpc.CreateOrderRequest{UserID: 7, Shipping: rpc.Shipping{Name: "n", Phone: "1"}}, codes.InvalidArgument},
		{"empty cart", &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping}, codes.FailedPrecondition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := srv.CreateOrder(context.Background(), tc.req)
			assert.Equal(t, tc.code, status.Code(err))
		})
	}
}

func TestCreateOrderCartUnavailable(t *testing.T) {
	srv := NewOrderServer(newTestRepo(t), nil, &fakeCart{err: status.Error(codes.Unavailable, "cart down")})
	_, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	assert.Equal(t, codes.Unavailable, status.Code(err))

	srv = NewOrderServer(newTestRepo(t), nil, &fakeCart{err: aggregator.ErrInvalidItem})
	_, err = srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGetOrderOfAnotherUser(t *testing.T) {
	srv := NewOrderServer(newTestRepo(t), nil, &fakeCart{carts: map[int64]aggregator.Cart{7: twoBookCart(7)}})
	o, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)

	_, err = srv.GetOrder(context.Background(), &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 8})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = srv.GetOrder(context.Background(), &rpc.GetOrderRequest{OrderID: 999, UserID: 7})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListOrdersNewestFirst(t *testing.T) {
	carts := &fakeCart{carts: map[int64]aggregator.Cart{7: twoBookCart(7)}}
	srv := NewOrderServer(newTestRepo(t), nil, carts)

	first, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)
	second, err := srv.CreateOrder(context.Background(), &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)

	list, err := srv.ListOrders(context.Background(), &rpc.UserRef{UserID: 7})
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, second.OrderID, list.Orders[0].OrderID)
	assert.Equal(t, first.OrderID, list.Orders[1].OrderID)
	assert.Len(t, list.Orders[1].Items, 2)

	empty, err := srv.ListOrders(context.Background(), &rpc.UserRef{UserID: 8})
	require.NoError(t, err)
	assert.Empty(t, empty.Orders)

	_, err = srv.ListOrders(context.Background(), &rpc.UserRef{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestCartClientValidatesItems(t *testing.T) {
	api := stubCartAPI{view: &rpc.CartView{UserID: 7, Items: []*rpc.CartItem{
		{BookID: 1, Title: "a", UnitPrice: rpc.Money{Cents: 100}, Qty: 1},
		{BookID: 1, Title: "a", UnitPrice: rpc.Money{Cents: 100}, Qty: 2},
	}}}
	c, err := NewCartClient(api).GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.EqualValues(t, 3, c.Items[0].Qty)

	api.view.Items = append(api.view.Items, &rpc.CartItem{BookID: 2, Qty: 0})
	_, err = NewCartClient(api).GetCart(context.Background(), 7)
	assert.ErrorIs(t, err, aggregator.ErrInvalidItem)
}

type stubCartAPI struct {
	rpc.CartClient
	view *rpc.CartView
}

func (s stubCartAPI) GetCart(context.Context, *rpc.UserRef, ...grpc.CallOption) (*rpc.CartView, error) {
	return s.view, nil
}

func TestCancelOrder(t *testing.T) {
	repo := newTestRepo(t)
	pub := &recordingPublisher{}
	srv := NewOrderServer(repo, pub, &fakeCart{carts: map[int64]aggregator.Cart{7: twoBookCart(7)}})
	ctx := context.Background()

	o, err := srv.CreateOrder(ctx, &rpc.CreateOrderRequest{UserID: 7, Shipping: shipping})
	require.NoError(t, err)

	_, err = srv.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 8})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = srv.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: o.OrderID})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	cancelled, err := srv.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, rpc.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, o.Total, cancelled.Total)

	require.Len(t, pub.msgs, 2)
	assert.Equal(t, RKOrderCancelled, pub.msgs[1].rk)
	assert.Equal(t, OrderCancelledPayload{OrderID: o.OrderID, UserID: 7, TotalCents: 25880}, pub.msgs[1].v)

	stored, err := srv.GetOrder(ctx, &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, rpc.OrderStatusCancelled, stored.Status)

	_, err = srv.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: o.OrderID, UserID: 7})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.Len(t, pub.msgs, 2)

	_, err = srv.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: 999, UserID: 7})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGRPCServerRegistration(t *testing.T) {
	srv, _ := newGRPCServer(NewOrderServer(newTestRepo(t), nil, &fakeCart{}))
	info := srv.GetServiceInfo()
	assert.Contains(t, info, "bookcart.order.Order")
	assert.Contains(t, info, healthpb.Health_ServiceDesc.ServiceName)
	assert.NotContains(t, info, "grpc.reflection.v1.ServerReflection")
}
