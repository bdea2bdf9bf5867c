package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const orderService = "bookcart.order.Order"

// Estados de la orden.
const (
	OrderStatusCreated   = "created"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

type Shipping struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrderItem struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Qty       int32  `json:"qty"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type Order struct {
	OrderID     int64        `json:"order_id"`
	UserID      int64        `json:"user_id"`
	Status      string       `json:"status"`
	Items       []*OrderItem `json:"items"`
	Total       Money        `json:"total"`
	Shipping    Shipping     `json:"shipping"`
	CreatedUnix int64        `json:"created_unix"`
}

type CreateOrderRequest struct {
	UserID   int64    `json:"user_id"`
	Shipping Shipping `json:"shipping"`
}

type GetOrderRequest struct {
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

type OrderServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*Order, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
	ListOrders(context.Context, *UserRef) (*ListOrdersResponse, error)
	CancelOrder(context.Context, *GetOrderRequest) (*Order, error)
}

func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&orderServiceDesc, srv)
}

var orderServiceDesc = grpc.ServiceDesc{
	ServiceName: orderService,
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler: unary("/"+orderService+"/CreateOrder", func(srv any, ctx context.Context, in *CreateOrderRequest) (*Order, error) {
				return srv.(OrderServer).CreateOrder(ctx, in)
			}),
		},
		{
			MethodName: "GetOrder",
			Handler: unary("/"+orderService+"/GetOrder", func(srv any, ctx context.Context, in *GetOrderRequest) (*Order, error) {
				return srv.(OrderServer).GetOrder(ctx, in)
			}),
		},
		{
			MethodName: "ListOrders",
			Handler: unary("/"+orderService+"/ListOrders", func(srv any, ctx context.Context, in *UserRef) (*ListOrdersResponse, error) {
				return srv.(OrderServer).ListOrders(ctx, in)
			}),
		},
		{
			MethodName: "CancelOrder",
			Handler: unary("/"+orderService+"/CancelOrder", func(srv any, ctx context.Context, in *GetOrderRequest) (*Order, error) {
				return srv.(OrderServer).CancelOrder(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookcart/order",
}

type OrderClient interface {
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
	ListOrders(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	CancelOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
}

type orderClient struct{ cc grpc.ClientConnInterface }

func NewOrderClient(cc grpc.ClientConnInterface) OrderClient { return &orderClient{cc: cc} }

func (c *orderClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+orderService+"/CreateOrder", in, opts)
}

func (c *orderClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+orderService+"/GetOrder", in, opts)
}

func (c *orderClient) ListOrders(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, "/"+orderService+"/ListOrders", in, opts)
}

func (c *orderClient) CancelOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, "/"+orderService+"/CancelOrder", in, opts)
}
