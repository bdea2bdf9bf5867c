package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const cartService = "bookcart.cart.Cart"

type CartItem struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author,omitempty"`
	CoverURL  string `json:"cover_url,omitempty"`
	Qty       int32  `json:"qty"`
	UnitPrice Money  `json:"unit_price"`
	LineTotal Money  `json:"line_total"`
}

type CartView struct {
	UserID   int64       `json:"user_id"`
	Items    []*CartItem `json:"items"`
	TotalQty int64       `json:"total_qty"`
	Total    Money       `json:"total"`
}

type ItemRef struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
}

type AddItemRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
	Qty    int32 `json:"qty"`
}

type SetQuantityRequest struct {
	UserID int64 `json:"user_id"`
	BookID int64 `json:"book_id"`
	Qty    int32 `json:"qty"`
}

type CartServer interface {
	GetCart(context.Context, *UserRef) (*CartView, error)
	GetItem(context.Context, *ItemRef) (*CartItem, error)
	AddItem(context.Context, *AddItemRequest) (*CartView, error)
	SetQuantity(context.Context, *SetQuantityRequest) (*CartView, error)
	RemoveItem(context.Context, *ItemRef) (*CartView, error)
	ClearCart(context.Context, *UserRef) (*CartView, error)
}

func RegisterCartServer(s grpc.ServiceRegistrar, srv CartServer) {
	s.RegisterService(&cartServiceDesc, srv)
}

var cartServiceDesc = grpc.ServiceDesc{
	ServiceName: cartService,
	HandlerType: (*CartServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCart",
			Handler: unary("/"+cartService+"/GetCart", func(srv any, ctx context.Context, in *UserRef) (*CartView, error) {
				return srv.(CartServer).GetCart(ctx, in)
			}),
		},
		{
			MethodName: "GetItem",
			Handler: unary("/"+cartService+"/GetItem", func(srv any, ctx context.Context, in *ItemRef) (*CartItem, error) {
				return srv.(CartServer).GetItem(ctx, in)
			}),
		},
		{
			MethodName: "AddItem",
			Handler: unary("/"+cartService+"/AddItem", func(srv any, ctx context.Context, in *AddItemRequest) (*CartView, error) {
				return srv.(CartServer).AddItem(ctx, in)
			}),
		},
		{
			MethodName: "SetQuantity",
			Handler: unary("/"+cartService+"/SetQuantity", func(srv any, ctx context.Context, in *SetQuantityRequest) (*CartView, error) {
				return srv.(CartServer).SetQuantity(ctx, in)
			}),
		},
		{
			MethodName: "RemoveItem",
			Handler: unary("/"+cartService+"/RemoveItem", func(srv any, ctx context.Context, in *ItemRef) (*CartView, error) {
				return srv.(CartServer).RemoveItem(ctx, in)
			}),
		},
		{
			MethodName: "ClearCart",
			Handler: unary("/"+cartService+"/ClearCart", func(srv any, ctx context.Context, in *UserRef) (*CartView, error) {
				return srv.(CartServer).ClearCart(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookcart/cart",
}

type CartClient interface {
	GetCart(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*CartView, error)
	GetItem(ctx context.Context, in *ItemRef, opts ...grpc.CallOption) (*CartItem, error)
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartView, error)
	SetQuantity(ctx context.Context, in *SetQuantityRequest, opts ...grpc.CallOption) (*CartView, error)
	RemoveItem(ctx context.Context, in *ItemRef, opts ...grpc.CallOption) (*CartView, error)
	ClearCart(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*CartView, error)
}

type cartClient struct{ cc grpc.ClientConnInterface }

func NewCartClient(cc grpc.ClientConnInterface) CartClient { return &cartClient{cc: cc} }

func (c *cartClient) GetCart(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*CartView, error) {
	return invoke[CartView](ctx, c.cc, "/"+cartService+"/GetCart", in, opts)
}

func (c *cartClient) GetItem(ctx context.Context, in *ItemRef, opts ...grpc.CallOption) (*CartItem, error) {
	return invoke[CartItem](ctx, c.cc, "/"+cartService+"/GetItem", in, opts)
}

func (c *cartClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartView, error) {
	return invoke[CartView](ctx, c.cc, "/"+cartService+"/AddItem", in, opts)
}

func (c *cartClient) SetQuantity(ctx context.Context, in *SetQuantityRequest, opts ...grpc.CallOption) (*CartView, error) {
	return invoke[CartView](ctx, c.cc, "/"+cartService+"/SetQuantity", in, opts)
}

func (c *cartClient) RemoveItem(ctx context.Context, in *ItemRef, opts ...grpc.CallOption) (*CartView, error) {
	return invoke[CartView](ctx, c.cc, "/"+cartService+"/RemoveItem", in, opts)
}

func (c *cartClient) ClearCart(ctx context.Context, in *UserRef, opts ...grpc.CallOption) (*CartView, error) {
	return invoke[CartView](ctx, c.cc, "/"+cartService+"/ClearCart", in, opts)
}
