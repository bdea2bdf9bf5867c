package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const catalogService = "bookcart.catalog.Catalog"

type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       Money  `json:"price"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	CreatedUnix int64  `json:"created_unix"`
}

type GetBookRequest struct {
	ID int64 `json:"id"`
}

type ListBooksRequest struct {
	Q        string `json:"q,omitempty"`
	Page     int32  `json:"page,omitempty"`
	PageSize int32  `json:"page_size,omitempty"`
}

type PageResponse struct {
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
	TotalPages int32 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
}

type ListBooksResponse struct {
	Items []*Book       `json:"items"`
	Page  *PageResponse `json:"page"`
}

type CatalogServer interface {
	ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error)
	GetBook(context.Context, *GetBookRequest) (*Book, error)
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogService,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListBooks",
			Handler: unary("/"+catalogService+"/ListBooks", func(srv any, ctx context.Context, in *ListBooksRequest) (*ListBooksResponse, error) {
				return srv.(CatalogServer).ListBooks(ctx, in)
			}),
		},
		{
			MethodName: "GetBook",
			Handler: unary("/"+catalogService+"/GetBook", func(srv any, ctx context.Context, in *GetBookRequest) (*Book, error) {
				return srv.(CatalogServer).GetBook(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "bookcart/catalog",
}

type CatalogClient interface {
	ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error)
}

type catalogClient struct{ cc grpc.ClientConnInterface }

func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient { return &catalogClient{cc: cc} }

func (c *catalogClient) ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error) {
	return invoke[ListBooksResponse](ctx, c.cc, "/"+catalogService+"/ListBooks", in, opts)
}

func (c *catalogClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*Book, error) {
	return invoke[Book](ctx, c.cc, "/"+catalogService+"/GetBook", in, opts)
}
