package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/ahinestrog/bookcart/Backend/src/rpc"
)

type Server struct {
	books   rpc.CatalogClient
	cart    rpc.CartClient
	orders  rpc.OrderClient
	timeout time.Duration
}

func NewServer(books rpc.CatalogClient, cart rpc.CartClient, orders rpc.OrderClient, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Server{books: books, cart: cart, orders: orders, timeout: timeout}
}

// Handler arma el router gin envuelto en CORS.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) { respondOK(c, gin.H{"status": "ok"}) })
	r.GET("/api/books", s.listBooks)
	r.GET("/api/books/:id", s.getBook)

	api := r.Group("/api", requireUser())
	{
		api.GET("/cart", s.getCart)
		api.POST("/cart/items", s.addItem)
		api.GET("/cart/items/:id", s.getItem)
		api.PATCH("/cart/items/:id", s.setQuantity)
		api.DELETE("/cart/items/:id", s.removeItem)
		api.POST("/cart/clear", s.clearCart)

		api.POST("/orders", s.checkout)
		api.GET("/orders", s.listOrders)
		api.GET("/orders/:id", s.getOrder)
		api.POST("/orders/:id/cancel", s.cancelOrder)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-User-ID"},
		AllowCredentials: true,
	}).Handler(r)
}

func (s *Server) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) getCart(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	cv, err := s.cart.GetCart(ctx, &rpc.UserRef{UserID: currentUser(c)})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toCartVM(cv))
}

type addItemBody struct {
	BookID   int64  `json:"book_id" binding:"required"`
	Quantity *int32 `json:"quantity"`
}

func (s *Server) addItem(c *gin.Context) {
	var body addItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	qty := int32(1)
	if body.Quantity != nil {
		qty = *body.Quantity
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	cv, err := s.cart.AddItem(ctx, &rpc.AddItemRequest{UserID: currentUser(c), BookID: body.BookID, Qty: qty})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toCartVM(cv))
}

func (s *Server) getItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	it, err := s.cart.GetItem(ctx, &rpc.ItemRef{UserID: currentUser(c), BookID: id})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toItemVM(it))
}

type quantityBody struct {
	Quantity *int32 `json:"quantity" binding:"required"`
}

func (s *Server) setQuantity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body quantityBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	cv, err := s.cart.SetQuantity(ctx, &rpc.SetQuantityRequest{UserID: currentUser(c), BookID: id, Qty: *body.Quantity})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toCartVM(cv))
}

func (s *Server) removeItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	cv, err := s.cart.RemoveItem(ctx, &rpc.ItemRef{UserID: currentUser(c), BookID: id})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toCartVM(cv))
}

func (s *Server) clearCart(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	cv, err := s.cart.ClearCart(ctx, &rpc.UserRef{UserID: currentUser(c)})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toCartVM(cv))
}

type checkoutBody struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

func (s *Server) checkout(c *gin.Context) {
	var body checkoutBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "name, phone and address are required")
		return
	}
	uid := currentUser(c)
	ctx, cancel := s.ctx(c)
	defer cancel()

	// 1. Crear la orden; el servicio de órdenes lee el carrito y recalcula totales
	o, err := s.orders.CreateOrder(ctx, &rpc.CreateOrderRequest{
		UserID: uid,
		Shipping: rpc.Shipping{
			Name:    strings.TrimSpace(body.Name),
			Phone:   strings.TrimSpace(body.Phone),
			Address: strings.TrimSpace(body.Address),
		},
	})
	if err != nil {
		respondRPCError(c, err)
		return
	}

	// 2. Vaciar el carrito; si falla la orden ya existe y no se revierte
	if _, err := s.cart.ClearCart(ctx, &rpc.UserRef{UserID: uid}); err != nil {
		log.Warn().Err(err).Int64("order", o.OrderID).Int64("user", uid).Msg("[checkout] clear cart failed")
	}

	log.Info().Int64("order", o.OrderID).Int64("user", uid).Int64("total_cents", o.Total.Cents).Msg("[checkout] order created")
	// el front valida data.code === 200 en todas las respuestas exitosas
	c.JSON(http.StatusCreated, Envelope{Code: http.StatusOK, Message: "order created", Data: toOrderVM(o)})
}

func (s *Server) listOrders(c *gin.Context) {
	ctx, cancel := s.ctx(c)
	defer cancel()
	resp, err := s.orders.ListOrders(ctx, &rpc.UserRef{UserID: currentUser(c)})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	out := make([]OrderVM, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		out = append(out, toOrderVM(o))
	}
	respondOK(c, out)
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	o, err := s.orders.GetOrder(ctx, &rpc.GetOrderRequest{OrderID: id, UserID: currentUser(c)})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	respondOK(c, toOrderVM(o))
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ctx, cancel := s.ctx(c)
	defer cancel()
	o, err := s.orders.CancelOrder(ctx, &rpc.GetOrderRequest{OrderID: id, UserID: currentUser(c)})
	if err != nil {
		respondRPCError(c, err)
		return
	}
	log.Info().Int64("order", o.OrderID).Int64("user", o.UserID).Msg("order cancelled")
	respondOK(c, toOrderVM(o))
}
