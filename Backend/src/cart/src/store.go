package main

import (
	"context"

	"github.com/ahinestrog/bookcart/Backend/src/cart/aggregator"
)

// CartStore es el puerto de persistencia: se lee el carrito completo al inicio
// de cada request y se escribe completo después de cada mutación.
// Un carrito inexistente se carga vacío. Gana la última escritura.
type CartStore interface {
	Load(ctx context.Context, userID int64) (aggregator.Cart, error)
	Save(ctx context.Context, c aggregator.Cart) error
}
