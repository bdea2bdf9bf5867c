package main

// Eventos publicados por Cart
const (
	RKCartUpdated = "cart.updated"
	RKCartCleared = "cart.cleared"
)

type CartChangedPayload struct {
	UserID     int64 `json:"user_id"`
	Lines      int   `json:"lines"`
	TotalQty   int64 `json:"total_qty"`
	TotalCents int64 `json:"total_cents"`
}
