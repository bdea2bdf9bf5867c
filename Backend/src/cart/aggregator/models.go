package aggregator

import "fmt"

// Cart es la lista ordenada de líneas de un usuario. Orden = orden de inserción.
type Cart struct {
	UserID int64
	Items  []LineItem
}

// LineItem copia los datos de presentación del libro al momento del primer add.
type LineItem struct {
	BookID    int64
	Title     string
	Author    string
	CoverURL  string
	UnitPrice Money
	Qty       int32
}

// Book is the catalog entry a line item is built from.
type Book struct {
	ID       int64
	Title    string
	Author   string
	CoverURL string
	Price    Money
}

func newLineItem(b Book, qty int32) LineItem {
	return LineItem{
		BookID:    b.ID,
		Title:     b.Title,
		Author:    b.Author,
		CoverURL:  b.CoverURL,
		UnitPrice: b.Price,
		Qty:       qty,
	}
}

// Validate checks a record decoded from storage or the wire.
func Validate(it LineItem) error {
	switch {
	case it.BookID == 0:
		return fmt.Errorf("%w: missing book id", ErrInvalidItem)
	case it.Qty < 1:
		return fmt.Errorf("%w: book %d: %v", ErrInvalidItem, it.BookID, ErrInvalidQuantity)
	case it.UnitPrice.Cents < 0:
		return fmt.Errorf("%w: book %d: negative price", ErrInvalidItem, it.BookID)
	}
	return nil
}

// FromItems arma un Cart a partir de registros externos: valida cada uno y junta
// ids repetidos en una sola línea (queda la primera posición, se suman cantidades).
func FromItems(userID int64, items []LineItem) (Cart, error) {
	out := Cart{UserID: userID, Items: make([]LineItem, 0, len(items))}
	idx := make(map[int64]int, len(items))
	for _, it := range items {
		if err := Validate(it); err != nil {
			return Cart{}, err
		}
		if i, ok := idx[it.BookID]; ok {
			merged, err := addQty(out.Items[i].Qty, it.Qty)
			if err != nil {
				return Cart{}, fmt.Errorf("%w: book %d: %v", ErrInvalidItem, it.BookID, err)
			}
			out.Items[i].Qty = merged
			continue
		}
		idx[it.BookID] = len(out.Items)
		out.Items = append(out.Items, it)
	}
	return out, nil
}
