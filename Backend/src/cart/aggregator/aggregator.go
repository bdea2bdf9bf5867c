// Operaciones de carrito. Todas son puras: reciben un Cart y devuelven uno nuevo,
// nunca modifican el de entrada.
package aggregator

import "math"

func (c Cart) clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{UserID: c.UserID, Items: items}
}

func (c Cart) index(bookID int64) int {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			return i
		}
	}
	return -1
}

func addQty(a, b int32) (int32, error) {
	if int64(a)+int64(b) > math.MaxInt32 {
		return 0, ErrInvalidQuantity
	}
	return a + b, nil
}

// AddItem suma qty a la línea del libro o agrega una línea nueva al final.
func AddItem(c Cart, b Book, qty int32) (Cart, error) {
	if qty < 1 {
		return c, ErrInvalidQuantity
	}
	out := c.clone()
	if i := out.index(b.ID); i >= 0 {
		n, err := addQty(out.Items[i].Qty, qty)
		if err != nil {
			return c, err
		}
		out.Items[i].Qty = n
		return out, nil
	}
	out.Items = append(out.Items, newLineItem(b, qty))
	return out, nil
}

// RemoveItem is a no-op when bookID is absent.
func RemoveItem(c Cart, bookID int64) Cart {
	out := Cart{UserID: c.UserID, Items: make([]LineItem, 0, len(c.Items))}
	for _, it := range c.Items {
		if it.BookID != bookID {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

// SetQuantity reemplaza la cantidad. Si el libro no está, devuelve el carrito igual.
func SetQuantity(c Cart, bookID int64, qty int32) (Cart, error) {
	if qty < 1 {
		return c, ErrInvalidQuantity
	}
	out := c.clone()
	if i := out.index(bookID); i >= 0 {
		out.Items[i].Qty = qty
	}
	return out, nil
}

func Clear(c Cart) Cart {
	return Cart{UserID: c.UserID, Items: []LineItem{}}
}

func TotalQuantity(c Cart) int64 {
	var n int64
	for _, it := range c.Items {
		n += int64(it.Qty)
	}
	return n
}

func LineSubtotal(it LineItem) Money { return it.UnitPrice.Mul(it.Qty) }

func TotalAmount(c Cart) Money {
	var total Money
	for _, it := range c.Items {
		total = total.Add(LineSubtotal(it))
	}
	return total
}

func IsEmpty(c Cart) bool { return len(c.Items) == 0 }

// Find devuelve ErrItemNotFound si el libro no está en el carrito.
func Find(c Cart, bookID int64) (LineItem, error) {
	if i := c.index(bookID); i >= 0 {
		return c.Items[i], nil
	}
	return LineItem{}, ErrItemNotFound
}

// Reprice refresca título, autor, portada y precio con datos frescos del catálogo.
// Las líneas sin entrada en books quedan como estaban.
func Reprice(c Cart, books map[int64]Book) Cart {
	out := c.clone()
	for i, it := range out.Items {
		b, ok := books[it.BookID]
		if !ok {
			continue
		}
		out.Items[i] = newLineItem(b, it.Qty)
	}
	return out
}
