package cart

import "math"

// StorageKey es la key del carrito en el kv store.
const StorageKey = "cart"

// Item es una entrada del carrito. ItemID es único dentro del carrito.
type Item struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Badge es el contador visible del carrito.
// Render recibe el total y si debe mostrarse (total > 0).
type Badge interface {
	Render(count int, visible bool)
}

// BadgeFunc adapta una función a Badge.
type BadgeFunc func(count int, visible bool)

func (f BadgeFunc) Render(count int, visible bool) { f(count, visible) }

// Total suma las cantidades. Satura en math.MaxInt.
func Total(items []Item) int {
	n := 0
	for _, it := range items {
		if it.Quantity > math.MaxInt-n {
			return math.MaxInt
		}
		n += it.Quantity
	}
	return n
}
