package models

// CartItem is one session cart line. Prices are never stored here; they are
// looked up from the catalog every time the cart is read or checked out.
type CartItem struct {
	ProductID uint   `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

func (c CartItem) SameLine(productID uint, size string) bool {
	return c.ProductID == productID && c.Size == size
}
