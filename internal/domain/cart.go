package domain

// CartItem is a single cart line. Price is snapshotted when the product is
// first added and never re-fetched.
type CartItem struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// NewCartItem builds a quantity-one line from a product, using its
// thumbnail as the line image.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		Image:    p.Thumbnail,
		Quantity: 1,
	}
}

// FindCartItem returns the index of the line with the given product id, or -1.
func FindCartItem(items []CartItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the product with the given id, or -1.
func FindProduct(items []Product, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
