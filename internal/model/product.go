package model

// Product is a catalog entry. Prices are whole currency units (IDR has no
// minor unit in practice).
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

// CategoryAll is the category selection that matches every product.
const CategoryAll = "all"
