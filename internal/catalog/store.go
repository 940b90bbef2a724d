package catalog

import "github.com/nhle/taskshop/internal/model"

// Store is the read-only product catalog.
type Store struct {
	products []model.Product
	byID     map[string]int
}

// NewStore builds a catalog over products. The slice is copied; later
// changes by the caller are not observed.
func NewStore(products []model.Product) *Store {
	s := &Store{
		products: append([]model.Product(nil), products...),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range s.products {
		if _, dup := s.byID[p.ID]; !dup {
			s.byID[p.ID] = i
		}
	}
	return s
}

// NewSeededStore returns the catalog with the built-in product set.
func NewSeededStore() *Store {
	return NewStore(Seed())
}

// List returns every product in seed order.
func (s *Store) List() []model.Product {
	return append([]model.Product(nil), s.products...)
}

// Get looks a product up by id.
func (s *Store) Get(id string) (model.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return model.Product{}, false
	}
	return s.products[i], true
}

// Categories returns "all" followed by each distinct category in the order
// it first appears.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	out := []string{model.CategoryAll}
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// Related returns up to limit other products sharing id's category.
func (s *Store) Related(id string, limit int) []model.Product {
	p, ok := s.Get(id)
	if !ok || limit <= 0 {
		return nil
	}
	var out []model.Product
	for _, other := range s.products {
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		out = append(out, other)
		if len(out) == limit {
			break
		}
	}
	return out
}
