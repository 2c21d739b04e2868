package models

import "time"

type Collection struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	ProductIDs []string  `json:"productIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewCollection starts a collection from its first product. A product
// without images yields an empty image.
func NewCollection(id, name string, first *Product, now time.Time) *Collection {
	c := &Collection{
		ID:         id,
		Name:       name,
		Image:      first.CanonicalImage(),
		ProductIDs: []string{},
		CreatedAt:  now,
	}
	if first != nil {
		c.ProductIDs = append(c.ProductIDs, first.ID)
	}
	return c
}

func (c *Collection) Contains(productID string) bool {
	for _, id := range c.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

// AddProduct appends productID unless already present.
func (c *Collection) AddProduct(productID string) bool {
	if c.Contains(productID) {
		return false
	}
	c.ProductIDs = append(c.ProductIDs, productID)
	return true
}

func (c *Collection) Clone() Collection {
	out := *c
	out.ProductIDs = append([]string{}, c.ProductIDs...)
	return out
}
