package models

import "strings"

const (
	PropertyStyle       = "style"
	PropertyColorFamily = "color_family"
	PropertyFit         = "fit"
	PropertyFabric      = "fabric"
	PropertyOccasion    = "occasion"
)

// PropertyKeys lists the fixed property keys in their canonical order.
var PropertyKeys = []string{PropertyStyle, PropertyColorFamily, PropertyFit, PropertyFabric, PropertyOccasion}

type Properties struct {
	Style       string `json:"style,omitempty" bson:"style,omitempty"`
	ColorFamily string `json:"color_family,omitempty" bson:"color_family,omitempty"`
	Fit         string `json:"fit,omitempty" bson:"fit,omitempty"`
	Fabric      string `json:"fabric,omitempty" bson:"fabric,omitempty"`
	Occasion    string `json:"occasion,omitempty" bson:"occasion,omitempty"`
}

type PropertyPair struct {
	Key   string
	Value string
}

// Get returns the raw value stored under key, or "" for unknown keys.
func (p Properties) Get(key string) string {
	switch key {
	case PropertyStyle:
		return p.Style
	case PropertyColorFamily:
		return p.ColorFamily
	case PropertyFit:
		return p.Fit
	case PropertyFabric:
		return p.Fabric
	case PropertyOccasion:
		return p.Occasion
	}
	return ""
}

// Pairs returns the populated key/value pairs in PropertyKeys order.
// Blank values are skipped.
func (p Properties) Pairs() []PropertyPair {
	pairs := make([]PropertyPair, 0, len(PropertyKeys))
	for _, key := range PropertyKeys {
		value := p.Get(key)
		if strings.TrimSpace(value) == "" {
			continue
		}
		pairs = append(pairs, PropertyPair{Key: key, Value: value})
	}
	return pairs
}

// Product is a read-only catalog entry. Price is in the smallest currency unit.
type Product struct {
	ID            string     `json:"id" bson:"id"`
	Name          string     `json:"name" bson:"name"`
	Brand         string     `json:"brand" bson:"brand"`
	Price         int64      `json:"price" bson:"price"`
	Category      string     `json:"category" bson:"category"`
	Categories    []string   `json:"categories,omitempty" bson:"categories,omitempty"`
	Description   string     `json:"description,omitempty" bson:"description,omitempty"`
	ProductImages []string   `json:"product_images,omitempty" bson:"product_images,omitempty"`
	Properties    Properties `json:"properties" bson:"properties"`
}

// CanonicalImage returns the first product image or "".
func (p *Product) CanonicalImage() string {
	if p == nil || len(p.ProductImages) == 0 {
		return ""
	}
	return p.ProductImages[0]
}
