// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package catalog

import (
	"sort"
	"strings"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// PlaceholderImage replaces missing product image URLs.
const PlaceholderImage = "https://via.placeholder.com/250x250?text=Sin+Imagen"

// Search sort orders.
const (
	SortRelevance = "relevance"  // catalog order
	SortPriceAsc  = "price_asc"  // cheapest first
	SortPriceDesc = "price_desc" // most expensive first
	SortPopular   = "popular"    // most reviewed first
)

// Product is display metadata for one product.
type Product struct {
	ID          string `json:"product_id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	PriceMinor  int64  `json:"price_minor"` // cents
	Price       string `json:"price"`       // formatted, e.g. "$12.34"
	ImageURL    string `json:"image_url"`
	ReviewCount int    `json:"review_count"`
}

// Catalog is an immutable set of products in source order.
type Catalog struct {
	products []Product
	byID     map[string]int
	// lowered name and brand, parallel to products
	names  []string
	brands []string
}

// New builds a catalog. Later duplicates of an id replace earlier ones in
// place. Empty image URLs get the placeholder and prices are formatted.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if strings.TrimSpace(p.ImageURL) == "" {
			p.ImageURL = PlaceholderImage
		}
		p.Price = FormatPrice(p.PriceMinor)

		if i, ok := c.byID[p.ID]; ok {
			c.products[i] = p
			c.names[i] = strings.ToLower(p.Name)
			c.brands[i] = strings.ToLower(p.Brand)
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
		c.names = append(c.names, strings.ToLower(p.Name))
		c.brands = append(c.brands, strings.ToLower(p.Brand))
	}
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// All returns every product ordered by name, then id.
func (c *Catalog) All() []Product {
	if c == nil {
		return []Product{}
	}
	out := append([]Product(nil), c.products...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ValidSort reports whether s is a known sort order. Empty means relevance.
func ValidSort(s string) bool {
	switch s {
	case "", SortRelevance, SortPriceAsc, SortPriceDesc, SortPopular:
		return true
	}
	return false
}

// Search returns products whose name or brand contains term, ignoring case.
// An empty term matches nothing.
func (c *Catalog) Search(term, order string) []Product {
	out := []Product{}
	term = strings.ToLower(strings.TrimSpace(term))
	if c == nil || term == "" {
		return out
	}

	for i := range c.products {
		if strings.Contains(c.names[i], term) || strings.Contains(c.brands[i], term) {
			out = append(out, c.products[i])
		}
	}

	sortProducts(out, order)
	return out
}

// MostReviewed returns up to n products with the most reviews.
func (c *Catalog) MostReviewed(n int) []Product {
	if c == nil || n <= 0 {
		return []Product{}
	}
	out := append([]Product(nil), c.products...)
	sortProducts(out, SortPopular)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Annotate returns metadata for the known ids, keyed by id.
func (c *Catalog) Annotate(ids []string) map[string]Product {
	out := make(map[string]Product, len(ids))
	if c == nil {
		return out
	}
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			out[id] = p
		}
	}
	return out
}

// PriceSummary describes catalog prices in major units.
func (c *Catalog) PriceSummary() recommend.Summary {
	if c == nil {
		return recommend.Describe(nil)
	}
	prices := make([]float64, len(c.products))
	for i := range c.products {
		prices[i] = float64(c.products[i].PriceMinor) / 100
	}
	return recommend.Describe(prices)
}

// sortProducts orders products in place. Relevance keeps the input order;
// the other orders break ties by ascending id.
func sortProducts(products []Product, order string) {
	var less func(a, b *Product) bool
	switch order {
	case SortPriceAsc:
		less = func(a, b *Product) bool { return a.PriceMinor < b.PriceMinor }
	case SortPriceDesc:
		less = func(a, b *Product) bool { return a.PriceMinor > b.PriceMinor }
	case SortPopular:
		less = func(a, b *Product) bool { return a.ReviewCount > b.ReviewCount }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := &products[i], &products[j]
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return a.ID < b.ID
	})
}
