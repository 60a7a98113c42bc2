package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is a catalog product as returned by the product API.
type Product struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	Rating             Rating   `json:"rating"`
	Stock              int      `json:"stock,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
}

// Rating is a product rating. The live API sends a bare number; persisted
// records and some mirrors send {"rate":..,"count":..}. Both decode.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// UnmarshalJSON accepts either a JSON number or a {rate, count} object.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Rating{}
		return nil
	}

	if data[0] == '{' {
		type plain Rating
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("decode rating object: %w", err)
		}
		*r = Rating(p)
		return nil
	}

	var rate float64
	if err := json.Unmarshal(data, &rate); err != nil {
		return fmt.Errorf("decode rating: %w", err)
	}
	*r = Rating{Rate: rate}
	return nil
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Category is a product category. Older API versions return bare slugs.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// UnmarshalJSON accepts either a slug string or a {slug, name, url} object.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var slug string
		if err := json.Unmarshal(data, &slug); err != nil {
			return fmt.Errorf("decode category: %w", err)
		}
		*c = Category{Slug: slug, Name: slug}
		return nil
	}

	type plain Category
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode category object: %w", err)
	}
	if p.Name == "" {
		p.Name = p.Slug
	}
	*c = Category(p)
	return nil
}
