package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is the catalog record handed to the cart. Only the fields
// present are copied; the cart does not validate them.
type Product struct {
	ID          int64
	Name        string
	Description string
	Image       string
	Category    string
	Price       PriceText
	Rating      float64
}

// CartLineItem is a snapshot of a product taken when it was first added,
// plus the quantity. Quantity is always >= 1 while the item is in a cart.
type CartLineItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	Category    string    `json:"category,omitempty"`
	Price       PriceText `json:"price"`
	Rating      float64   `json:"rating"`
	Quantity    int       `json:"quantity"`
}

func NewCartLineItem(p Product) CartLineItem {
	return CartLineItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Quantity:    1,
	}
}

// PriceText is a localized display price such as "۴۵,۰۰۰" or "45,000 تومان".
// It must go through the price package before any arithmetic.
type PriceText string

// UnmarshalJSON accepts both strings and bare numbers, older snapshots
// stored prices as numbers.
func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}
		*p = PriceText(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price[%s] is neither string nor number: %w", data, err)
	}
	*p = PriceText(n.String())

	return nil
}
