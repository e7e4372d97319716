package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned when a price is neither a JSON number nor a numeric string.
var ErrInvalidPrice = errors.New("price must be a number")

// BookRequestBody defines the request body shared by CreateBook and UpdateBook.
// Both operations replace every mutable field, so they accept the same set.
// Base64Image, when set, holds raw cover image bytes that are uploaded to blob
// storage; the resulting URL takes the place of ImageURL.
//
// ID, CreatedAt and Image are accepted so a client can send back a Book it
// fetched, or a form state carrying a file handle, but they are never read.
type BookRequestBody struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Isbn        string `json:"isbn" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       *Price `json:"price" validate:"required,gte=0"`
	ImageURL    string `json:"image_url" validate:"max=2048"`
	Base64Image string `json:"base64Image"`

	ID        json.RawMessage `json:"id,omitempty" swaggerignore:"true"`
	CreatedAt json.RawMessage `json:"created_at,omitempty" swaggerignore:"true"`
	Image     json.RawMessage `json:"image,omitempty" swaggerignore:"true"`
}

// Price is a book price. Browsers submitting form values often send numbers
// as strings, so both 12.5 and "12.5" decode to the same value.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidPrice
		}
		b = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrInvalidPrice
	}
	*p = Price(f)
	return nil
}

// Float64 returns the price, or zero when it was not supplied.
func (p *Price) Float64() float64 {
	if p == nil {
		return 0
	}
	return float64(*p)
}
