package data

import (
	"time"

	"github.com/emzola/bookcatalog/internal/validator"
)

// ScopeCover is the object key prefix for uploaded cover images.
const ScopeCover = "bookcovers"

// Book defines a book model. Every field is always serialized so clients can
// rely on image_url being present even when it is empty.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Isbn        string    `json:"isbn"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidateBook checks the domain rules of a book before it is persisted.
// ISBN uniqueness is left to the store.
func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(book.Author != "", "author", "must be provided")
	v.Check(book.Isbn != "", "isbn", "must be provided")
	v.Check(book.Genre != "", "genre", "must be provided")
	v.Check(book.Description != "", "description", "must be provided")
	v.Check(book.Price >= 0, "price", "must not be negative")
}
