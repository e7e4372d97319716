package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/emzola/bookcatalog/data"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

// isbnConstraint is the UNIQUE constraint on books.isbn declared by the schema.
const isbnConstraint = "books_isbn_key"

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID string) (*data.Book, error)
	GetAllBooks() ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID string) error
}

// CreateBook creates a new book record. The record ID is generated here and
// created_at is assigned by the database.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (id, title, author, isbn, genre, description, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`
	id := uuid.NewString()
	args := []interface{}{id, book.Title, book.Author, book.Isbn, book.Genre, book.Description, book.Price, book.ImageURL}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.CreatedAt)
	if err != nil {
		if isDuplicateIsbn(err) {
			return ErrDuplicateRecord
		}
		return err
	}
	book.ID = id
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID string) (*data.Book, error) {
	if bookID == "" {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, title, author, isbn, genre, description, price, image_url, created_at
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Isbn,
		&book.Genre,
		&book.Description,
		&book.Price,
		&book.ImageURL,
		&book.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// GetAllBooks retrieves every book record, newest first.
func (r *repository) GetAllBooks() ([]*data.Book, error) {
	query := `
		SELECT id, title, author, isbn, genre, description, price, image_url, created_at
		FROM books
		ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Isbn,
			&book.Genre,
			&book.Description,
			&book.Price,
			&book.ImageURL,
			&book.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook overwrites every mutable field of a book record. The row is read
// back by the same statement, so book reflects what was stored.
func (r *repository) UpdateBook(book *data.Book) error {
	if book.ID == "" {
		return ErrRecordNotFound
	}
	query := `
		UPDATE books
		SET title = $1, author = $2, isbn = $3, genre = $4, description = $5, price = $6, image_url = $7
		WHERE id = $8
		RETURNING created_at`
	args := []interface{}{
		book.Title,
		book.Author,
		book.Isbn,
		book.Genre,
		book.Description,
		book.Price,
		book.ImageURL,
		book.ID,
	}
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case isDuplicateIsbn(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(bookID string) error {
	if bookID == "" {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func isDuplicateIsbn(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	// Tables created before the constraint was named carry a generated name.
	return pqErr.Constraint == isbnConstraint || strings.Contains(pqErr.Constraint, "isbn")
}
