package service

import (
	"errors"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/data/dto"
	"github.com/emzola/bookcatalog/internal/validator"
	"github.com/emzola/bookcatalog/repository"
)

type books interface {
	ListBooks() ([]*data.Book, error)
	GetBook(bookID string) (*data.Book, error)
	CreateBook(requestBody dto.BookRequestBody) (*data.Book, error)
	UpdateBook(bookID string, requestBody dto.BookRequestBody) (*data.Book, error)
	DeleteBook(bookID string) error
}

// ListBooks service retrieves every book, newest first.
func (s *service) ListBooks() ([]*data.Book, error) {
	return s.repo.GetAllBooks()
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID string) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// CreateBook service creates a new book. A cover image supplied as raw bytes
// is uploaded before the record is inserted; the upload is not undone if the
// insert fails.
func (s *service) CreateBook(requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.bookFromRequest(requestBody)
	if err != nil {
		return nil, err
	}
	err = s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return book, nil
}

// UpdateBook service replaces every mutable field of a book.
func (s *service) UpdateBook(bookID string, requestBody dto.BookRequestBody) (*data.Book, error) {
	book, err := s.bookFromRequest(requestBody)
	if err != nil {
		return nil, err
	}
	book.ID = bookID
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return book, nil
}

// DeleteBook service deletes a book. Its cover image, if any, stays in blob storage.
func (s *service) DeleteBook(bookID string) error {
	err := s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// bookFromRequest validates a request body and maps it onto a book. When the
// body carries image bytes they are uploaded and their URL replaces image_url.
// Nothing is uploaded for an invalid body.
func (s *service) bookFromRequest(requestBody dto.BookRequestBody) (*data.Book, error) {
	v := validator.New()
	v.Struct(requestBody)
	book := &data.Book{
		Title:       requestBody.Title,
		Author:      requestBody.Author,
		Isbn:        requestBody.Isbn,
		Genre:       requestBody.Genre,
		Description: requestBody.Description,
		Price:       requestBody.Price.Float64(),
		ImageURL:    requestBody.ImageURL,
	}
	data.ValidateBook(v, book)
	var image []byte
	if requestBody.Base64Image != "" {
		var err error
		image, err = decodeBase64Image(requestBody.Base64Image)
		if err != nil {
			v.AddError("base64Image", "must be a base64 encoded image")
		}
	}
	if !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	if image != nil {
		url, err := s.uploadCover(image)
		if err != nil {
			return nil, err
		}
		book.ImageURL = url
	}
	return book, nil
}
