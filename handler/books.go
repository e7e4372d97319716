package handler

import (
	"fmt"
	"net/http"

	"github.com/emzola/bookcatalog/data/dto"
)

// @Summary List books
// @Description Return every book in the catalog, newest first.
// @Tags books
// @Produce json
// @Success 200 {array} data.Book
// @Failure 500 {object} envelope
// @Router /books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Show a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} data.Book
// @Failure 404 {object} envelope
// @Failure 500 {object} envelope
// @Router /books/{id} [get]
func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.bookNotFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(bookID)
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Create a book
// @Description Create a book. A base64Image field is uploaded to blob storage and its URL is stored as image_url.
// @Tags books
// @Accept json
// @Produce json
// @Param book body dto.BookRequestBody true "Book"
// @Success 201 {object} data.Book
// @Failure 400 {object} envelope
// @Failure 415 {object} envelope
// @Failure 422 {object} envelope
// @Failure 500 {object} envelope
// @Router /books [post]
func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.BookRequestBody
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(requestBody)
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/books/%s", book.ID))
	err = h.encodeJSON(w, http.StatusCreated, book, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Update a book
// @Description Replace every field of a book.
// @Tags books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param book body dto.BookRequestBody true "Book"
// @Success 200 {object} data.Book
// @Failure 400 {object} envelope
// @Failure 404 {object} envelope
// @Failure 415 {object} envelope
// @Failure 422 {object} envelope
// @Failure 500 {object} envelope
// @Router /books/{id} [put]
func (h *Handler) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.bookNotFoundResponse(w, r)
		return
	}
	var requestBody dto.BookRequestBody
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.UpdateBook(bookID, requestBody)
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// @Summary Delete a book
// @Tags books
// @Param id path string true "Book ID"
// @Success 204
// @Failure 404 {object} envelope
// @Failure 500 {object} envelope
// @Router /books/{id} [delete]
func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	bookID, err := h.readIDParam(r, "id")
	if err != nil {
		h.bookNotFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(bookID)
	if err != nil {
		h.serviceErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
