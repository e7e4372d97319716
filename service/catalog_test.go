package service

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/emzola/bookcatalog/data"
	"github.com/emzola/bookcatalog/data/dto"
	"github.com/emzola/bookcatalog/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository is an in-memory Repository honouring the same contract as
// the PostgreSQL one: unique ISBNs, store-assigned ids and timestamps.
type memoryRepository struct {
	mu    sync.Mutex
	books map[string]data.Book
	clock time.Time
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		books: make(map[string]data.Book),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryRepository) isbnTaken(isbn, exceptID string) bool {
	for id, b := range m.books {
		if b.Isbn == isbn && id != exceptID {
			return true
		}
	}
	return false
}

func (m *memoryRepository) CreateBook(book *data.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isbnTaken(book.Isbn, "") {
		return repository.ErrDuplicateRecord
	}
	m.clock = m.clock.Add(time.Second)
	book.ID = uuid.NewString()
	book.CreatedAt = m.clock
	m.books[book.ID] = *book
	return nil
}

func (m *memoryRepository) GetBook(bookID string) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[bookID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &b, nil
}

func (m *memoryRepository) GetAllBooks() ([]*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := make([]*data.Book, 0, len(m.books))
	for _, b := range m.books {
		b := b
		books = append(books, &b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].CreatedAt.After(books[j].CreatedAt) })
	return books, nil
}

func (m *memoryRepository) UpdateBook(book *data.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.books[book.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	if m.isbnTaken(book.Isbn, book.ID) {
		return repository.ErrDuplicateRecord
	}
	book.CreatedAt = existing.CreatedAt
	m.books[book.ID] = *book
	return nil
}

func (m *memoryRepository) DeleteBook(bookID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[bookID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.books, bookID)
	return nil
}

func (m *memoryRepository) Ping() error {
	return nil
}

func requestWithIsbn(isbn string) dto.BookRequestBody {
	req := duneRequest()
	req.Isbn = isbn
	req.Title = "Book " + isbn
	return req
}

func TestCatalogListsNewestFirst(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	const n = 5
	for i := 0; i < n; i++ {
		_, err := s.CreateBook(requestWithIsbn(fmt.Sprintf("isbn-%d", i)))
		require.NoError(t, err)
	}

	books, err := s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, n)
	for i := 1; i < n; i++ {
		assert.True(t, books[i-1].CreatedAt.After(books[i].CreatedAt))
	}
	assert.Equal(t, "isbn-4", books[0].Isbn)
}

func TestCatalogDuplicateIsbnAddsOneRecord(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)

	_, err := s.CreateBook(duneRequest())
	require.NoError(t, err)
	_, err = s.CreateBook(duneRequest())
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	books, err := s.ListBooks()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestCatalogUpdateUnknownLeavesStoreUnchanged(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	created, err := s.CreateBook(duneRequest())
	require.NoError(t, err)

	req := duneRequest()
	req.Price = price(99)
	_, err = s.UpdateBook("unknown-id", req)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	books, err := s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, *created, *books[0])
}

func TestCatalogUpdateKeepsIdAndCreatedAt(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	created, err := s.CreateBook(duneRequest())
	require.NoError(t, err)

	req := duneRequest()
	req.Price = price(15)
	updated, err := s.UpdateBook(created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	books, err := s.ListBooks()
	require.NoError(t, err)
	assert.Equal(t, 15.0, books[0].Price)
}

func TestCatalogUpdateToTakenIsbn(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	_, err := s.CreateBook(requestWithIsbn("first"))
	require.NoError(t, err)
	second, err := s.CreateBook(requestWithIsbn("second"))
	require.NoError(t, err)

	_, err = s.UpdateBook(second.ID, requestWithIsbn("first"))
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	_, err = s.UpdateBook(second.ID, requestWithIsbn("second"))
	assert.NoError(t, err, "keeping its own isbn is not a conflict")
}

func TestCatalogDeleteRemovesExactlyOne(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	keep, err := s.CreateBook(requestWithIsbn("keep"))
	require.NoError(t, err)
	drop, err := s.CreateBook(requestWithIsbn("drop"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteBook("unknown-id"), ErrRecordNotFound)
	require.NoError(t, s.DeleteBook(drop.ID))

	books, err := s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, keep.ID, books[0].ID)
}

func TestCatalogRoundTrip(t *testing.T) {
	s := newTestService(newMemoryRepository(), nil)
	created, err := s.CreateBook(duneRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	books, err := s.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 1)
	got := *books[0]
	got.ID, got.CreatedAt = "", time.Time{}
	assert.Equal(t, data.Book{
		Title:       "Dune",
		Author:      "Herbert",
		Isbn:        "9780441013593",
		Genre:       "SciFi",
		Description: "...",
		Price:       12.5,
		ImageURL:    "http://x/y.jpg",
	}, got)
}
