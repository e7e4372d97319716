package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/bookcatalog/data"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookColumns = []string{"id", "title", "author", "isbn", "genre", "description", "price", "image_url", "created_at"}

func newMockRepository(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return New(db), mock
}

func dune() *data.Book {
	return &data.Book{
		Title:       "Dune",
		Author:      "Herbert",
		Isbn:        "9780441013593",
		Genre:       "SciFi",
		Description: "...",
		Price:       12.5,
		ImageURL:    "http://x/y.jpg",
	}
}

func TestCreateBook(t *testing.T) {
	t.Run("assigns id and created_at", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		book := dune()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
			WithArgs(sqlmock.AnyArg(), book.Title, book.Author, book.Isbn, book.Genre, book.Description, book.Price, book.ImageURL).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		require.NoError(t, repo.CreateBook(book))
		_, err := uuid.Parse(book.ID)
		assert.NoError(t, err, "id should be a UUID")
		assert.Equal(t, createdAt, book.CreatedAt)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		book := dune()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "books_isbn_key"})

		err := repo.CreateBook(book)
		assert.ErrorIs(t, err, ErrDuplicateRecord)
		assert.Empty(t, book.ID)
	})

	t.Run("duplicate isbn on a table with a generated constraint name", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "books_isbn_unique"})

		assert.ErrorIs(t, repo.CreateBook(dune()), ErrDuplicateRecord)
	})

	t.Run("other unique violation is not a duplicate isbn", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "books_pkey"})

		err := repo.CreateBook(dune())
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrDuplicateRecord))
	})
}

func TestGetAllBooks(t *testing.T) {
	repo, mock := newMockRepository(t)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(bookColumns).
			AddRow("b", "Children of Dune", "Herbert", "9780593098233", "SciFi", "...", 9.99, "", newer).
			AddRow("a", "Dune", "Herbert", "9780441013593", "SciFi", "...", 12.5, "http://x/y.jpg", older))

	books, err := repo.GetAllBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "b", books[0].ID)
	assert.Equal(t, "a", books[1].ID)
	assert.Equal(t, 12.5, books[1].Price)
	assert.Equal(t, "http://x/y.jpg", books[1].ImageURL)
}

func TestGetAllBooksEmpty(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT (.+) FROM books").WillReturnRows(sqlmock.NewRows(bookColumns))

	books, err := repo.GetAllBooks()
	require.NoError(t, err)
	assert.NotNil(t, books, "empty list must encode as [] rather than null")
	assert.Empty(t, books)
}

func TestGetBook(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		createdAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("a").
			WillReturnRows(sqlmock.NewRows(bookColumns).
				AddRow("a", "Dune", "Herbert", "9780441013593", "SciFi", "...", 12.5, "", createdAt))

		book, err := repo.GetBook("a")
		require.NoError(t, err)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, createdAt, book.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetBook("nope")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("empty id never reaches the database", func(t *testing.T) {
		repo, _ := newMockRepository(t)
		_, err := repo.GetBook("")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestUpdateBook(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		createdAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		book := dune()
		book.ID = "a"
		book.Price = 15

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE books")).
			WithArgs(book.Title, book.Author, book.Isbn, book.Genre, book.Description, 15.0, book.ImageURL, "a").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		require.NoError(t, repo.UpdateBook(book))
		assert.Equal(t, createdAt, book.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		book := dune()
		book.ID = "nope"
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE books")).WillReturnError(sql.ErrNoRows)

		assert.ErrorIs(t, repo.UpdateBook(book), ErrRecordNotFound)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		book := dune()
		book.ID = "a"
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE books")).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "books_isbn_key"})

		assert.ErrorIs(t, repo.UpdateBook(book), ErrDuplicateRecord)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books")).
			WithArgs("a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteBook("a"))
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM books")).
			WithArgs("nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteBook("nope"), ErrRecordNotFound)
	})
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	assert.EqualError(t, New(db).Ping(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}
