package repository

import (
	"context"
	"database/sql"
	"time"
)

// queryTimeout bounds every statement. Statements run detached from the
// request context.
const queryTimeout = 3 * time.Second

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/emzola/bookcatalog/repository Repository

type Repository interface {
	books
	Ping() error
}

// Repository defines the app's repository layer.
type repository struct {
	db *sql.DB
}

// New creates a new instance of Repository.
func New(db *sql.DB) *repository {
	return &repository{db: db}
}

// Ping verifies the database is reachable.
func (r *repository) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
