package service

import (
	"time"

	"github.com/emzola/bookcatalog/clients"
	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/emzola/bookcatalog/service Service

type Service interface {
	books
	Healthcheck() error
}

// Services defines a service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
	blob   clients.BlobStore
	now    func() time.Time
}

// New creates a new instance of Service. blob may be nil, in which case
// requests carrying image bytes fail with ErrBlobStoreDisabled.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository, blob clients.BlobStore) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
		blob:   blob,
		now:    time.Now,
	}
}

// Healthcheck reports whether the store is reachable.
func (s *service) Healthcheck() error {
	return s.repo.Ping()
}
