package handler

import (
	"sync"
	"time"

	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/service"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's rate limiter survives without requests.
const clientIdleTTL = 3 * time.Minute

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	mu      sync.Mutex
	clients *ttlcache.Cache[string, *rate.Limiter]
	service service.Service
}

// New creates a new instance of Handler. Stop must be called to release the
// rate limiter's expiry goroutine.
func New(cfg config.Config, logger *jsonlog.Logger, service service.Service) *Handler {
	clients := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](clientIdleTTL))
	go clients.Start()
	return &Handler{
		config:  cfg,
		logger:  logger,
		clients: clients,
		service: service,
	}
}

// Stop halts the background expiry of idle rate limiter clients.
func (h *Handler) Stop() {
	h.clients.Stop()
}
