package main

import (
	"errors"
	"expvar"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/emzola/bookcatalog/clients"
	"github.com/emzola/bookcatalog/config"
	"github.com/emzola/bookcatalog/handler"
	"github.com/emzola/bookcatalog/internal/jsonlog"
	"github.com/emzola/bookcatalog/repository"
	"github.com/emzola/bookcatalog/repository/postgres"
	"github.com/emzola/bookcatalog/service"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	handler *handler.Handler
}

// @title Book Catalog API
// @version 1.0.0
// @description CRUD API for a book catalog with cover image uploads.
// @BasePath /api
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a YAML config file (environment variables override it)")
	flag.Parse()

	// Initialize configuration
	cfg, err := config.Decode(configPath)
	if err != nil {
		jsonlog.New(os.Stdout, jsonlog.LevelInfo).PrintFatal(err, nil)
	}
	logger := jsonlog.New(os.Stdout, jsonlog.ParseLevel(cfg.Log.Level))
	if cfg.Database.DSN == "" {
		logger.PrintFatal(errors.New("DSN must be set"), nil)
	}

	// Initialize database connection and schema
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)
	err = postgres.Migrate(db)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Blob storage for cover images
	blob, err := clients.NewBlobStore(cfg, clients.NewHTTPClient())
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	if blob == nil {
		logger.PrintInfo("blob storage not configured, cover image uploads are disabled", map[string]string{
			"driver": cfg.Blob.Driver,
		})
	}

	expvar.NewString("version").Set(handler.Version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, logger, repo, blob)
	handler := handler.New(cfg, logger, service)

	app := &app{
		config:  cfg,
		logger:  logger,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
