package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server timeouts. Create and update requests may carry a 5 MB inline cover
// that is uploaded before the response is written, so writes get a longer
// deadline than reads.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 45 * time.Second
	idleTimeout     = time.Minute
	shutdownTimeout = 5 * time.Second
)

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests and stops the handler's background work.
func (a *app) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.handler.Routes(),
		ErrorLog:     log.New(a.logger, "", 0),
		IdleTimeout:  idleTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	shutdownError := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		a.logger.PrintInfo("shutting down server", map[string]string{
			"signal": s.String(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(ctx)
		a.handler.Stop()
		shutdownError <- err
	}()

	a.logger.PrintInfo("starting server", map[string]string{
		"addr":      srv.Addr,
		"env":       a.config.Server.Env,
		"blob":      a.config.Blob.Driver,
		"limiter":   fmt.Sprint(a.config.Limiter.Enabled),
		"log_level": a.config.Log.Level,
	})
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownError; err != nil {
		return err
	}
	a.logger.PrintInfo("stopped server", map[string]string{
		"addr": srv.Addr,
	})
	return nil
}
