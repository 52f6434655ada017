// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package web serves the CSV upload page and the JSON API for background geocoding jobs.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wneessen/geocsv/internal/config"
	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/pipeline"
	"github.com/wneessen/geocsv/internal/service"
)

const shutdownTimeout = 10 * time.Second

//go:embed static
var staticFiles embed.FS

// Jobs is the part of the geocoding service the HTTP front-end depends on.
type Jobs interface {
	Provider() string
	Submit(input io.Reader) (string, error)
	Job(id string) (service.JobInfo, error)
	Result(id string) (*pipeline.Output, error)
}

// Server is the HTTP front-end of the geocoding service.
type Server struct {
	jobs   Jobs
	config *config.Config
	logger *logger.Logger
	router *chi.Mux
	index  *template.Template
}

func NewServer(jobs Jobs, conf *config.Config, log *logger.Logger) (*Server, error) {
	index, err := template.ParseFS(staticFiles, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse upload page template: %w", err)
	}

	s := &Server{
		jobs:   jobs,
		config: conf,
		logger: log,
		router: chi.NewRouter(),
		index:  index,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/jobs/{id}", s.handleJob)
		r.Get("/jobs/{id}/preview", s.handlePreview)
		r.Get("/jobs/{id}/download", s.handleDownload)
	})
}

// ServeHTTP makes the Server usable as http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves HTTP on the given address until the context is canceled and then shuts
// the server down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := new(net.ListenConfig).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on the listener until the context is canceled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", slog.String("addr", listener.Addr().String()),
			slog.String("provider", s.jobs.Provider()))
		errChan <- server.Serve(listener)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
