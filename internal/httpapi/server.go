// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/tasknest/tasknest/internal/auth"
	"github.com/tasknest/tasknest/internal/observability"
	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/validate"
)

// AuthService is the authentication surface the API needs.
// *auth.Service satisfies it.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*auth.User, string, error)
	Login(ctx context.Context, email, password string) (*auth.User, string, error)
	VerifySession(ctx context.Context, token string) (*auth.User, error)
}

// ListService is the task list surface the API needs.
// *tasks.ListService satisfies it.
type ListService interface {
	Create(ctx context.Context, ownerID ulid.ULID, name, description string) (*tasks.TaskList, error)
	List(ctx context.Context, ownerID ulid.ULID) ([]*tasks.TaskList, error)
	Get(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskList, error)
	Update(ctx context.Context, id, ownerID ulid.ULID, patch tasks.ListPatch) (*tasks.TaskList, error)
	Delete(ctx context.Context, id, ownerID ulid.ULID) error
}

// TaskService is the task surface the API needs.
// *tasks.TaskService satisfies it.
type TaskService interface {
	Create(ctx context.Context, ownerID ulid.ULID, params tasks.CreateTaskParams) (*tasks.TaskView, error)
	List(ctx context.Context, ownerID ulid.ULID, filters tasks.TaskFilters) ([]*tasks.TaskView, error)
	Get(ctx context.Context, id, ownerID ulid.ULID) (*tasks.TaskView, error)
	Update(ctx context.Context, id, ownerID ulid.ULID, patch tasks.TaskPatch) (*tasks.TaskView, error)
	Delete(ctx context.Context, id, ownerID ulid.ULID) error
	ListByList(ctx context.Context, listID, ownerID ulid.ULID) ([]*tasks.Task, string, error)
}

// Config carries the dependencies for NewServer.
type Config struct {
	Addr      string
	Auth      AuthService
	Lists     ListService
	Tasks     TaskService
	Validator *validate.Validator

	// Metrics is optional; nil disables request metrics.
	Metrics *observability.Metrics
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Server serves the TaskNest REST API.
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	router     *mux.Router

	auth      AuthService
	lists     ListService
	tasks     TaskService
	validator *validate.Validator
	metrics   *observability.Metrics
	logger    *slog.Logger

	running atomic.Bool
}

// NewServer creates the API server and wires its routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Auth == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cfg.Lists == nil {
		return nil, oops.Errorf("list service is required")
	}
	if cfg.Tasks == nil {
		return nil, oops.Errorf("task service is required")
	}
	if cfg.Validator == nil {
		return nil, oops.Errorf("validator is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:      cfg.Addr,
		auth:      cfg.Auth,
		lists:     cfg.Lists,
		tasks:     cfg.Tasks,
		validator: cfg.Validator,
		metrics:   cfg.Metrics,
		logger:    logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the routed handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverPanics, s.requestLogger)
	r.NotFoundHandler = http.HandlerFunc(handleRouteNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleRouteNotFound)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.requireAuth)
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)

	authed.HandleFunc("/lists", s.handleListCreate).Methods(http.MethodPost)
	authed.HandleFunc("/lists", s.handleListIndex).Methods(http.MethodGet)
	authed.HandleFunc("/lists/{id}", s.handleListShow).Methods(http.MethodGet)
	authed.HandleFunc("/lists/{id}", s.handleListUpdate).Methods(http.MethodPut)
	authed.HandleFunc("/lists/{id}", s.handleListDelete).Methods(http.MethodDelete)
	authed.HandleFunc("/lists/{id}/tasks", s.handleListTasks).Methods(http.MethodGet)

	authed.HandleFunc("/tasks", s.handleTaskCreate).Methods(http.MethodPost)
	authed.HandleFunc("/tasks", s.handleTaskIndex).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", s.handleTaskShow).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", s.handleTaskUpdate).Methods(http.MethodPut)
	authed.HandleFunc("/tasks/{id}", s.handleTaskDelete).Methods(http.MethodDelete)

	return r
}

// handleRouteNotFound answers unmatched routes and method mismatches with
// the standard envelope instead of the router's plain-text default.
func handleRouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Message: fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path),
	})
}

// Start begins serving the API.
// It returns an error channel that will receive any errors from the HTTP
// server after it starts. The channel is closed when the server stops
// gracefully.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("api server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			s.logger.Error("api server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	s.logger.Info("api server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_api_server").Wrap(err)
		}
	}

	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
