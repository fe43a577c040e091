// Package server exposes a fintrack Store as a JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
)

// Server handles HTTP requests against a Store.
type Server struct {
	store  *fintrack.Store
	logger *log.Logger
	router *mux.Router
	cron   *cron.Cron
	done   chan struct{} // closed on shutdown, ends event streams
}

// New creates a new HTTP server for store.
func New(store *fintrack.Store, logger *log.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger,
		router: mux.NewRouter(),
		cron:   cron.New(),
		done:   make(chan struct{}),
	}
	s.setupRoutes()
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler { return s.router }

// ScheduleRefresh recomputes installment fields on the cron schedule spec,
// like "@daily" or "0 6 * * *". The schedule runs while Start is running.
func (s *Server) ScheduleRefresh(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		n := s.store.Refresh()
		s.logger.Info("refreshed installments", "changed", n)
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return nil
}

// Start serves on addr until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(func() { close(s.done) })

	s.cron.Start()
	defer s.cron.Stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) setupRoutes() {
	r := s.router
	r.HandleFunc("/state", s.withLogging(s.handleState)).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.withLogging(s.handleDashboard)).Methods(http.MethodGet)
	r.HandleFunc("/events", s.withLogging(s.handleEvents)).Methods(http.MethodGet)

	r.HandleFunc("/emis/{id}/autopay", s.withLogging(s.handleAutopay)).Methods(http.MethodPost)
	r.HandleFunc("/{collection:accounts|credit-cards|debit-cards}/{id}/transactions", s.withLogging(s.handleTransaction)).Methods(http.MethodPost)
	r.HandleFunc("/budgets/{id}/categories/{categoryId}", s.withLogging(s.handleBudgetCategory)).Methods(http.MethodPut)

	r.HandleFunc("/{collection}", s.withLogging(s.handleList)).Methods(http.MethodGet)
	r.HandleFunc("/{collection}", s.withLogging(s.handleAdd)).Methods(http.MethodPost)
	r.HandleFunc("/{collection}/{id}", s.withLogging(s.handleGet)).Methods(http.MethodGet)
	r.HandleFunc("/{collection}/{id}", s.withLogging(s.handleUpdate)).Methods(http.MethodPut)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.store.State())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, fintrack.NewDashboard(s.store.State()))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, c.list(s.store.State()))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	v, found := c.get(s.store.State(), id)
	if !found {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("%s %q not found", c.name, id), nil)
		return
	}
	s.respond(w, http.StatusOK, v)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	v, err := c.add(s.store, json.NewDecoder(r.Body))
	if err != nil {
		s.respondIntentError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, v)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.collection(w, r)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	found, err := c.update(s.store, id, json.NewDecoder(r.Body))
	if err != nil {
		s.respondIntentError(w, r, err)
		return
	}
	if !found {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("%s %q not found", c.name, id), nil)
		return
	}
	v, _ := c.get(s.store.State(), id)
	s.respond(w, http.StatusOK, v)
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	c := collections[vars["collection"]]
	id := vars["id"]
	if _, found := c.get(s.store.State(), id); !found {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("%s %q not found", c.name, id), nil)
		return
	}

	var draft fintrack.TransactionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid transaction", err)
		return
	}
	if draft.Date.IsZero() {
		draft.Date = s.store.Today()
	}
	tx, err := draft.Commit()
	if err == nil {
		tx, err = s.store.ApplyTransaction(id, tx, c.target)
	}
	if err != nil {
		s.respondIntentError(w, r, err)
		return
	}
	s.respond(w, http.StatusCreated, tx)
}

func (s *Server) handleAutopay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.store.ToggleEMIAutopay(id) {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("emi %q not found", id), nil)
		return
	}
	emi, _ := s.store.State().EMI(id)
	s.respond(w, http.StatusOK, emi)
}

func (s *Server) handleBudgetCategory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var c fintrack.BudgetCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid budget category", err)
		return
	}
	c.ID = vars["categoryId"]
	found, err := s.store.UpdateBudgetCategory(vars["id"], c)
	if err != nil {
		s.respondIntentError(w, r, err)
		return
	}
	if !found {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("budget category %q/%q not found", vars["id"], c.ID), nil)
		return
	}
	b, _ := s.store.State().Budget(vars["id"])
	s.respond(w, http.StatusOK, b)
}

// collection returns the collection named in the path, or responds 404.
func (s *Server) collection(w http.ResponseWriter, r *http.Request) (collection, bool) {
	name := mux.Vars(r)["collection"]
	c, ok := collections[name]
	if !ok {
		s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("unknown collection %q", name), nil)
	}
	return c, ok
}

// --- helpers ---

// respond writes v and logs a failure to do so.
func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	if err := s.writeJSON(w, status, v); err != nil {
		s.logger.Warn("failed to write json response", "err", err)
	}
}

// writeJSON encodes v as JSON with the given status and writes headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// respondIntentError maps an error returned by a Store intent or by decoding
// its body to a status.
func (s *Server) respondIntentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case fintrack.IsValidation(err):
		s.respondError(w, r, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, errBadBody):
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", err)
	default:
		s.respondError(w, r, http.StatusInternalServerError, "internal server error", err)
	}
}

// respondError logs the error and returns a minimal JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		s.logger.Warn("request error", "status", status, "msg", message, "err", err, "method", r.Method, "path", r.URL.Path)
	} else {
		s.logger.Warn("request error", "status", status, "msg", message, "method", r.Method, "path", r.URL.Path)
	}
	_ = s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// withLogging wraps a handler to log requests and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				s.respondError(w, r, http.StatusInternalServerError, "internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()
		next(w, r)
	}
}
