// Package web provides an HTTP server for the dashboard.
//
// The server exposes the dashboard command handlers as a JSON API and pushes
// a reload event to connected browsers after every successful refresh. Feeds
// can be refreshed on demand, on a cron schedule, or whenever a local CSV
// feed changes on disk.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/telemetry"
)

// Server serves a Dashboard over HTTP.
type Server struct {
	Port      int
	Host      string
	Version   string
	StaticDir string
	// Schedule is a cron expression for periodic refreshes. Empty disables
	// scheduled refreshes.
	Schedule string
	// WatchFiles are local feed files that trigger a refresh when changed.
	WatchFiles []string

	dashboard *dashboard.Dashboard
	log       logrus.FieldLogger

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithAddress sets the host and port to listen on.
func WithAddress(host string, port int) Option {
	return func(s *Server) {
		s.Host = host
		s.Port = port
	}
}

// WithLogger sets the logger for requests and refresh outcomes.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithVersion sets the version reported by /api/version.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.Version = version
	}
}

// WithStaticDir serves the frontend from dir instead of the embedded page.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.StaticDir = dir
	}
}

// WithSchedule refreshes the dashboard on the given cron schedule.
func WithSchedule(spec string) Option {
	return func(s *Server) {
		s.Schedule = spec
	}
}

// WithWatch refreshes the dashboard whenever one of files changes.
func WithWatch(files ...string) Option {
	return func(s *Server) {
		s.WatchFiles = files
	}
}

// New creates a server for d listening on 127.0.0.1:8080 by default.
func New(d *dashboard.Dashboard, opts ...Option) *Server {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	s := &Server{
		Port:       8080,
		Host:       "127.0.0.1",
		dashboard:  d,
		log:        quiet,
		sseClients: make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the feeds once, starts the watcher and scheduler when
// configured and serves HTTP until ctx is cancelled. A failing initial load
// is logged and the server starts with an empty dashboard.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	loadCtx := telemetry.WithTimer(ctx, timer.Child("web.initial_refresh"))
	if _, err := s.refresh(loadCtx); err != nil {
		s.log.WithError(err).Warn("initial refresh failed")
	}

	if len(s.WatchFiles) > 0 {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	if s.Schedule != "" {
		if err := s.startScheduler(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	router := s.setupRouter()
	setupTimer.End()
	timer.End()

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.WithField("addr", addr).Info("starting server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) setupRouter() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)

	api.HandleFunc("/version", s.handleGetVersion).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.handleGetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/filters", s.handlePostFilters).Methods(http.MethodPost)
	api.HandleFunc("/expenses", s.handleGetExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses/sort", s.handlePostExpenseSort).Methods(http.MethodPost)
	api.HandleFunc("/receipts", s.handleGetReceipts).Methods(http.MethodGet)
	api.HandleFunc("/receipts/sort", s.handlePostReceiptSort).Methods(http.MethodPost)

	api.HandleFunc("/charts/{chart}/{index:[0-9]+}", s.handleChartClick).Methods(http.MethodGet)
	api.HandleFunc("/ledger", s.handleGetLedger).Methods(http.MethodGet)
	api.HandleFunc("/ledger/filters", s.handlePostLedgerFilters).Methods(http.MethodPost)
	api.HandleFunc("/ledger/{account}", s.handleOpenLedger).Methods(http.MethodGet)
	api.HandleFunc("/suppliers/filters", s.handlePostSupplierFilters).Methods(http.MethodPost)
	api.HandleFunc("/suppliers/{supplier}", s.handleOpenSupplier).Methods(http.MethodGet)
	api.HandleFunc("/worktypes/{workType}", s.handleGetWorkType).Methods(http.MethodGet)

	api.HandleFunc("/accounts", s.handleGetAccounts).Methods(http.MethodGet)
	api.HandleFunc("/reconcile", s.handleGetReconcile).Methods(http.MethodGet)
	api.HandleFunc("/feeds/{feed}", s.handleGetFeed).Methods(http.MethodGet)
	api.HandleFunc("/events", s.handleSSE).Methods(http.MethodGet)

	s.mountAssets(r)

	return r
}

// logRequests logs every API request with its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

// refresh reloads the feeds and tells connected clients to reload.
func (s *Server) refresh(ctx context.Context) (*dashboard.View, error) {
	view, err := s.dashboard.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	s.broadcast("reload")
	return view, nil
}
