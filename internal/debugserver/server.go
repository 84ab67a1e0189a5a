// Package debugserver exposes the dashboard internals over HTTP while it
// runs: liveness, Prometheus metrics and a summary of the session.
package debugserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"wukong/internal/state"
	"wukong/pkg/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const subsystem = "DebugServer"

// QueueDepther reports the number of pending network events.
type QueueDepther interface {
	QueueDepth() int
}

// Server is the debug HTTP handler.
type Server struct {
	router   *chi.Mux
	session  *state.Session
	queue    QueueDepther
	gatherer prometheus.Gatherer
}

// New creates the server. A nil gatherer serves the default registry.
func New(session *state.Session, queue QueueDepther, gatherer prometheus.Gatherer) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		router:   chi.NewRouter(),
		session:  session,
		queue:    queue,
		gatherer: gatherer,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	// the terminal belongs to the dashboard, so no request logger
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/debug/session", s.sessionSummary)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type panelSummary struct {
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
	Denied   bool   `json:"denied,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Fetched  uint64 `json:"fetched"`
}

type sessionSummary struct {
	Application string                  `json:"application"`
	Namespace   string                  `json:"namespace"`
	Version     string                  `json:"version"`
	Okta        string                  `json:"okta"`
	GCloud      string                  `json:"gcloud"`
	Panels      map[string]panelSummary `json:"panels"`
	LogBuffer   struct {
		ID        string `json:"id"`
		Size      int    `json:"size"`
		Capacity  int    `json:"capacity"`
		Truncated bool   `json:"truncated"`
		Evicted   int64  `json:"evicted"`
		Newest    string `json:"newest,omitempty"`
		Severity  string `json:"severity"`
		TimeRange string `json:"timeRange"`
	} `json:"logBuffer"`
	QueueDepth int `json:"queueDepth"`
}

func (s *Server) sessionSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.session.Snapshot()

	out := sessionSummary{
		Application: snap.Application,
		Namespace:   snap.Selection.Namespace,
		Version:     snap.Selection.Version,
		Okta:        snap.Okta.String(),
		GCloud:      snap.GCloud.String(),
		Panels:      make(map[string]panelSummary, len(snap.Panels)),
	}
	for i, st := range snap.Panels {
		out.Panels[state.Panel(i).String()] = panelSummary{
			Loading:  st.Loading,
			Error:    st.Err,
			Denied:   st.Denied,
			Disabled: st.Disabled,
			Fetched:  st.Fetched,
		}
	}
	out.LogBuffer.ID = snap.LogBufferID
	out.LogBuffer.Size = len(snap.LogEntries)
	out.LogBuffer.Capacity = snap.LogCapacity
	out.LogBuffer.Truncated = snap.LogsTruncated
	out.LogBuffer.Evicted = snap.LogsEvicted
	out.LogBuffer.Newest = snap.LogsNewest
	out.LogBuffer.Severity = snap.Severity.String()
	out.LogBuffer.TimeRange = snap.TimeRange
	if s.queue != nil {
		out.QueueDepth = s.queue.QueueDepth()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		logging.Error(subsystem, err, "encode session summary")
	}
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(subsystem, "listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
