package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/omni-data/gridline/lib/config"
	"github.com/omni-data/gridline/lib/destination"
	"github.com/omni-data/gridline/lib/rowset"
	"github.com/omni-data/gridline/lib/telemetry/metrics/base"
)

const shutdownTimeout = 10 * time.Second

// Destination is the slice of the warehouse the web process drives.
type Destination interface {
	Fetch(ctx context.Context, table config.Table, limit int) (*rowset.RowSet, error)
	Merge(ctx context.Context, table config.Table, rows *rowset.RowSet) (destination.MergeResult, error)
	Insert(ctx context.Context, table config.Table, row rowset.Row) error
}

type Server struct {
	cfg           config.Config
	destination   Destination
	metricsClient base.Client
	// writeLimiter throttles upserts and inserts across all clients, the
	// warehouse behind us is not built for herds of tiny writes.
	writeLimiter *rate.Limiter
}

func New(cfg config.Config, dest Destination, metricsClient base.Client) *Server {
	writesPerMinute := cfg.Web.WritesPerMinute
	return &Server{
		cfg:           cfg,
		destination:   dest,
		metricsClient: metricsClient,
		writeLimiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(writesPerMinute)), writesPerMinute),
	}
}

func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(requestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/", s.handleGrid)
	router.Post("/upload", s.handleUpsert)
	router.Post("/rows", s.handleInsert)
	router.Post("/export.csv", s.handleExport)

	return router
}

// Run serves until ctx is cancelled, then drains in flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Web.BindAddress,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("Starting the web process...", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// requestLogger tags every request with a fresh identifier and logs one line
// once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		wrapped := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(wrapped, r)

		slog.Info("Request served",
			slog.String("requestID", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}
