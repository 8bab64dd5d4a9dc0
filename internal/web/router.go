package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/web/handlers"
	"github.com/jusunglee/romanize/internal/web/middleware"
)

const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultRateLimit    = 60
)

type Options struct {
	// AllowedOrigins restricts CORS and websocket origins; empty allows all.
	AllowedOrigins []string
	// MaxBodyBytes caps POST bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// RateLimit is the number of romanize requests per IP per minute. Zero means
	// DefaultRateLimit.
	RateLimit int
}

type Router struct {
	svc     *romanization.Service
	repo    db.Repository
	log     *slog.Logger
	opts    Options
	limiter *middleware.IPRateLimiter
}

// NewRouter wires the API routes. repo may be nil when caching is disabled. The rate
// limiter's cleanup stops when ctx is cancelled.
func NewRouter(ctx context.Context, svc *romanization.Service, repo db.Repository, log *slog.Logger, opts Options) *Router {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	return &Router{
		svc:     svc,
		repo:    repo,
		log:     log,
		opts:    opts,
		limiter: middleware.NewRateLimiter(ctx, opts.RateLimit, time.Minute),
	}
}

func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	romanizeHandler := handlers.NewRomanizeHandler(r.svc, r.repo, r.log)
	streamHandler := handlers.NewStreamHandler(r.svc, r.log, r.opts.AllowedOrigins)

	mux.Handle("GET /api/v1/romanize",
		middleware.Chain(
			http.HandlerFunc(romanizeHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
			middleware.CacheControl("public, max-age=86400"),
		),
	)

	mux.Handle("POST /api/v1/romanize",
		middleware.Chain(
			http.HandlerFunc(romanizeHandler.Create),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
			middleware.MaxBody(r.opts.MaxBodyBytes),
		),
	)

	mux.Handle("POST /api/v1/romanize/batch",
		middleware.Chain(
			http.HandlerFunc(romanizeHandler.Batch),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
			middleware.MaxBody(r.opts.MaxBodyBytes),
		),
	)

	mux.Handle("GET /api/v1/romanize/stream",
		middleware.Chain(
			http.HandlerFunc(streamHandler.Stream),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(r.limiter),
		),
	)

	mux.Handle("GET /api/v1/romanizations",
		middleware.Chain(
			http.HandlerFunc(romanizeHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)

	return middleware.CORS(r.opts.AllowedOrigins)(mux)
}
