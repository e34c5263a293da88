package fixture

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	"golang.org/x/time/rate"
)

// ServerConfig controls the fixture HTTP server.
type ServerConfig struct {
	Logger                *slog.Logger
	Now                   func() time.Time
	AllowedOrigins        []string
	Catalog               Catalog
	SuggestionsPerMinute  int
	CombinationsPerMinute int
}

// DefaultServerConfig mirrors the hosted service's published limits.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Catalog:               DefaultCatalog(),
		AllowedOrigins:        []string{"*"},
		SuggestionsPerMinute:  30,
		CombinationsPerMinute: 20,
	}
}

type handler struct {
	now     func() time.Time
	catalog Catalog
}

// NewRouter creates the chi router serving the three client endpoints.
func NewRouter(cfg ServerConfig) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	h := &handler{catalog: cfg.Catalog, now: cfg.Now}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Logger))

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(rateLimit(cfg.SuggestionsPerMinute)).Get("/suggestions/", h.suggestions)
		r.Get("/search", h.search)
		r.Get("/search/", h.search)
		r.With(rateLimit(cfg.CombinationsPerMinute)).Get("/streaming-combinations/", h.combinations)
	})

	return r
}

func (h *handler) suggestions(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.Popular
	items.Status = "success"
	writeJSON(w, http.StatusOK, items)
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"suggestions": h.catalog.Search(r.URL.Query().Get("query")),
	})
}

func (h *handler) combinations(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	params := r.URL.Query()

	req := Request{
		Teams:           params["teams"],
		StartDate:       start,
		MaxCombinations: defaultMaxCombinations,
		LiveOnly:        true,
	}
	if len(req.Teams) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "teams query parameter is required")
		return
	}
	if v := params.Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid start_date: %v", err))
			return
		}
		req.StartDate = t
	}
	if v := params.Get("max_combinations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusUnprocessableEntity, "max_combinations must be a positive integer")
			return
		}
		req.MaxCombinations = n
	}
	if v := params.Get("live_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "live_only must be a boolean")
			return
		}
		req.LiveOnly = b
	}

	report := h.catalog.Combine(req)
	report.Meta.ServerTime = start.UTC().Format(time.RFC3339)
	report.Meta.RequestDurationMS = float64(h.now().Sub(start).Milliseconds())

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status": "error",
		"detail": message,
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("fixture request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start))
		})
	}
}

type ipLimiter struct {
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	mu       sync.Mutex
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok := l.limiters[ip]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters[ip] = limiter
	return limiter
}

// rateLimit answers 429 once a client exceeds perMinute requests. Zero disables it.
func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil || ip == "" {
				ip = r.RemoteAddr
			}
			if !limiter.get(ip).Allow() {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
