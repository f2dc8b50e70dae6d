package httpapi

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/evlampy/storeboard/internal/apisrv/auth"
	"github.com/evlampy/storeboard/internal/apisrv/dashboard"
	"github.com/evlampy/storeboard/internal/ratelimit"
)

// Config is the configuration for the http server.
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
}

// Server is the http server.
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server.
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Start begins serving the dashboard API and returns immediately.
func (s *Server) Start(ctx context.Context, svc *dashboard.Server, authSrv *auth.Server) error {
	s.hs = &http.Server{
		Addr:              s.c.Address + ":" + s.c.Port,
		Handler:           s.router(svc, authSrv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server serving",
			slog.String("addr", s.hs.Addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func (s *Server) router(svc *dashboard.Server, authSrv *auth.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	limit := s.c.RateLimit
	if limit <= 0 {
		limit = 60
	}
	window := s.c.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	limiter := ratelimit.NewLimiter(window, limit)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	h := &handlers{svc: svc, auth: authSrv}

	r.Post("/auth/login", h.login)

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(jwtauth.Verifier(authSrv.JwtAuth))
		r.Use(jwtauth.Authenticator(authSrv.JwtAuth))

		r.Get("/dashboard", h.getOverview)
		r.Get("/reports/sales", h.getSalesReport)
		r.Get("/reports/profit", h.getProfitReport)
		r.Get("/reports/customers", h.getCustomerReport)
		r.Get("/insights/basket", h.getBasket)
		r.Get("/insights/segments", h.getSegments)
		r.Get("/insights/velocity", h.getVelocity)
		r.Get("/insights/forecast", h.getForecast)
		r.Get("/campaigns", h.getCampaigns)

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.listExpenses)
			r.Post("/", h.addExpense)
			r.Get("/{id}", h.getExpense)
			r.Put("/{id}", h.updateExpense)
			r.Delete("/{id}", h.deleteExpense)
		})
	})

	return r
}
