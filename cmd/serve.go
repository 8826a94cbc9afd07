package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/frostline/freezethaw-cli/internal/query"
	"github.com/frostline/freezethaw-cli/internal/seasondata"
	"github.com/frostline/freezethaw-cli/internal/trend"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP query API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("query"); err != nil {
			return err
		}

		provider, closer, err := newProvider(ctx)
		if err != nil {
			return err
		}
		defer closer()

		svc := query.NewService(provider, trend.WithRecentWindow(cfg.Query.RecentWindow))

		router := newRouter(provider, svc, cfg.Server.RateLimit)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter wires the API routes with recovery, CORS, and an optional
// global rate limit.
func newRouter(provider seasondata.Provider, svc *query.Service, rateLimit float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	if rateLimit > 0 {
		r.Use(rateLimitMiddleware(rate.Limit(rateLimit)))
	}

	api := &apiHandlers{provider: provider, svc: svc}

	r.Get("/health", api.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/seasons", api.seasons)
		r.Get("/states", api.states)
		r.Get("/stations", api.stations)
		r.Get("/query", api.query)
	})

	return r
}

// rateLimitMiddleware applies one shared token bucket across all clients.
// The API fronts a small engineering tool, not a public service; a global
// limit is enough to keep a misbehaving script from hammering the provider.
func rateLimitMiddleware(limit rate.Limit) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, int(limit)+1)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
