// Package api memod REST API
//
// @title           memod REST API
// @version         1.0.0
// @description     REST API for memod, an in-memory memo store.
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/swaggo/swag"

	"github.com/ssargent/memod/pkg/logger"
)

const swaggerIndex = `<!DOCTYPE html>
<html>
<head>
	 <title>memod API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/doc.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// Router builds the HTTP handler with all routes configured
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(instanceMiddleware(s.store.InstanceID()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{headerRequestID, headerInstance},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.RequireAuth {
			r.Use(apiKeyMiddleware(s.config.APIKey, s.metrics))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/stats", s.metrics.InstrumentHandler("GET", "/api/v1/stats", s.handleStats))

		r.Post("/memos", s.metrics.InstrumentHandler("POST", "/api/v1/memos", s.handleCreateMemo))
		r.Get("/memos", s.metrics.InstrumentHandler("GET", "/api/v1/memos", s.handleListMemos))
		r.Get("/memos/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/memos/{id}", s.handleGetMemo))
		r.Put("/memos/{id}", s.metrics.InstrumentHandler("PUT", "/api/v1/memos/{id}", s.handleUpdateMemo))
		r.Delete("/memos/{id}", s.metrics.InstrumentHandler("DELETE", "/api/v1/memos/{id}", s.handleDeleteMemo))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerIndex))
	case "/swagger/doc.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.logger.Errorw("failed to render swagger doc", "err", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	default:
		http.NotFound(w, r)
	}
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	done := make(chan struct{})
	defer close(done)
	go s.startMetricsUpdater(done, s.config.MetricsInterval)

	s.logger.Infow("starting memod REST API server",
		"addr", ln.Addr().String(),
		"instance_id", s.store.InstanceID(),
		"auth", s.config.RequireAuth,
		"metrics", s.metrics != nil,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Infow("shutting down", "timeout", s.config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// StartServer listens on config.Addr and serves store until ctx is cancelled
func StartServer(ctx context.Context, store IMemoStore, config ServerConfig, lggr logger.Logger) error {
	if lggr == nil {
		lggr = logger.Nop()
	}

	var metrics *Metrics
	if config.MetricsEnabled {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	ln, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Addr, err)
	}

	SwaggerInfo.Host = ln.Addr().String()

	server := NewServer(store, config, metrics, lggr.Named("api"))
	return server.Run(ctx, ln)
}
