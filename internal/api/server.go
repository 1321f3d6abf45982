// Package api exposes the simulator over a versioned REST surface plus a
// websocket endpoint for live quotes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/synthfeed/internal/cache"
	"github.com/synthfeed/internal/simulator"
	"github.com/synthfeed/internal/symbols"
	ws "github.com/synthfeed/internal/websocket"
	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/logger"
)

// Server represents the HTTP API server.
type Server struct {
	cfg        *config.Config
	logger     *logrus.Logger
	router     *mux.Router
	httpServer *http.Server

	symbols    *symbols.Manager
	market     *simulator.MarketClock
	redisCache *cache.RedisClient // nil when caching is disabled
	wsHub      *ws.Hub            // nil when websocket streaming is disabled
}

// NewServer creates a new API server.
func NewServer(
	cfg *config.Config,
	log *logrus.Logger,
	symbolsMgr *symbols.Manager,
	market *simulator.MarketClock,
	redisCache *cache.RedisClient,
	wsHub *ws.Hub,
) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     log,
		symbols:    symbolsMgr,
		market:     market,
		redisCache: redisCache,
		wsHub:      wsHub,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	s.router.Use(logger.Middleware(s.logger))
	s.router.Use(s.recoveryMiddleware)

	apiV1 := s.router.PathPrefix("/api/v1").Subrouter()

	apiV1.HandleFunc("/health", s.handleHealth).Methods("GET")

	apiV1.HandleFunc("/symbols", s.handleGetSymbols).Methods("GET")
	apiV1.HandleFunc("/symbols/{symbol}", s.handleGetSymbol).Methods("GET")
	apiV1.HandleFunc("/symbols/{symbol}/quote", s.handleGetQuote).Methods("GET")
	apiV1.HandleFunc("/symbols/{symbol}/bars", s.handleGetBars).Methods("GET")
	apiV1.HandleFunc("/symbols/{symbol}/series/extended", s.handleGetExtended).Methods("GET")

	if s.wsHub != nil {
		apiV1.HandleFunc("/ws", s.wsHub.HandleWebSocket).Methods("GET")
	}
}

// Handler returns the root handler with CORS applied when enabled.
func (s *Server) Handler() http.Handler {
	if !s.cfg.Security.CORSEnabled {
		return s.router
	}
	return handlers.CORS(
		handlers.AllowedOrigins(s.cfg.Security.CORSOrigins),
		handlers.AllowedMethods(s.cfg.Security.CORSMethods),
		handlers.AllowedHeaders(s.cfg.Security.CORSHeaders),
	)(s.router)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := s.cfg.GetServerAddr()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.WithField("addr", addr).Info("API server listening")

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server failed")
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}

// recoveryMiddleware converts handler panics into 500 responses.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.WithFields(logrus.Fields{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("Handler panic")
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// handleHealth reports component health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"symbols": s.symbols.Count(),
		"market":  s.market.State(),
	}

	if s.redisCache != nil {
		if err := s.redisCache.Health(r.Context()); err != nil {
			health["status"] = "degraded"
			health["redis"] = err.Error()
		} else {
			health["redis"] = "ok"
		}
	}
	if s.wsHub != nil {
		health["ws_clients"] = s.wsHub.ClientCount()
	}

	s.writeJSON(w, http.StatusOK, health)
}
