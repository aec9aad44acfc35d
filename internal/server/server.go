package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/casevault/internal/catalog"
	"github.com/osse101/casevault/internal/database"
	"github.com/osse101/casevault/internal/handler"
	"github.com/osse101/casevault/internal/logger"
	"github.com/osse101/casevault/internal/lootbox"
	"github.com/osse101/casevault/internal/metrics"
	"github.com/osse101/casevault/internal/vault"
)

// Options are the transport settings of the server
type Options struct {
	Port               int
	APIKey             string // empty disables authentication
	TrustedProxies     []string
	CORSAllowedOrigins []string
	MaxRequestBytes    int64
	HandlerTimeout     time.Duration
}

// Services are the domain services the routes expose
type Services struct {
	Catalog   *catalog.Catalog
	Presenter *handler.Presenter
	Unlocker  lootbox.Service
	Vault     vault.Service
	DBPool    database.Pool // nil when inventories live in memory
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool: svc.DBPool,
	}
}

// NewRouter builds the middleware stack and mounts every route
func NewRouter(opts Options, svc Services) http.Handler {
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = DefaultMaxRequestBytes
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = DefaultHandlerTimeout
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(requestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type", HeaderAPIKey},
			ExposedHeaders: []string{HeaderRequestID},
			MaxAge:         CORSMaxAgeSeconds,
		}))
	}
	if opts.APIKey != "" {
		r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	}
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Timeout(opts.HandlerTimeout))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DBPool))
	r.Get("/version", handler.HandleVersion(svc.Catalog))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Get("/catalog/{id}", handler.HandleGetCatalogItem(svc.Catalog, svc.Presenter))

		r.Route("/containers/{id}", func(r chi.Router) {
			r.Get("/contents", handler.HandleContainerContents(svc.Unlocker, svc.Presenter))
			r.Get("/odds", handler.HandleContainerOdds(svc.Unlocker))
			r.Post("/unlock", handler.HandleUnlock(svc.Unlocker, svc.Catalog, svc.Presenter))
			r.Post("/verify", handler.HandleVerifyUnlock(svc.Unlocker))
		})

		r.Route("/inventory/{owner}", func(r chi.Router) {
			r.Use(ownerLogMiddleware)
			r.Get("/", handler.HandleGetInventory(svc.Vault, svc.Presenter))
			r.Delete("/", handler.HandleDeleteInventory(svc.Vault))
			r.Get("/unlocks", handler.HandleListUnlocks(svc.Vault))
			r.Post("/items", handler.HandleAddItem(svc.Vault, svc.Presenter))

			r.Route("/items/{index}", func(r chi.Router) {
				r.Delete("/", handler.HandleRemoveItem(svc.Vault, svc.Presenter))
				r.Post("/equip", handler.HandleEquipItem(svc.Vault, svc.Presenter))
				r.Post("/unequip", handler.HandleUnequipItem(svc.Vault, svc.Presenter))
				r.Post("/open", handler.HandleOpenContainer(svc.Vault, svc.Catalog, svc.Presenter))
			})
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// requestIDMiddleware reuses a caller supplied X-Request-ID or mints one,
// stores it in the context and echoes it back
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), requestID)))
	})
}

// ownerLogMiddleware tags downstream logs with the owner path parameter
func ownerLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithOwner(r.Context(), chi.URLParam(r, handler.ParamOwner))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasPathPrefix(r.URL.Path, QuietPaths) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		log := logger.FromContext(r.Context())

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr, "postgres", s.dbPool != nil)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

