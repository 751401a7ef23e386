package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/SpiritForge_Go/internal/crafting"
	"github.com/osse101/SpiritForge_Go/internal/database"
	"github.com/osse101/SpiritForge_Go/internal/eventlog"
	"github.com/osse101/SpiritForge_Go/internal/handler"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
	"github.com/osse101/SpiritForge_Go/internal/logger"
	"github.com/osse101/SpiritForge_Go/internal/metrics"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	craftingService crafting.Service
}

// NewServer creates a new Server instance. readiness holds checks reported
// by /readyz in addition to the database ping.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, craftingService crafting.Service, eventLogService eventlog.Service, codec *identifier.Codec, readiness map[string]handler.HealthChecker) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, dbPool, craftingService, eventLogService, codec, readiness),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:          dbPool,
		craftingService: craftingService,
	}
}

// NewRouter builds the HTTP routing tree with the full middleware stack
func NewRouter(apiKey string, trustedProxies []string, dbPool database.Pool, craftingService crafting.Service, eventLogService eventlog.Service, codec *identifier.Codec, readiness map[string]handler.HealthChecker) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(DefaultDetectorConfig())

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool, readiness))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/identifiers", handler.HandleParseIdentifier(codec))

		r.Route("/actors/{actorID}", func(r chi.Router) {
			r.Get("/recipes", handler.HandleListRecipes(craftingService))
			r.Route("/recipes/{recipeID}", func(r chi.Router) {
				r.Get("/craftable", handler.HandleCanCraft(craftingService))
				r.Post("/learn", handler.HandleLearnRecipe(craftingService))
				r.Delete("/learn", handler.HandleUnlearnRecipe(craftingService))
			})
			r.Put("/recipe-types/{recipeType}", handler.HandleSetRecipeType(craftingService))
			r.Post("/items/{itemID}/bind", handler.HandleBindSpirit(craftingService))
			r.Get("/events", handler.HandleGetActorEvents(eventLogService))
		})

		r.Route("/crafting/sessions", func(r chi.Router) {
			r.Post("/", handler.HandleStartCrafting(craftingService))
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetSession(craftingService))
				r.Delete("/", handler.HandleCancelCrafting(craftingService))
				r.Put("/components", handler.HandleAssignComponent(craftingService))
				r.Delete("/components/{component}", handler.HandleUnassignComponent(craftingService))
				r.Post("/execute", handler.HandleExecuteCrafting(craftingService))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/metrics", handler.HandleGetMetrics(prometheus.DefaultGatherer))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

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
		statusCode:     http.StatusOK, // default status
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

func isQuietPath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		// Honor an upstream request ID so traces line up across services
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

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

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
