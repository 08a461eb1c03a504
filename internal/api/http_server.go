package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stayspot/internal/config"
	"stayspot/internal/domain"
	"stayspot/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the marketplace API.
type HTTPServer struct {
	cfg      config.APIConfig
	bookings *service.BookingService
	listings *service.ListingService
	reviews  *service.ReviewService
	spots    *service.SpotService
	server   *http.Server
	auth     *HTTPAuth
	logger   *zerolog.Logger
}

func NewHTTPServer(
	cfg config.APIConfig,
	bookings *service.BookingService,
	listings *service.ListingService,
	reviews *service.ReviewService,
	spots *service.SpotService,
	shared domain.RateLimiter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		bookings: bookings,
		listings: listings,
		reviews:  reviews,
		spots:    spots,
		logger:   logger,
	}
	srv.auth = NewHTTPAuth(cfg, shared)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/spots", srv.handleListSpots)
	mux.HandleFunc("POST /api/v1/spots", srv.handleCreateSpot)
	mux.HandleFunc("GET /api/v1/spots/{id}", srv.handleGetSpot)
	mux.HandleFunc("PUT /api/v1/spots/{id}", srv.handleUpdateSpot)
	mux.HandleFunc("DELETE /api/v1/spots/{id}", srv.handleDeleteSpot)
	mux.HandleFunc("POST /api/v1/spots/{id}/images", srv.handleAddSpotImage)
	mux.HandleFunc("GET /api/v1/spots/{id}/bookings", srv.handleListBookings)
	mux.HandleFunc("POST /api/v1/spots/{id}/bookings", srv.handleCreateBooking)
	mux.HandleFunc("GET /api/v1/spots/{id}/reviews", srv.handleListReviews)
	mux.HandleFunc("POST /api/v1/spots/{id}/reviews", srv.handleCreateReview)
	mux.HandleFunc("GET /api/v1/users/{id}/spots", srv.handleOwnedSpots)
	mux.HandleFunc("GET /healthz", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.recoverMiddleware(srv.auth.Wrap(srv.timeoutMiddleware(mux))))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// timeoutMiddleware gives each request a store budget. Deadline errors
// surface as ErrStoreUnavailable and map to 503.
func (s *HTTPServer) timeoutMiddleware(next http.Handler) http.Handler {
	timeout := time.Duration(s.cfg.HTTP.RequestTimeout) * time.Second
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *HTTPServer) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
