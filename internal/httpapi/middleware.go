// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TaskNest Contributors

package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/oops"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requireAuth is the request gate for protected routes. It extracts the
// bearer token, verifies the session, and stores the authenticated user on
// the request context. Failures end the request here.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			s.recordAuthFailure("TOKEN_MISSING")
			writeError(s.logger, w, err)
			return
		}

		user, err := s.auth.VerifySession(r.Context(), token)
		if err != nil {
			code := "TOKEN_INVALID"
			if oopsErr, ok := oops.AsOops(err); ok && oopsErr.Code() != "" {
				code = oopsErr.Code()
			}
			s.recordAuthFailure(code)
			writeError(s.logger, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), user)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", oops.Code("TOKEN_MISSING").Errorf("authorization header missing")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", oops.Code("TOKEN_MISSING").Errorf("authorization header is not a bearer token")
	}
	return token, nil
}

func (s *Server) recordAuthFailure(reason string) {
	if s.metrics != nil {
		s.metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
}

// requestLogger logs one line per request with method, route, status, and
// latency, and records the request metrics.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		elapsed := time.Since(start)

		s.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)

		if s.metrics != nil {
			s.metrics.HTTPRequestsTotal.
				WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
			s.metrics.HTTPRequestDuration.
				WithLabelValues(route, r.Method).Observe(elapsed.Seconds())
		}
	})
}

// routeTemplate returns the matched route pattern (e.g. /api/tasks/{id}),
// keeping metric label cardinality bounded. Falls back to the raw path for
// unmatched requests.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// recoverPanics converts handler panics into opaque 500 responses.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("handler panic",
					"panic", v,
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeJSON(w, http.StatusInternalServerError, Envelope{
					Success: false,
					Message: messageForCode(""),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
