package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pos-system/internal/common/logger"
	"pos-system/internal/session"
)

const (
	HeaderUser      = "X-POS-User"
	HeaderRole      = "X-POS-Role"
	HeaderRequestID = "X-Request-ID"
)

type loggerKey struct{}

// requestLogger returns the logger stamped with the request id, falling
// back to base outside the middleware chain.
func requestLogger(r *http.Request, base *logger.Logger) *logger.Logger {
	if lg, ok := r.Context().Value(loggerKey{}).(*logger.Logger); ok {
		return lg
	}
	return base
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequest assigns a request id, scopes the logger to it and writes one
// access entry per request.
func withRequest(lg *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		rl := lg.WithRequestID(id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), loggerKey{}, rl)))
		rl.Debug("http_request", map[string]any{
			"method": r.Method, "path": r.URL.Path, "status": rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

// withSession reads the operator from the session headers. Requests without
// a valid role carry no session; guard rejects them.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get(HeaderUser))
		role, err := session.ParseRole(r.Header.Get(HeaderRole))
		if user != "" && err == nil {
			r = r.WithContext(session.WithSession(r.Context(), session.Session{User: user, Role: role}))
		}
		next.ServeHTTP(w, r)
	})
}

func guard(p session.Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			writeProblem(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid "+HeaderUser+"/"+HeaderRole)
			return
		}
		if !s.Can(p) {
			writeProblem(w, http.StatusForbidden, "forbidden", s.Role.String()+" may not "+p.String())
			return
		}
		next(w, r)
	}
}
