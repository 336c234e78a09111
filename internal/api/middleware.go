package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/logger"
)

const (
	headerSignature = "X-Signature"
	headerTimestamp = "X-Timestamp"
)

var (
	errMissingSignature = &statusError{status: http.StatusUnauthorized, message: "Missing auth headers"}
	errInvalidSignature = &statusError{status: http.StatusUnauthorized, message: "Invalid signature"}
)

// accessLog writes one zap entry per request after the handler returns.
func accessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			fields := logger.RequestFields(middleware.GetReqID(r.Context()), route)
			fields = append(fields,
				zap.String("method", r.Method),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
			log.Info("http request", fields...)
		})
	}
}

// Sign returns the hex HMAC-SHA256 of timestamp under secret, the value
// callers send in X-Signature.
func Sign(secret, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// requireSignature rejects requests whose X-Signature does not match the
// signed X-Timestamp.
func (s *Server) requireSignature(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signature := strings.TrimSpace(r.Header.Get(headerSignature))
			timestamp := strings.TrimSpace(r.Header.Get(headerTimestamp))

			if signature == "" || timestamp == "" {
				s.fail(w, r, errMissingSignature)
				return
			}

			expected := Sign(secret, timestamp)
			if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
				s.fail(w, r, errInvalidSignature)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
