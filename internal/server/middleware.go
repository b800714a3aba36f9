package server

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/auth"
)

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", wrw.statusCode),
			zap.Int("bytes", wrw.written),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// authMiddleware resolves the bearer token into a session and stores it on
// the request context. The cache is consulted first; a miss falls through to
// the sessions table and refills the cache.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		sess, found := s.cache.Get(token)
		if !found {
			stored, err := s.sessions.GetByToken(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			sess = auth.Session{
				UserID:    stored.UserID,
				Role:      auth.Role(stored.Role),
				Token:     stored.Token,
				ExpiresAt: stored.ExpiresAt,
			}
			s.cache.Set(sess)
		}

		if sess.Expired(s.timeNow()) {
			s.cache.Delete(token)
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
	})
}
