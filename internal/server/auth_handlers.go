package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/auth"
	"github.com/freightlink/portal/internal/repository"
	"github.com/freightlink/portal/internal/repository/postgresql"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, postgresql.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	now := s.timeNow()
	sess := auth.Session{
		UserID:    user.ID,
		Role:      auth.Role(user.Role),
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessions.Create(r.Context(), &repository.Session{
		Token:     sess.Token,
		UserID:    sess.UserID,
		Role:      string(sess.Role),
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: now,
	}); err != nil {
		s.logger.Error("failed to persist session", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.cache.Set(sess)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":      sess.Token,
		"role":       sess.Role,
		"expires_at": sess.ExpiresAt,
	})
}

// handleRegister creates a portal account. Admin only: customer onboarding
// goes through the back office, not self-service signup.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionOrFail(w, r)
	if !ok {
		return
	}
	if sess.Role != auth.RoleAdmin {
		respondError(w, http.StatusForbidden, "access denied")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	switch auth.Role(req.Role) {
	case auth.RoleCustomer, auth.RoleStaff, auth.RoleAdmin:
	default:
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		s.logger.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}
