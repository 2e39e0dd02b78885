package http

import (
	"net/http"

	applog "github.com/Parthg59/expense-tracker/internal/log"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	username := sanitizeInput(req.Username)
	user, err := s.sessions.Login(r.Context(), username, req.Password)
	if err != nil {
		fields := applog.NewFields().
			WithError(err).
			WithOperation(applog.OpLogin).
			WithUsername(username)
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Login rejected", fields.ToSlice()...)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    userResponse{ID: user.ID, Username: user.Username},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !s.requireSession(w) {
		return
	}

	if err := s.sessions.Logout(r.Context()); err != nil {
		applog.LogError(r.Context(), "Logout failed", err, applog.OpLogout, applog.NewFields())
		writeDomainError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
