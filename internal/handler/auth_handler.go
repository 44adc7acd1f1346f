package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "all fields required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password too short")
		return
	}

	u, err := h.store.CreateUser(r.Context(), req.Username, req.Email, req.Password, false)
	if errors.Is(err, store.ErrDuplicate) {
		// which column collided is deliberately not revealed
		writeError(w, http.StatusConflict, "registration failed")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password required")
		return
	}

	u, err := h.store.VerifyLogin(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("verify login")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	raw, hash, err := auth.NewSessionToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	expires := time.Now().Add(h.sessionTTL)
	if _, err := h.store.CreateSession(r.Context(), u.ID, hash, expires); err != nil {
		h.logger.Error().Err(err).Msg("create session")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	tok, err := auth.MakeToken(u.ID, u.IsAdmin, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    raw,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"token": tok,
		"user": userResponse{
			ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil && c.Value != "" {
		sess, err := h.store.SessionByTokenHash(r.Context(), auth.HashSessionToken(c.Value))
		if err == nil {
			_ = h.store.RevokeSession(r.Context(), sess.ID)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())
	writeJSON(w, http.StatusOK, userResponse{
		ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin,
	})
}
