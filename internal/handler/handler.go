package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/store"
)

type Handler struct {
	store      *store.Store
	secret     string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func New(st *store.Store, secret string, sessionTTL time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{store: st, secret: secret, sessionTTL: sessionTTL, logger: logger}
}

// Router assembles the HTTP surface: auth routes, booking routes,
// health checks, with CORS, recovery and request logging around it.
func (h *Handler) Router(gate *middleware.Gate, rl *middleware.RateLimiter, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	// credential endpoints are rate limited per IP
	r.Handle("/auth/register", rl.Limit(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	r.Handle("/auth/login", rl.Limit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	r.Handle("/auth/me", gate.RequireUser(http.HandlerFunc(h.Me))).Methods(http.MethodGet)

	// public booking submission, admin-only reads
	r.HandleFunc("/api/appointments", h.CreateAppointment).Methods(http.MethodPost)
	r.Handle("/api/appointments", gate.RequireAdmin(http.HandlerFunc(h.ListAppointments))).Methods(http.MethodGet)
	r.Handle("/api/appointments/{id}", gate.RequireAdmin(http.HandlerFunc(h.GetAppointment))).Methods(http.MethodGet)

	// external intake, renders an HTML confirmation
	r.HandleFunc("/receive-data", h.ReceiveData).Methods(http.MethodGet)

	r.HandleFunc("/livez", h.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.Readiness).Methods(http.MethodGet)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	out := gate.Resolve(r)
	out = cors(out)
	out = middleware.Logging(h.logger)(out)
	out = handlers.RecoveryHandler()(out)
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}
