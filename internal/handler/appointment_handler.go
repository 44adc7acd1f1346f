package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var in model.AppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.store.CreateAppointment(r.Context(), in)
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("create appointment")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, a.Record())
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	apts, err := h.store.ListAppointments(r.Context(), from, to)
	if err != nil {
		h.logger.Error().Err(err).Msg("list appointments")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]model.AppointmentRecord, len(apts))
	for i := range apts {
		out[i] = apts[i].Record()
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	a, err := h.store.GetAppointment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("get appointment")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, a.Record())
}

func dateParam(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(model.DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
