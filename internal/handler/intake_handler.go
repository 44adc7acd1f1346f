package handler

import (
	"errors"
	"html/template"
	"net/http"

	"clinic-booking-api/internal/model"
)

// intake pages are plain server-rendered HTML so external forms can
// point a browser straight at /receive-data.
var confirmTmpl = template.Must(template.New("confirm").Parse(`<!DOCTYPE html>
<html>
<head><title>Appointment Received</title></head>
<body>
<h1>Appointment Information Received</h1>
<p>Thank you! Your appointment request has been submitted.</p>
<ul>
<li><strong>Name:</strong> {{.Name}}</li>
<li><strong>Email:</strong> {{.Email}}</li>
<li><strong>Phone:</strong> {{.Phone}}</li>
<li><strong>Date:</strong> {{.Date}}</li>
<li><strong>Time:</strong> {{.Time}}</li>
</ul>
<p>Reference ID: {{.ID}}</p>
</body>
</html>
`))

var intakeErrTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><title>Error in Appointment Data</title></head>
<body>
<h1>Error in Appointment Data</h1>
<p><strong>{{.Field}}:</strong> {{.Reason}}</p>
<p>Please correct the information and try again.</p>
</body>
</html>
`))

// ReceiveData books an appointment from URL query parameters and
// renders a confirmation page.
func (h *Handler) ReceiveData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := model.AppointmentInput{
		Name:     q.Get("name"),
		Email:    q.Get("email"),
		Phone:    q.Get("phone"),
		Date:     q.Get("date"),
		Time:     q.Get("time"),
		Symptoms: q.Get("symptoms"),
	}

	a, err := h.store.CreateAppointment(r.Context(), in)
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_ = intakeErrTmpl.Execute(w, verr)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("intake booking")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = confirmTmpl.Execute(w, a.Record())
}
