package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for appointment dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for the string-encoded time of day.
	TimeLayout = "15:04"
	// TimestampLayout is the wire format for created_at.
	TimestampLayout = "2006-01-02 15:04:05"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Appointment is a standalone booking request. It is not tied to a
// registered user account.
type Appointment struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Date      time.Time // date component only
	Time      string    // "HH:MM"
	Symptoms  string
	CreatedAt time.Time
}

// AppointmentInput carries unvalidated booking fields as submitted.
type AppointmentInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Symptoms string `json:"symptoms"`
}

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Appointment validates the input and returns an unsaved Appointment.
// The returned value has no ID and no CreatedAt; the store assigns both.
func (in AppointmentInput) Appointment() (*Appointment, error) {
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"phone", in.Phone},
		{"date", in.Date},
		{"time", in.Time},
		{"symptoms", in.Symptoms},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, &ValidationError{Field: f.field, Reason: "required"}
		}
	}

	date, err := time.Parse(DateLayout, in.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	if _, err := time.Parse(TimeLayout, in.Time); err != nil {
		return nil, &ValidationError{Field: "time", Reason: "must be HH:MM"}
	}

	return &Appointment{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Date:     date,
		Time:     in.Time,
		Symptoms: in.Symptoms,
	}, nil
}

// AppointmentRecord is the stable serialized shape handed to clients.
type AppointmentRecord struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Symptoms  string  `json:"symptoms"`
	CreatedAt *string `json:"created_at"`
}

func (a *Appointment) Record() AppointmentRecord {
	r := AppointmentRecord{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Date:     a.Date.Format(DateLayout),
		Time:     a.Time,
		Symptoms: a.Symptoms,
	}
	if !a.CreatedAt.IsZero() {
		ts := a.CreatedAt.UTC().Format(TimestampLayout)
		r.CreatedAt = &ts
	}
	return r
}
