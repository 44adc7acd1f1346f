package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
)

// CreateAppointment validates the submitted fields and persists the
// booking. There is no uniqueness constraint; validated input always
// inserts. created_at is assigned by the database in UTC.
func (s *Store) CreateAppointment(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error) {
	a, err := in.Appointment()
	if err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO appointments (name, email, phone, date, time_of_day, symptoms)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, created_at`,
		a.Name, a.Email, a.Phone, a.Date, a.Time, a.Symptoms,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAppointments returns bookings ordered by id ascending, optionally
// restricted to an inclusive date range.
func (s *Store) ListAppointments(ctx context.Context, from, to *time.Time) ([]model.Appointment, error) {
	q := `SELECT id, name, email, phone, date, time_of_day, symptoms, created_at
	      FROM appointments`
	var args []any
	var conds []string
	if from != nil {
		args = append(args, *from)
		conds = append(conds, `date >= $1`)
	}
	if to != nil {
		args = append(args, *to)
		if len(args) == 2 {
			conds = append(conds, `date <= $2`)
		} else {
			conds = append(conds, `date <= $1`)
		}
	}
	if len(conds) == 2 {
		q += ` WHERE ` + conds[0] + ` AND ` + conds[1]
	} else if len(conds) == 1 {
		q += ` WHERE ` + conds[0]
	}
	q += ` ORDER BY id`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Phone, &a.Date, &a.Time, &a.Symptoms, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, date, time_of_day, symptoms, created_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.Phone, &a.Date, &a.Time, &a.Symptoms, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
