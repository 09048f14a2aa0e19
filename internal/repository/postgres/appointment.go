package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
)

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, salon_id, customer_id, day, start_time, duration_minutes,
			   status, cancel_reason, notes, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, salon_id, customer_id, day, start_time, duration_minutes,
			   status, cancel_reason, notes, created_at, updated_at
		FROM appointments
		WHERE salon_id = $1
	`
	args := []interface{}{filters.SalonID}
	argCount := 2

	if filters.CustomerID != uuid.Nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argCount)
		args = append(args, filters.CustomerID)
		argCount++
	}

	if !filters.Day.IsZero() {
		query += fmt.Sprintf(" AND day = $%d", argCount)
		args = append(args, filters.Day)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY start_time ASC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListBookedForDay(ctx context.Context, salonID uuid.UUID, day time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT id, salon_id, customer_id, day, start_time, duration_minutes,
			   status, cancel_reason, notes, created_at, updated_at
		FROM appointments
		WHERE salon_id = $1 AND day = $2 AND status = 'booked'
		ORDER BY start_time ASC
	`
	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, salonID, day); err != nil {
		return nil, fmt.Errorf("failed to list booked appointments: %w", err)
	}
	return appointments, nil
}

// CreateIfFree inserts the appointment only if no booked row for the same
// salon and day overlaps [start, start+duration). The predicate insert makes
// the database the final arbiter of the at-most-one invariant even when the
// per-salon-day lock was lost.
func (r *appointmentRepository) CreateIfFree(ctx context.Context, apt *model.Appointment, event *model.OutboxEvent) error {
	query := `
		INSERT INTO appointments (
			id, salon_id, customer_id, day, start_time, duration_minutes,
			status, notes, created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		WHERE NOT EXISTS (
			SELECT 1 FROM appointments
			WHERE salon_id = $2
			AND day = $4
			AND status = 'booked'
			AND start_time < $11
			AND start_time + make_interval(mins => duration_minutes) > $5
		)
	`
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			apt.ID,
			apt.SalonID,
			apt.CustomerID,
			apt.Day,
			apt.StartTime,
			apt.DurationMinutes,
			apt.Status,
			apt.Notes,
			apt.CreatedAt,
			apt.UpdatedAt,
			apt.EndTime(),
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrSlotConflict
		}

		if event != nil {
			if err := insertOutboxEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateStatusIf transitions id from one status to another. The status
// predicate in the UPDATE makes the read-current-then-write atomic; a stale
// caller gets ErrStatusConflict instead of overwriting a terminal state.
func (r *appointmentRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus, cancelReason *string, event *model.OutboxEvent) error {
	query := `
		UPDATE appointments
		SET status = $1, cancel_reason = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, to, cancelReason, time.Now(), id, from)
		if err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			var exists bool
			if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, id); err != nil {
				return fmt.Errorf("failed to check appointment existence: %w", err)
			}
			if !exists {
				return repository.ErrNotFound
			}
			return repository.ErrStatusConflict
		}

		if event != nil {
			if err := insertOutboxEvent(ctx, tx, event); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *appointmentRepository) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func insertOutboxEvent(ctx context.Context, tx *sqlx.Tx, event *model.OutboxEvent) error {
	query := `
		INSERT INTO outbox_events (id, event_type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}
