package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
)

func (r *salonRepository) Get(ctx context.Context, id uuid.UUID) (*model.Salon, error) {
	query := `
		SELECT id, name, address, phone, timezone, status, created_at, updated_at
		FROM salons
		WHERE id = $1
	`
	var salon model.Salon
	err := r.db.GetContext(ctx, &salon, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}
	return &salon, nil
}

func (r *salonRepository) GetWorkingHours(ctx context.Context, salonID uuid.UUID, weekday time.Weekday) (*model.WorkingHours, error) {
	query := `
		SELECT id, salon_id, weekday, open_minutes, close_minutes
		FROM working_hours
		WHERE salon_id = $1 AND weekday = $2
	`
	var hours model.WorkingHours
	err := r.db.GetContext(ctx, &hours, query, salonID, int(weekday))
	if errors.Is(err, sql.ErrNoRows) {
		// No row means the salon is closed that weekday.
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get working hours: %w", err)
	}
	if err := hours.Validate(); err != nil {
		return nil, fmt.Errorf("invalid working hours for salon %s: %w", salonID, err)
	}
	return &hours, nil
}

func (r *salonRepository) ListWorkingHours(ctx context.Context, salonID uuid.UUID) ([]*model.WorkingHours, error) {
	query := `
		SELECT id, salon_id, weekday, open_minutes, close_minutes
		FROM working_hours
		WHERE salon_id = $1
		ORDER BY weekday ASC
	`
	var hours []*model.WorkingHours
	if err := r.db.SelectContext(ctx, &hours, query, salonID); err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}
	return hours, nil
}

func (r *salonRepository) ListServices(ctx context.Context, salonID uuid.UUID) ([]*model.SalonService, error) {
	query := `
		SELECT id, salon_id, name, duration_minutes, price, status, created_at, updated_at
		FROM salon_services
		WHERE salon_id = $1 AND status = 'active'
		ORDER BY name ASC
	`
	var services []*model.SalonService
	if err := r.db.SelectContext(ctx, &services, query, salonID); err != nil {
		return nil, fmt.Errorf("failed to list salon services: %w", err)
	}
	return services, nil
}
