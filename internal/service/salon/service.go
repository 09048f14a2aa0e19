package salon

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/model"
	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
)

var ErrNotFound = errors.New("salon: not found")

type Service struct {
	repo repository.SalonRepository
}

func NewService(repo repository.SalonRepository) *Service {
	return &Service{repo: repo}
}

// Details is a salon together with its weekly hours and service menu, the
// shape the booking screens consume.
type Details struct {
	Salon        *model.Salon          `json:"salon"`
	WorkingHours []*model.WorkingHours `json:"working_hours"`
	Services     []*model.SalonService `json:"services"`
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Details, error) {
	salon, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get salon: %w", err)
	}

	hours, err := s.repo.ListWorkingHours(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list working hours: %w", err)
	}

	services, err := s.repo.ListServices(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	return &Details{
		Salon:        salon,
		WorkingHours: hours,
		Services:     services,
	}, nil
}
