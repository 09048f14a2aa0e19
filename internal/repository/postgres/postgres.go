package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/yazan-alawneh999/salona-main-sub001/internal/repository"
)

type salonRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewSalonRepository(db *sqlx.DB) repository.SalonRepository {
	return &salonRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
