package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/careslot/appointment-service/internal/models"
	"github.com/careslot/appointment-service/internal/repositories"
)

type appointmentPostgreSQL struct {
	db *gorm.DB
}

func NewAppointmentPostgreSQL(db *gorm.DB) repositories.AppointmentRepository {
	return &appointmentPostgreSQL{db: db}
}

func (r *appointmentPostgreSQL) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentPostgreSQL) GetByID(ctx context.Context, scope repositories.Scope, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where(scope.Column+" = ?", scope.Value).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentPostgreSQL) List(ctx context.Context, scope repositories.Scope) ([]*models.Appointment, error) {
	var appointments []*models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where(scope.Column+" = ?", scope.Value).
		Order("date DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentPostgreSQL) Update(ctx context.Context, appointment *models.Appointment) error {
	// Loaded user relations are display data, never written back.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(appointment).Error
}
