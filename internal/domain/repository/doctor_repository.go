package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"

	"gorm.io/gorm"
)

// DoctorRepository loads doctors with their User and Specialty joined.
type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error)
	FindActiveBySpecialty(ctx context.Context, db *gorm.DB, specialtyID int64) ([]entity.Doctor, error)
}
