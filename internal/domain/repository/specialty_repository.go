package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	FindActive(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Specialty, error)
	Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error
	Update(ctx context.Context, db *gorm.DB, id int64, name, description string) (int64, error)
	Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}
