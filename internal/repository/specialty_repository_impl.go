package repository

import (
	"context"
	"errors"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) FindActive(ctx context.Context, db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := db.WithContext(ctx).
		Where("status = ?", entity.StatusActive).
		Order("name").
		Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := db.WithContext(ctx).Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) Create(ctx context.Context, db *gorm.DB, specialty *entity.Specialty) error {
	return db.WithContext(ctx).Create(specialty).Error
}

func (r *specialtyRepository) Update(ctx context.Context, db *gorm.DB, id int64, name, description string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Specialty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "description": description})
	return result.RowsAffected, result.Error
}

// Deactivate never removes the row; doctors and appointments keep pointing at it.
func (r *specialtyRepository) Deactivate(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Specialty{}).
		Where("id = ?", id).
		Update("status", entity.StatusInactive)
	return result.RowsAffected, result.Error
}
