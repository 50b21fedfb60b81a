package repository

import (
	"context"
	"errors"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("User", "Specialty").Create(doctor).Error
}

func (r *doctorRepository) directory(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		InnerJoins("User").
		InnerJoins("Specialty").
		Where("doctors.status = ?", entity.StatusActive)
}

func (r *doctorRepository) FindActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.directory(ctx, db).
		Order(`"Specialty".name, "User".name, "User".surname`).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.directory(ctx, db).Where("doctors.id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindActiveBySpecialty(ctx context.Context, db *gorm.DB, specialtyID int64) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.directory(ctx, db).
		Where("doctors.specialty_id = ?", specialtyID).
		Order(`"User".name, "User".surname`).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
