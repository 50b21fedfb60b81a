package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type historyRepository struct{}

func NewHistoryRepository() domainRepo.HistoryRepository {
	return &historyRepository{}
}

func (r *historyRepository) Create(ctx context.Context, db *gorm.DB, record *entity.HistoryRecord) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(record).Error
}

func (r *historyRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.HistoryRecord, error) {
	var records []entity.HistoryRecord
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Specialty").
		Where("patient_id = ?", patientID).
		Order("date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
