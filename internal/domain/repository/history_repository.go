package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"

	"gorm.io/gorm"
)

type HistoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.HistoryRecord) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.HistoryRecord, error)
}
