package usecase

import (
	"context"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HistoryUsecase interface {
	ListMine(ctx context.Context, patientID int64) ([]dto.HistoryRecordResponse, error)
}

type historyUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	historyRepo repository.HistoryRepository
}

func NewHistoryUsecase(db *gorm.DB, log *logrus.Logger, historyRepo repository.HistoryRepository) HistoryUsecase {
	return &historyUsecase{
		db:          db,
		log:         log,
		historyRepo: historyRepo,
	}
}

func (u *historyUsecase) ListMine(ctx context.Context, patientID int64) ([]dto.HistoryRecordResponse, error) {
	records, err := u.historyRepo.FindByPatient(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list history records: %+v", err)
		return nil, err
	}
	return converter.HistoryRecordsToResponses(records), nil
}
