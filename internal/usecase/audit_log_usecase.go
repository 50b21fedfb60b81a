package usecase

import (
	"context"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultAuditLogLimit = 100
	MaxAuditLogLimit     = 500
)

type AuditLogUsecase interface {
	ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) ListRecent(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	if limit <= 0 {
		limit = DefaultAuditLogLimit
	}
	if limit > MaxAuditLogLimit {
		limit = MaxAuditLogLimit
	}

	logs, err := u.auditLogRepo.FindRecent(ctx, u.db, limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	responses := converter.AuditLogsToResponses(logs)
	return &dto.AuditLogListResponse{
		Logs:  responses,
		Total: len(responses),
	}, nil
}
