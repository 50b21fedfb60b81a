package service

import (
	"context"
	"strconv"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes audit trail entries. Pass the caller's transaction as tx
// so the entry commits or rolls back together with the change it describes.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata map[string]interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, datatypes.JSONMap{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID int64, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, datatypes.JSONMap{
		"entity":    entityName,
		"entity_id": strconv.FormatInt(entityID, 10),
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogEvent logs an action that does not change an entity, such as a login.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata map[string]interface{}) error {
	return s.write(ctx, tx, userID, action, datatypes.JSONMap(metadata))
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata datatypes.JSONMap) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
