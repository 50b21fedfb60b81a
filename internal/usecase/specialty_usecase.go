package usecase

import (
	"context"
	"errors"
	"strings"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound       = errors.New("specialty not found")
	ErrSpecialtyFieldsRequired = errors.New("name and description are required")
	ErrSpecialtyAlreadyExists  = errors.New("specialty name already exists")
)

type SpecialtyUsecase interface {
	List(ctx context.Context) ([]dto.SpecialtyResponse, error)
	Create(ctx context.Context, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	Update(ctx context.Context, id int64, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error)
	Deactivate(ctx context.Context, id int64) error
}

type specialtyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	specialtyRepo  repository.SpecialtyRepository
	auditService   service.AuditService
	directoryCache service.DirectoryCache
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
	directoryCache service.DirectoryCache,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:             db,
		log:            log,
		specialtyRepo:  specialtyRepo,
		auditService:   auditService,
		directoryCache: directoryCache,
	}
}

func (u *specialtyUsecase) List(ctx context.Context) ([]dto.SpecialtyResponse, error) {
	specialties := []dto.SpecialtyResponse{}
	err := u.directoryCache.Fetch(ctx, service.SpecialtyListKey, &specialties, func(ctx context.Context) (interface{}, error) {
		found, err := u.specialtyRepo.FindActive(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to list specialties: %+v", err)
			return nil, err
		}
		return converter.SpecialtiesToResponses(found), nil
	})
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (u *specialtyUsecase) Create(ctx context.Context, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	name, description, err := specialtyFields(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialty := &entity.Specialty{
		Name:        name,
		Description: description,
		Image:       req.Image,
		Status:      entity.StatusActive,
	}

	if err := u.specialtyRepo.Create(ctx, tx, specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	response := converter.SpecialtyToResponse(specialty)
	if err := u.auditService.LogCreate(ctx, tx, nil, entity.AuditActionSpecialtyCreate, "specialty", specialty.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.directoryCache.Invalidate(ctx)
	return response, nil
}

func (u *specialtyUsecase) Update(ctx context.Context, id int64, req *dto.SpecialtyRequest) (*dto.SpecialtyResponse, error) {
	name, description, err := specialtyFields(req)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	before, err := u.specialtyRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty: %+v", err)
		return nil, err
	}
	if before == nil {
		return nil, ErrSpecialtyNotFound
	}

	affected, err := u.specialtyRepo.Update(ctx, tx, id, name, description)
	if err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to update specialty: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrSpecialtyNotFound
	}

	after := *before
	after.Name = name
	after.Description = description

	oldValue := map[string]interface{}{"name": before.Name, "description": before.Description}
	newValue := map[string]interface{}{"name": name, "description": description}
	if err := u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionSpecialtyUpdate, "specialty", id, oldValue, newValue); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.directoryCache.Invalidate(ctx)
	return converter.SpecialtyToResponse(&after), nil
}

// Deactivate is a soft delete; the row stays so doctors and appointments keep their reference.
func (u *specialtyUsecase) Deactivate(ctx context.Context, id int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.specialtyRepo.Deactivate(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to deactivate specialty: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrSpecialtyNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionSpecialtyDeactivate, "specialty", id,
		map[string]interface{}{"status": entity.StatusActive}, map[string]interface{}{"status": entity.StatusInactive}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.directoryCache.Invalidate(ctx)
	return nil
}

func specialtyFields(req *dto.SpecialtyRequest) (string, string, error) {
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return "", "", ErrSpecialtyFieldsRequired
	}
	return name, description, nil
}
