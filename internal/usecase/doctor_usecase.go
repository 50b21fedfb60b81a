package usecase

import (
	"context"
	"errors"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotFound = errors.New("doctor not found")

type DoctorUsecase interface {
	List(ctx context.Context) ([]dto.DoctorResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.DoctorResponse, error)
	ListBySpecialty(ctx context.Context, specialtyID int64) ([]dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	doctorRepo     repository.DoctorRepository
	directoryCache service.DirectoryCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	directoryCache service.DirectoryCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:             db,
		log:            log,
		doctorRepo:     doctorRepo,
		directoryCache: directoryCache,
	}
}

func (u *doctorUsecase) List(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors := []dto.DoctorResponse{}
	err := u.directoryCache.Fetch(ctx, service.DoctorListKey, &doctors, func(ctx context.Context) (interface{}, error) {
		found, err := u.doctorRepo.FindActive(ctx, u.db)
		if err != nil {
			u.log.Warnf("Failed to list doctors: %+v", err)
			return nil, err
		}
		return converter.DoctorsToResponses(found), nil
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int64) (*dto.DoctorResponse, error) {
	var doctor dto.DoctorResponse
	err := u.directoryCache.Fetch(ctx, service.DoctorKey(id), &doctor, func(ctx context.Context) (interface{}, error) {
		found, err := u.doctorRepo.FindActiveByID(ctx, u.db, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor by ID: %+v", err)
			return nil, err
		}
		if found == nil {
			return nil, ErrDoctorNotFound
		}
		return converter.DoctorToResponse(found), nil
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListBySpecialty returns an empty list for unknown or deactivated specialties.
func (u *doctorUsecase) ListBySpecialty(ctx context.Context, specialtyID int64) ([]dto.DoctorResponse, error) {
	doctors := []dto.DoctorResponse{}
	err := u.directoryCache.Fetch(ctx, service.SpecialtyDoctorsKey(specialtyID), &doctors, func(ctx context.Context) (interface{}, error) {
		found, err := u.doctorRepo.FindActiveBySpecialty(ctx, u.db, specialtyID)
		if err != nil {
			u.log.Warnf("Failed to list doctors by specialty: %+v", err)
			return nil, err
		}
		return converter.DoctorsToResponses(found), nil
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
