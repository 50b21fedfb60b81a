package usecase

import (
	"context"
	"errors"
	"time"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// activeSlotIndex backs the one-live-appointment-per-slot rule in the schema.
const activeSlotIndex = "uq_appointments_active_slot"

var (
	ErrSlotUnavailable     = errors.New("slot unavailable")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSpecialtyMismatch   = errors.New("doctor does not practice the given specialty")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
)

type AppointmentUsecase interface {
	ListMine(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error)
	Create(ctx context.Context, patientID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, patientID, appointmentID int64) error
	ListAll(ctx context.Context) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) ListMine(ctx context.Context, patientID int64) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatient(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) ListAll(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list all appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Create(ctx context.Context, patientID int64, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	clock, ok := normalizeClock(req.Time)
	if !ok {
		return nil, ErrInvalidTimeFormat
	}

	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, int64(req.DoctorID))
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.SpecialtyID != int64(req.SpecialtyID) {
		return nil, ErrSpecialtyMismatch
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	taken, err := u.appointmentRepo.SlotTaken(ctx, tx, doctor.ID, date, clock)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  doctor.ID,
		Date:      date,
		Time:      clock,
		Reason:    req.Reason,
		Status:    entity.AppointmentStatusPending,
	}

	// A concurrent booking that passed the check above still loses on the unique index.
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		if isDuplicateKeyError(err, activeSlotIndex) {
			return nil, ErrSlotUnavailable
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Doctor = *doctor
	response := converter.AppointmentToResponse(appointment)

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, response); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

// Cancel only touches appointments owned by patientID; anything else reads as not found.
func (u *appointmentUsecase) Cancel(ctx context.Context, patientID, appointmentID int64) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.CancelOwned(ctx, tx, appointmentID, patientID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	if err := u.auditService.LogUpdate(ctx, tx, &patientID, entity.AuditActionAppointmentCancel, "appointment", appointmentID,
		nil, map[string]interface{}{"status": entity.AppointmentStatusCancelled}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
