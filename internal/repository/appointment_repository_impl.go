package repository

import (
	"context"
	"time"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(appointment).Error
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Preload("Doctor.Specialty").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.User").
		Preload("Doctor.Specialty").
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, clock string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), clock, entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) CancelOwned(ctx context.Context, db *gorm.DB, id, patientID int64) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND patient_id = ?", id, patientID).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
