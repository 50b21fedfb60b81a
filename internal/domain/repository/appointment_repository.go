package repository

import (
	"context"
	"time"

	"medical-appointments-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientID int64) ([]entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Appointment, error)
	// SlotTaken reports whether a non-cancelled appointment holds the slot.
	SlotTaken(ctx context.Context, db *gorm.DB, doctorID int64, date time.Time, clock string) (bool, error)
	// CancelOwned cancels only when the appointment belongs to patientID.
	// Returns affected rows: 0 means no such appointment for that patient.
	CancelOwned(ctx context.Context, db *gorm.DB, id, patientID int64) (int64, error)
}
