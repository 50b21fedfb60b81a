package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment books a doctor slot (doctor, date, time) for a patient.
// Appointments are never deleted; cancelling is a status change.
type Appointment struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID int64             `gorm:"not null;index" json:"paciente_id"`
	DoctorID  int64             `gorm:"not null;index" json:"medico_id"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"fecha"`
	Time      string            `gorm:"type:time;not null" json:"hora"`
	Reason    *string           `gorm:"type:text" json:"motivo"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"estado"`
	Notes     *string           `gorm:"type:text" json:"observaciones"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User   `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
