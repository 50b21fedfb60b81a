package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultShiftStart = "09:00"
	DefaultShiftEnd   = "17:00"
)

// DefaultAttendanceDays is every weekday, used when none is given.
var DefaultAttendanceDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

// Doctor is the practice record of a user with role doctor.
type Doctor struct {
	ID             int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64                       `gorm:"not null;index" json:"usuario_id"`
	SpecialtyID    int64                       `gorm:"not null;index" json:"especializacion_id"`
	LicenseNumber  string                      `gorm:"type:varchar(50);uniqueIndex;not null" json:"matricula"`
	ShiftStart     string                      `gorm:"type:time" json:"horario_inicio"`
	ShiftEnd       string                      `gorm:"type:time" json:"horario_fin"`
	AttendanceDays datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"dias_atencion"`
	Status         Status                      `gorm:"type:varchar(20);not null;default:'active'" json:"estado"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) IsActive() bool {
	return d.Status == StatusActive
}
