package entity

import "time"

// HistoryRecord is an immutable clinical note. AppointmentID is cleared,
// not cascaded, when its appointment row goes away.
type HistoryRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	PatientID     int64     `gorm:"not null;index"`
	DoctorID      int64     `gorm:"not null"`
	AppointmentID *int64    `gorm:"index"`
	Date          time.Time `gorm:"type:date;not null;index"`
	Diagnosis     *string   `gorm:"type:text"`
	Treatment     *string   `gorm:"type:text"`
	Medications   *string   `gorm:"type:text"`
	Notes         *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	// Relationships
	Patient User   `gorm:"foreignKey:PatientID"`
	Doctor  Doctor `gorm:"foreignKey:DoctorID"`
}

func (HistoryRecord) TableName() string {
	return "history_records"
}
