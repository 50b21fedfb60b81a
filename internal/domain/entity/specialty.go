package entity

import "time"

// Specialty is a medical discipline doctors practice under.
type Specialty struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Description string    `gorm:"type:text" json:"descripcion"`
	Image       *string   `gorm:"type:varchar(255)" json:"imagen"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'active'" json:"estado"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Specialty) TableName() string {
	return "specialties"
}
