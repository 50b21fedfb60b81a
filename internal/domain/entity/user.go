package entity

import (
	"time"
)

// User represents every account: patients, doctors and admins.
type User struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"type:varchar(100);not null" json:"nombre"`
	Surname         string     `gorm:"type:varchar(100);not null" json:"apellido"`
	Email           string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"type:varchar(255);not null" json:"-"`
	Phone           *string    `gorm:"type:varchar(20)" json:"telefono"`
	Address         *string    `gorm:"type:text" json:"direccion"`
	BirthDate       *time.Time `gorm:"type:date" json:"fecha_nacimiento"`
	NationalID      string     `gorm:"column:national_id;type:varchar(20);uniqueIndex;not null" json:"dni"`
	InsuranceName   *string    `gorm:"type:varchar(100)" json:"obra_social"`
	InsuranceNumber *string    `gorm:"type:varchar(50)" json:"numero_afiliado"`
	Role            Role       `gorm:"type:varchar(20);not null;default:'patient'" json:"rol"`
	Status          Status     `gorm:"type:varchar(20);not null;default:'active'" json:"estado"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

func (u *User) FullName() string {
	return u.Name + " " + u.Surname
}
