package dto

import (
	"strings"
	"time"

	"medical-appointments-api/pkg/optional"
)

// Request DTOs

// UpdateProfileRequest is a patch: absent fields keep their value,
// null clears a nullable field.
type UpdateProfileRequest struct {
	Name            optional.Optional[string] `json:"nombre" validate:"omitempty,min=2,max=100"`
	Surname         optional.Optional[string] `json:"apellido" validate:"omitempty,min=2,max=100"`
	Phone           optional.Optional[string] `json:"telefono" validate:"omitempty,max=20"`
	Address         optional.Optional[string] `json:"direccion"`
	BirthDate       optional.Optional[string] `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	InsuranceName   optional.Optional[string] `json:"obra_social" validate:"omitempty,max=100"`
	InsuranceNumber optional.Optional[string] `json:"numero_afiliado" validate:"omitempty,max=50"`
}

func (r *UpdateProfileRequest) Normalize() {
	for _, field := range []*optional.Optional[string]{
		&r.Name, &r.Surname, &r.Phone, &r.Address, &r.BirthDate, &r.InsuranceName, &r.InsuranceNumber,
	} {
		if field.HasValue() {
			field.Value = strings.TrimSpace(field.Value)
		}
	}
}

type AdminUpdateUserRequest struct {
	Email  *string `json:"email" validate:"omitempty,email,max=255"`
	Status *string `json:"estado" validate:"omitempty,oneof=active inactive"`
}

// CreateStaffRequest provisions an admin or doctor account.
type CreateStaffRequest struct {
	Name           string   `json:"nombre" validate:"required,min=2,max=100"`
	Surname        string   `json:"apellido" validate:"required,min=2,max=100"`
	Email          string   `json:"email" validate:"required,email,max=255"`
	Password       string   `json:"password" validate:"required,min=6"`
	NationalID     string   `json:"dni" validate:"required,min=7,max=20"`
	Phone          string   `json:"telefono" validate:"omitempty,max=20"`
	Role           string   `json:"rol" validate:"required,oneof=admin doctor"`
	SpecialtyID    *int64   `json:"especializacion_id" validate:"omitempty,gt=0"`
	LicenseNumber  string   `json:"matricula" validate:"omitempty,max=50"`
	ShiftStart     string   `json:"horario_inicio" validate:"omitempty,clock"`
	ShiftEnd       string   `json:"horario_fin" validate:"omitempty,clock"`
	AttendanceDays []string `json:"dias_atencion" validate:"omitempty,dive,weekday"`
}

func (r *CreateStaffRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = strings.TrimSpace(r.Email)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.Phone = strings.TrimSpace(r.Phone)
	r.LicenseNumber = strings.TrimSpace(r.LicenseNumber)
	r.ShiftStart = strings.TrimSpace(r.ShiftStart)
	r.ShiftEnd = strings.TrimSpace(r.ShiftEnd)
}

// Response DTOs

type UserResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"nombre"`
	Surname         string    `json:"apellido"`
	Email           string    `json:"email"`
	Phone           *string   `json:"telefono"`
	Address         *string   `json:"direccion"`
	BirthDate       *string   `json:"fecha_nacimiento"`
	NationalID      string    `json:"dni"`
	InsuranceName   *string   `json:"obra_social"`
	InsuranceNumber *string   `json:"numero_afiliado"`
	Role            string    `json:"rol"`
	Status          string    `json:"estado"`
	CreatedAt       time.Time `json:"created_at"`
}

type StaffResponse struct {
	User   UserResponse    `json:"user"`
	Doctor *DoctorResponse `json:"medico,omitempty"`
}
