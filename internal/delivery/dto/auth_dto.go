package dto

import "strings"

// Request DTOs

type RegisterRequest struct {
	Name            string `json:"nombre" validate:"required,min=2,max=100"`
	Surname         string `json:"apellido" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=6"`
	NationalID      string `json:"dni" validate:"required,min=7,max=20"`
	Phone           string `json:"telefono" validate:"omitempty,max=20"`
	Address         string `json:"direccion"`
	BirthDate       string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"` // Format: YYYY-MM-DD
	InsuranceName   string `json:"obra_social" validate:"omitempty,max=100"`
	InsuranceNumber string `json:"numero_afiliado" validate:"omitempty,max=50"`
}

// Normalize trims the text fields so length rules apply to the stored value.
// Passwords are kept as sent.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = strings.TrimSpace(r.Surname)
	r.Email = strings.TrimSpace(r.Email)
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.InsuranceName = strings.TrimSpace(r.InsuranceName)
	r.InsuranceNumber = strings.TrimSpace(r.InsuranceNumber)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Response DTOs

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// IdentityResponse is the resolved caller attached by the auth guard.
type IdentityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Surname string `json:"apellido"`
	Email   string `json:"email"`
	Role    string `json:"rol"`
}
