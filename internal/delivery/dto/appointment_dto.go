package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID    NumericID `json:"medico_id" validate:"required,gt=0"`
	SpecialtyID NumericID `json:"especializacion_id" validate:"required,gt=0"`
	Date        string    `json:"fecha" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Time        string    `json:"hora" validate:"required,clock"`                // Format: HH:MM
	Reason      *string   `json:"motivo" validate:"omitempty,max=1000"`
}

func (r *CreateAppointmentRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
}

// NumericID accepts an id sent either as a JSON number or as a numeric string.
type NumericID int64

func (id *NumericID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(*id)}
	}
	*id = NumericID(n)
	return nil
}

// Response DTOs

type AppointmentResponse struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"paciente_id"`
	DoctorID       int64     `json:"medico_id"`
	Date           string    `json:"fecha"`
	Time           string    `json:"hora"`
	Reason         *string   `json:"motivo"`
	Status         string    `json:"estado"`
	Notes          *string   `json:"observaciones"`
	DoctorName     string    `json:"medico_nombre,omitempty"`
	DoctorSurname  string    `json:"medico_apellido,omitempty"`
	SpecialtyName  string    `json:"especializacion_nombre,omitempty"`
	PatientName    string    `json:"usuario_nombre,omitempty"`
	PatientSurname string    `json:"usuario_apellido,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
