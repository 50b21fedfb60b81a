package dto

// Response DTOs

type DoctorResponse struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"usuario_id"`
	SpecialtyID    int64    `json:"especializacion_id"`
	LicenseNumber  string   `json:"matricula"`
	ShiftStart     string   `json:"horario_inicio"`
	ShiftEnd       string   `json:"horario_fin"`
	AttendanceDays []string `json:"dias_atencion"`
	Status         string   `json:"estado"`
	SpecialtyName  string   `json:"especializacion_nombre,omitempty"`
	Name           string   `json:"nombre,omitempty"`
	Surname        string   `json:"apellido,omitempty"`
}
