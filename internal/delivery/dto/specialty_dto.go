package dto

import "strings"

// Request DTOs

type SpecialtyRequest struct {
	Name        string  `json:"nombre" validate:"required,max=100"`
	Description string  `json:"descripcion" validate:"required"`
	Image       *string `json:"imagen" validate:"omitempty,max=255"`
}

func (r *SpecialtyRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// Response DTOs

type SpecialtyResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Image       *string `json:"imagen"`
	Status      string  `json:"estado"`
}
