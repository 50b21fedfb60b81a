package handler

import (
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	doctorUsecase    usecase.DoctorUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		doctorUsecase:    doctorUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req dto.SpecialtyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) UpdateSpecialty(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	var req dto.SpecialtyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Update(r.Context(), specialtyID, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

// DeactivateSpecialty soft-deletes; the row is kept.
func (h *SpecialtyHandler) DeactivateSpecialty(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	if err := h.specialtyUsecase.Deactivate(r.Context(), specialtyID); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Specialty deactivated successfully", nil)
}

func (h *SpecialtyHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	specialtyID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	doctors, err := h.doctorUsecase.ListBySpecialty(r.Context(), specialtyID)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *SpecialtyHandler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrSpecialtyNotFound:
		response.NotFound(w, "Specialty not found")
	case usecase.ErrSpecialtyFieldsRequired:
		response.ValidationError(w, map[string]string{
			"nombre":      "nombre is required",
			"descripcion": "descripcion is required",
		})
	case usecase.ErrSpecialtyAlreadyExists:
		response.Conflict(w, "Specialty name already exists")
	default:
		response.InternalServerError(w, "")
	}
}
