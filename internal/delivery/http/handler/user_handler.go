package handler

import (
	"net/http"
	"strings"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/optional"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	profile, err := h.userUsecase.GetProfile(r.Context(), user.ID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	errs := make(map[string]string)
	if err := h.validator.Validate(&req); err != nil {
		errs = h.validator.FormatValidationErrors(err)
	}
	requireIfPresent(errs, "nombre", req.Name)
	requireIfPresent(errs, "apellido", req.Surname)
	if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	profile, err := h.userUsecase.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// requireIfPresent rejects fields that were sent but cannot be cleared.
func requireIfPresent(errs map[string]string, field string, value optional.Optional[string]) {
	if !value.Set {
		return
	}
	if value.Null || strings.TrimSpace(value.Value) == "" {
		errs[field] = field + " cannot be empty"
	}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	targetID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.AdminUpdateUser(r.Context(), admin.ID, targetID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already in use by another user")
		case usecase.ErrNothingToUpdate:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

// CreateStaff provisions an admin or doctor account.
func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	staff, err := h.userUsecase.CreateStaff(r.Context(), admin.ID, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserAlreadyExists:
			response.Conflict(w, "User already exists with this email or DNI")
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already exists")
		case usecase.ErrSpecialtyNotFound:
			response.BadRequest(w, "Specialty not found or inactive")
		case usecase.ErrInvalidRole, usecase.ErrDoctorDetailsRequired, usecase.ErrInvalidShift, usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", staff)
}
