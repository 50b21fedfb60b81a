package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// Name and specialty fields are filled only when User/Specialty were joined.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	days := []string(doctor.AttendanceDays)
	if days == nil {
		days = []string{}
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		SpecialtyID:    doctor.SpecialtyID,
		LicenseNumber:  doctor.LicenseNumber,
		ShiftStart:     clockHHMM(doctor.ShiftStart),
		ShiftEnd:       clockHHMM(doctor.ShiftEnd),
		AttendanceDays: days,
		Status:         string(doctor.Status),
		SpecialtyName:  doctor.Specialty.Name,
		Name:           doctor.User.Name,
		Surname:        doctor.User.Surname,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// clockHHMM trims the seconds Postgres appends to TIME values.
func clockHHMM(clock string) string {
	if len(clock) > 5 {
		return clock[:5]
	}
	return clock
}
