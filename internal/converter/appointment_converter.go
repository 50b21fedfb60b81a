package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Patient names are included only when the Patient relation was preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		DoctorID:       appointment.DoctorID,
		Date:           appointment.Date.Format(dateLayout),
		Time:           clockHHMM(appointment.Time),
		Reason:         appointment.Reason,
		Status:         string(appointment.Status),
		Notes:          appointment.Notes,
		DoctorName:     appointment.Doctor.User.Name,
		DoctorSurname:  appointment.Doctor.User.Surname,
		SpecialtyName:  appointment.Doctor.Specialty.Name,
		PatientName:    appointment.Patient.Name,
		PatientSurname: appointment.Patient.Surname,
		CreatedAt:      appointment.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
