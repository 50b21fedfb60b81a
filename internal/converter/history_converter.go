package converter

import (
	"strings"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// HistoryRecordToResponse flattens a record for the patient: the doctor becomes one display name.
func HistoryRecordToResponse(record *entity.HistoryRecord) *dto.HistoryRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.HistoryRecordResponse{
		ID:          record.ID,
		Date:        record.Date.Format(dateLayout),
		Specialty:   record.Doctor.Specialty.Name,
		Doctor:      strings.TrimSpace(record.Doctor.User.Name + " " + record.Doctor.User.Surname),
		Diagnosis:   record.Diagnosis,
		Treatment:   record.Treatment,
		Medications: record.Medications,
		Notes:       record.Notes,
	}
}

func HistoryRecordsToResponses(records []entity.HistoryRecord) []dto.HistoryRecordResponse {
	responses := make([]dto.HistoryRecordResponse, len(records))
	for i := range records {
		responses[i] = *HistoryRecordToResponse(&records[i])
	}
	return responses
}
