package dto

// HistoryRecordResponse is the flat patient-facing view of a clinical note.
type HistoryRecordResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"fecha"`
	Specialty   string  `json:"especialidad"`
	Doctor      string  `json:"medico"`
	Diagnosis   *string `json:"diagnostico"`
	Treatment   *string `json:"tratamiento"`
	Medications *string `json:"medicamentos"`
	Notes       *string `json:"observaciones"`
}
