package entity

// Role is the closed set of account kinds. It is fixed at account creation.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsDoctor() bool {
	return r == RoleDoctor
}

func (r Role) IsPatient() bool {
	return r == RolePatient
}

// CanBeCreatedByAdmin reports whether an admin may provision this role.
// Patients only self-register.
func (r Role) CanBeCreatedByAdmin() bool {
	return r == RoleAdmin || r == RoleDoctor
}

// Status is the soft-delete flag shared by users, specialties and doctors.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}
