package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *int64            `gorm:"index" json:"user_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserRegister        = "user.register"
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionProfileUpdate       = "profile.update"
	AuditActionUserAdminUpdate     = "user.admin_update"
	AuditActionStaffCreate         = "staff.create"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentCancel   = "appointment.cancel"
	AuditActionSpecialtyCreate     = "specialty.create"
	AuditActionSpecialtyUpdate     = "specialty.update"
	AuditActionSpecialtyDeactivate = "specialty.deactivate"
)
