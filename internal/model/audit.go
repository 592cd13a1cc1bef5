package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionSubmitOrder   = "SUBMIT_ORDER"
	ActionSubmitDoctor  = "SUBMIT_DOCTOR"
	ActionSubmitUtility = "SUBMIT_UTILITY"
)

// AuditLog tracks who submitted what and when
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID    string    `gorm:"type:varchar(128);not null;index" json:"owner_id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string    `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
