package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entity kinds recorded in the activity trail.
const (
	EntityUser     = "user"
	EntityCourse   = "course"
	EntityLowongan = "lowongan"
	EntityLamaran  = "lamaran"
	EntityLog      = "log"
)

// ActivityLog is one audit row: who changed which backend record through the
// dashboards, with the request's correlation id for cross-referencing the
// backend's own logs. Backend ids are opaque strings (UUIDs, course codes).
type ActivityLog struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt     time.Time         `gorm:"index" json:"createdAt"`
	ActorID       string            `gorm:"size:64;not null;index" json:"actorId"`
	ActorRole     string            `gorm:"size:16;not null" json:"actorRole"`
	Action        string            `gorm:"size:48;not null" json:"action"`
	EntityType    string            `gorm:"column:entity_kind;size:16;not null;index" json:"entityKind"`
	EntityID      string            `gorm:"size:64" json:"entityId"`
	CorrelationID string            `gorm:"size:64" json:"correlationId,omitempty"`
	Metadata      datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
}

// TableName keeps the audit trail apart from any backend-owned tables.
func (ActivityLog) TableName() string {
	return "asdos_activity_log"
}
