package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogModel is the GORM model for the audit_logs table. Rows are
// append-only; there is no update path.
type AuditLogModel struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	ActorSID  string         `gorm:"column:actor_sid;type:varchar(50);not null;index"`
	Action    string         `gorm:"column:action;type:varchar(50);not null;index"`
	TargetSID string         `gorm:"column:target_sid;type:varchar(50);not null;index"`
	Metadata  datatypes.JSON `gorm:"column:metadata"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}
