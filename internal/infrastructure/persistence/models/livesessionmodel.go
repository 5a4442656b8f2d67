package models

import "time"

// LiveSessionModel is the GORM model for the live_sessions table.
//
// ActiveToken holds 1 while the session is active and NULL after close. The
// composite unique key on (vendor_id, active_token) is the store-level
// guarantee that a vendor has at most one active session: NULLs never
// collide, so closed rows stay out of the constraint. MySQL has no partial
// unique indexes, which is why the invariant lives in a nullable column
// instead of a WHERE clause.
type LiveSessionModel struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	SID         string     `gorm:"column:sid;type:varchar(50);not null;uniqueIndex"`
	VendorID    uint       `gorm:"column:vendor_id;not null;index;uniqueIndex:uk_live_sessions_vendor_active,priority:1"`
	Latitude    float64    `gorm:"column:latitude;not null"`
	Longitude   float64    `gorm:"column:longitude;not null"`
	Address     *string    `gorm:"column:address;type:varchar(255)"`
	StartTime   time.Time  `gorm:"column:start_time;not null"`
	EndTime     *time.Time `gorm:"column:end_time"`
	AutoEndTime *time.Time `gorm:"column:auto_end_time"`
	IsActive    bool       `gorm:"column:is_active;not null;default:false;index"`
	ActiveToken *uint8     `gorm:"column:active_token;uniqueIndex:uk_live_sessions_vendor_active,priority:2"`
	EndedBy     *string    `gorm:"column:ended_by;type:varchar(20)"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for GORM
func (LiveSessionModel) TableName() string {
	return "live_sessions"
}
