package models

import "time"

// ActivityLog is an append-only audit entry. TaskID is nil for entries that
// outlive their task, such as the record of a deletion. The application
// never updates or deletes rows in this table.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    *uint     `gorm:"index" json:"task_id"`
	UserEmail string    `gorm:"size:255" json:"user_email"`
	UserName  string    `gorm:"size:255" json:"user_name"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}
