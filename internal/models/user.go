package models

import "time"

// User is an account record. Email is the external identity: tasks and
// activity entries reference users by email plus a name snapshot taken at
// write time, never by a live relation.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Password    string    `gorm:"not null" json:"-"`
	Role        Role      `gorm:"size:20;not null;check:chk_users_role,role IN ('team','admin','system_admin')" json:"role"`
	Department  string    `gorm:"size:100" json:"department,omitempty"`
	Zone        string    `gorm:"size:100" json:"zone,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"-"`
	IsHardcoded bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `json:"-"`
}
