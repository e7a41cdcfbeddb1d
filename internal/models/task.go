package models

import (
	"time"

	"gorm.io/datatypes"
)

// Status is a task lifecycle state. Transitions go through the table below;
// completed and rejected are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// StatusDeleted is never persisted. Clients may submit it on a generic
// update as a delete request; only system admins get past the permission
// check, and the value itself is still rejected as not storable.
const StatusDeleted Status = "deleted"

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves the status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusApproved, StatusInProgress, StatusRejected},
	StatusApproved:   {StatusInProgress, StatusCompleted, StatusRejected},
	StatusInProgress: {StatusCompleted},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range statusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Priority orders tasks in listings and exports.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank is the sort key for listings: urgent first, low last. Unrecognized
// values sort after every known priority.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 1
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 3
	case PriorityLow:
		return 4
	default:
		return 5
	}
}

// Task is a requested work item. Requester, assignee and approver are
// email + name snapshots copied from the user record at write time so that
// listings never need a join.
type Task struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Zone            string          `gorm:"size:100;not null" json:"zone"`
	Priority        Priority        `gorm:"size:10;default:'normal';check:chk_tasks_priority,priority IN ('low','normal','high','urgent')" json:"priority"`
	Status          Status          `gorm:"size:20;default:'pending';index;check:chk_tasks_status,status IN ('pending','approved','in_progress','completed','rejected')" json:"status"`
	RequestedBy     string          `gorm:"size:255;not null;index" json:"requested_by"`
	RequestedByName string          `gorm:"size:255;not null" json:"requested_by_name"`
	AssignedTo      string          `gorm:"size:255;index" json:"assigned_to"`
	AssignedToName  string          `gorm:"size:255" json:"assigned_to_name"`
	ApprovedBy      string          `gorm:"size:255" json:"approved_by"`
	ApprovedByName  string          `gorm:"size:255" json:"approved_by_name"`
	ApprovedAt      *time.Time      `json:"approved_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DueDate         *datatypes.Date `json:"due_date"`
	CompletedAt     *time.Time      `json:"completed_at"`
	Remarks         string          `gorm:"type:text" json:"remarks"`
}
