package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xaabbigautam/Work-Tracker/internal/dto"
	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidDueDate    = errors.New("invalid due date")
	ErrInvalidTransition = errors.New("illegal status transition")
	ErrTaskClosed        = errors.New("task is completed or rejected")
	ErrAlreadyAssigned   = errors.New("task is already assigned")
	ErrRemarksRequired   = errors.New("remarks are required to complete a task")
	ErrDeleteForbidden   = errors.New("only system admin can delete tasks")
	ErrAssigneeUnknown   = errors.New("assignee is not an active user")
)

// priorityRankSQL orders listings urgent first. Values outside the known
// set fall into the ELSE bucket and sort last.
const priorityRankSQL = "CASE priority WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 WHEN 'normal' THEN 3 WHEN 'low' THEN 4 ELSE 5 END"

// TaskService is the task lifecycle engine: it owns the repository queries,
// enforces the status transition table, and records an audit entry for every
// state change.
type TaskService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewTaskService(db *gorm.DB, activity *ActivityService) *TaskService {
	return &TaskService{db: db, activity: activity}
}

// Create stores a new task requested by actor. Status starts as pending, or
// in_progress when an assignee is named up front. The requester identity is
// always the authenticated caller, never request data.
func (s *TaskService) Create(actor *models.User, req dto.CreateTaskRequest) (*models.Task, error) {
	if req.Title == "" || req.Description == "" || req.Zone == "" {
		return nil, ErrMissingFields
	}

	priority := models.PriorityNormal
	if req.Priority != "" {
		priority = models.Priority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	task := models.Task{
		Title:           req.Title,
		Description:     req.Description,
		Zone:            req.Zone,
		Priority:        priority,
		Status:          models.StatusPending,
		RequestedBy:     actor.Email,
		RequestedByName: actor.Name,
	}

	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			return nil, ErrInvalidDueDate
		}
		task.DueDate = due
	}

	if req.AssignedTo != "" {
		assignee, err := s.lookupAssignee(req.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignee.Email
		task.AssignedToName = assignee.Name
		task.Status = models.StatusInProgress
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activity.Record(&task.ID, actor, "created", fmt.Sprintf("Task %q created", task.Title))
	return &task, nil
}

// List returns the tasks visible to actor: team members see tasks they
// requested or are assigned to, admins see everything.
func (s *TaskService) List(actor *models.User) ([]models.Task, error) {
	if actor.Role == models.RoleTeam {
		return s.ListByParticipant(actor.Email)
	}
	return s.ListAll()
}

// ListAll returns every task, urgent first, newest first within the same
// priority.
func (s *TaskService) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Order(priorityRankSQL).Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByParticipant returns tasks where email is the requester or the
// assignee, newest first.
func (s *TaskService) ListByParticipant(email string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("requested_by = ? OR assigned_to = ?", email, email).
		Order("created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return &task, nil
}

// Update applies a partial field update. Status changes are validated
// against the transition table; a terminal task accepts no update at all.
// Submitting status "deleted" is a delete request and is refused for
// everyone below system admin, and rejected as unstorable even for them.
// The audit entry carries the submitted fields serialized as JSON.
func (s *TaskService) Update(actor *models.User, id uint, req dto.UpdateTaskRequest) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}

	if req.Status != nil && models.Status(*req.Status) == models.StatusDeleted {
		if actor.Role != models.RoleSystemAdmin {
			return ErrDeleteForbidden
		}
		return ErrInvalidStatus
	}

	if task.Status.Terminal() {
		return ErrTaskClosed
	}

	updates := map[string]interface{}{}
	submitted := map[string]interface{}{}

	if req.Title != nil {
		updates["title"] = *req.Title
		submitted["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		submitted["description"] = *req.Description
	}
	if req.Zone != nil {
		updates["zone"] = *req.Zone
		submitted["zone"] = *req.Zone
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		if !priority.Valid() {
			return ErrInvalidPriority
		}
		updates["priority"] = priority
		submitted["priority"] = *req.Priority
	}
	if req.Status != nil {
		next := models.Status(*req.Status)
		if !next.Valid() {
			return ErrInvalidStatus
		}
		if next != task.Status {
			if !task.Status.CanTransitionTo(next) {
				return ErrInvalidTransition
			}
			updates["status"] = next
		}
		submitted["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
		submitted["assigned_to"] = *req.AssignedTo
	}
	if req.AssignedToName != nil {
		updates["assigned_to_name"] = *req.AssignedToName
		submitted["assigned_to_name"] = *req.AssignedToName
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return ErrInvalidDueDate
		}
		updates["due_date"] = due
		submitted["due_date"] = *req.DueDate
	}
	if req.Remarks != nil {
		updates["remarks"] = *req.Remarks
		submitted["remarks"] = *req.Remarks
	}

	// An empty payload still refreshes the update timestamp.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}

	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	diff, _ := json.Marshal(submitted)
	s.activity.Record(&id, actor, "updated", string(diff))
	return nil
}

// Approve moves a pending task to approved and snapshots the approver.
// Re-approving an approved task reapplies the approver without error; any
// other starting state is an illegal transition.
func (s *TaskService) Approve(actor *models.User, id uint) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}

	if task.Status != models.StatusApproved && !task.Status.CanTransitionTo(models.StatusApproved) {
		return ErrInvalidTransition
	}

	now := time.Now()
	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           models.StatusApproved,
		"approved_by":      actor.Email,
		"approved_by_name": actor.Name,
		"approved_at":      now,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to approve task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	s.activity.Record(&id, actor, "approved", "")
	return nil
}

// Assign sets the assignee and moves the task to in_progress. The task must
// be pending or approved and not already assigned; the assignee name is
// snapshotted from the user record, not trusted from the request.
func (s *TaskService) Assign(actor *models.User, id uint, assigneeEmail string) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}

	if task.AssignedTo != "" {
		return ErrAlreadyAssigned
	}
	if !task.Status.CanTransitionTo(models.StatusInProgress) {
		return ErrInvalidTransition
	}

	assignee, err := s.lookupAssignee(assigneeEmail)
	if err != nil {
		return err
	}

	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"assigned_to":      assignee.Email,
		"assigned_to_name": assignee.Name,
		"status":           models.StatusInProgress,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to assign task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	s.activity.Record(&id, actor, "assigned", "Assigned to "+assignee.Name)
	return nil
}

// Complete closes an approved or in-progress task. Remarks are mandatory;
// completion is terminal.
func (s *TaskService) Complete(actor *models.User, id uint, remarks string) error {
	if strings.TrimSpace(remarks) == "" {
		return ErrRemarksRequired
	}

	task, err := s.Get(id)
	if err != nil {
		return err
	}

	if !task.Status.CanTransitionTo(models.StatusCompleted) {
		return ErrInvalidTransition
	}

	now := time.Now()
	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       models.StatusCompleted,
		"completed_at": now,
		"remarks":      remarks,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to complete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	s.activity.Record(&id, actor, "completed", remarks)
	return nil
}

// Delete removes the task row. The audit entry carries no task reference
// since the row is gone.
func (s *TaskService) Delete(actor *models.User, id uint) error {
	res := s.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	s.activity.Record(nil, actor, "deleted", fmt.Sprintf("Task %d deleted", id))
	return nil
}

// Stats aggregates counts in a single pass, no per-row fetch.
func (s *TaskService) Stats() (*dto.TaskStats, error) {
	var stats dto.TaskStats
	err := s.db.Model(&models.Task{}).Select(
		"COUNT(*) as total, " +
			"COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) as pending, " +
			"COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0) as approved, " +
			"COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) as in_progress, " +
			"COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) as completed, " +
			"COALESCE(SUM(CASE WHEN priority = 'urgent' THEN 1 ELSE 0 END), 0) as urgent").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	return &stats, nil
}

func (s *TaskService) lookupAssignee(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, ErrAssigneeUnknown
	}
	return &user, nil
}

func parseDate(s string) (*datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
