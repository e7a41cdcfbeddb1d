package dto

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Zone        string `json:"zone"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
	AssignedTo  string `json:"assigned_to"`
}

type CreateTaskResponse struct {
	Success bool `json:"success"`
	TaskID  uint `json:"taskId"`
}

// UpdateTaskRequest is a partial update: nil means "leave unchanged".
// Requester fields are deliberately absent, they are set once at creation.
type UpdateTaskRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Zone           *string `json:"zone"`
	Priority       *string `json:"priority"`
	Status         *string `json:"status"`
	AssignedTo     *string `json:"assigned_to"`
	AssignedToName *string `json:"assigned_to_name"`
	DueDate        *string `json:"due_date"`
	Remarks        *string `json:"remarks"`
}

type AssignTaskRequest struct {
	AssigneeEmail string `json:"assigneeEmail"`
	AssigneeName  string `json:"assigneeName"`
}

type CompleteTaskRequest struct {
	Remarks string `json:"remarks"`
}

type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Urgent     int64 `json:"urgent"`
}
