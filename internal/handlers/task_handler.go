package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xaabbigautam/Work-Tracker/internal/dto"
	"github.com/xaabbigautam/Work-Tracker/internal/middleware"
	"github.com/xaabbigautam/Work-Tracker/internal/services"
)

type TaskHandler struct {
	tasks    *services.TaskService
	activity *services.ActivityService
	export   *services.ExportService
}

func NewTaskHandler(tasks *services.TaskService, activity *services.ActivityService, export *services.ExportService) *TaskHandler {
	return &TaskHandler{tasks: tasks, activity: activity, export: export}
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	tasks, err := h.tasks.List(middleware.CurrentUser(c))
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Database error"})
	}
	return c.JSON(tasks)
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	task, err := h.tasks.Create(middleware.CurrentUser(c), req)
	if err != nil {
		return h.taskError(c, err)
	}

	return c.JSON(dto.CreateTaskResponse{Success: true, TaskID: task.ID})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.tasks.Update(middleware.CurrentUser(c), id, req); err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *TaskHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	if err := h.tasks.Approve(middleware.CurrentUser(c), id); err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *TaskHandler) Assign(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if req.AssigneeEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "assigneeEmail is required"})
	}

	if err := h.tasks.Assign(middleware.CurrentUser(c), id, req.AssigneeEmail); err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	var req dto.CompleteTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if err := h.tasks.Complete(middleware.CurrentUser(c), id, req.Remarks); err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	if err := h.tasks.Delete(middleware.CurrentUser(c), id); err != nil {
		return h.taskError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *TaskHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.tasks.Stats()
	if err != nil {
		slog.Error("failed to aggregate stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Database error"})
	}
	return c.JSON(stats)
}

func (h *TaskHandler) Logs(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid task ID"})
	}

	logs, err := h.activity.ListForTask(id)
	if err != nil {
		slog.Error("failed to list activity", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Database error"})
	}
	return c.JSON(logs)
}

// ExportExcel streams all tasks as an XLSX attachment, optionally limited to
// a creation date range.
func (h *TaskHandler) ExportExcel(c *fiber.Ctx) error {
	var start, end *time.Time
	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid start_date"})
		}
		start = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid end_date"})
		}
		end = &t
	}

	buf, err := h.export.TasksWorkbook(start, end)
	if err != nil {
		slog.Error("excel export failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Export failed"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=tasks_export.xlsx`)
	return c.Send(buf.Bytes())
}

// taskError maps service errors onto the HTTP taxonomy: not found is
// reported distinctly from forbidden so callers can tell them apart.
func (h *TaskHandler) taskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Task not found"})
	case errors.Is(err, services.ErrDeleteForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrTaskClosed),
		errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrRemarksRequired),
		errors.Is(err, services.ErrAssigneeUnknown):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("task operation failed", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Database error"})
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
