package services

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExportService renders the task repository into a spreadsheet. It is a
// read-only projection: rows reflect the repository at call time, nothing is
// cached or mutated.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

var exportHeaders = []interface{}{
	"ID", "Title", "Description", "Zone", "Priority", "Status",
	"Requested By", "Assigned To", "Approved By", "Approved At",
	"Created At", "Due Date", "Completed At", "Remarks",
}

// TasksWorkbook builds an XLSX workbook with one row per task, in the same
// order as the task listing. start/end restrict by creation date; end is
// inclusive.
func (s *ExportService) TasksWorkbook(start, end *time.Time) (*bytes.Buffer, error) {
	q := s.db.Order(priorityRankSQL).Order("created_at DESC")
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", end.AddDate(0, 0, 1))
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Tasks"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}

	for i, task := range tasks {
		row := []interface{}{
			task.ID,
			task.Title,
			task.Description,
			task.Zone,
			string(task.Priority),
			string(task.Status),
			task.RequestedByName,
			orDefault(task.AssignedToName, "Not Assigned"),
			orDefault(task.ApprovedByName, "Not Approved"),
			formatTime(task.ApprovedAt),
			task.CreatedAt.Format("2006-01-02 15:04:05"),
			formatDate(task.DueDate),
			formatTime(task.CompletedAt),
			task.Remarks,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2006-01-02")
}
