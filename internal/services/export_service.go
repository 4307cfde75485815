package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo       repositories.Repository
	assessment AssessmentService
	logger     *slog.Logger
}

func NewExportService(repo repositories.Repository, assessmentService AssessmentService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:       repo,
		assessment: assessmentService,
		logger:     logger,
	}
}

var exportHeaders = []string{
	"ID", "Test Type", "Respondent", "Status", "Completed At", "Result Summary",
}

func (s *exportService) ExportAssessmentsToExcel(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) ([]byte, error) {
	rows, err := s.collectRows(ctx, workspaceID, filters, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Assessments"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported assessments to Excel",
		"workspace_id", workspaceID,
		"row_count", len(rows))

	return buf.Bytes(), nil
}

func (s *exportService) ExportAssessmentsToCSV(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) ([]byte, error) {
	rows, err := s.collectRows(ctx, workspaceID, filters, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Exported assessments to CSV",
		"workspace_id", workspaceID,
		"row_count", len(rows))

	return buf.Bytes(), nil
}

func (s *exportService) collectRows(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) ([][]string, error) {
	// Reuse the service-level listing so role restrictions apply to
	// exports as well.
	list, err := s.assessment.List(ctx, workspaceID, filters, userID)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(list.Assessments))
	for _, a := range list.Assessments {
		completedAt := ""
		if a.CompletedAt != nil {
			completedAt = a.CompletedAt.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(a.ID), 10),
			a.TestType,
			a.RespondentID,
			string(a.Status),
			completedAt,
			resultSummary(a.Result),
		})
	}
	return rows, nil
}

// resultSummary renders the one-line human summary used in export files.
func resultSummary(result scoring.Result) string {
	switch r := result.(type) {
	case nil:
		return ""
	case *scoring.DISCResult:
		return fmt.Sprintf("Profile %s", r.Profile)
	case *scoring.SeniorityResult:
		return fmt.Sprintf("%s (%.0f%%)", r.Level, r.Percentage)
	case *scoring.LeadershipStyleResult:
		return r.Style
	case *scoring.DEFMethodResult:
		return fmt.Sprintf("Global %.0f%%", r.GlobalPercentage)
	case *scoring.Values8DResult:
		return topDimension(r)
	default:
		return ""
	}
}

func topDimension(r *scoring.Values8DResult) string {
	if len(r.Dimensions) == 0 {
		return ""
	}
	dims := make([]scoring.DimensionResult, len(r.Dimensions))
	copy(dims, r.Dimensions)
	sort.SliceStable(dims, func(i, j int) bool { return dims[i].Score > dims[j].Score })
	return fmt.Sprintf("Top dimension %s (%.1f)", dims[0].Name, dims[0].Score)
}
