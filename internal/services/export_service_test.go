package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// stubAssessmentService returns a canned listing so export tests do not
// depend on the repository wiring.
type stubAssessmentService struct {
	AssessmentService
	list *AssessmentListResponse
}

func (s *stubAssessmentService) List(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error) {
	return s.list, nil
}

func exportFixture() *AssessmentListResponse {
	completedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return &AssessmentListResponse{
		Assessments: []*AssessmentResponse{
			{
				ID:           1,
				TestType:     "disc",
				RespondentID: "user-a",
				Status:       models.AssessmentCompleted,
				CompletedAt:  &completedAt,
				Result:       &scoring.DISCResult{Profile: "DI"},
			},
			{
				ID:           2,
				TestType:     "seniority_seller",
				RespondentID: "user-b",
				Status:       models.AssessmentCompleted,
				CompletedAt:  &completedAt,
				Result:       &scoring.SeniorityResult{Level: "Pleno", Percentage: 65},
			},
			{
				ID:           3,
				TestType:     "values_8d",
				RespondentID: "user-c",
				Status:       models.AssessmentPending,
			},
		},
		Total: 3,
	}
}

func TestExportService_CSV(t *testing.T) {
	service := NewExportService(newMockRepository(), &stubAssessmentService{list: exportFixture()}, testLogger())

	data, err := service.ExportAssessmentsToCSV(context.Background(), "ws-1", repositories.AssessmentFilters{}, "user-manager")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, []string{"1", "disc", "user-a", "completed", "2026-03-15T10:00:00Z", "Profile DI"}, records[1])
	assert.Equal(t, "Pleno (65%)", records[2][5])

	// pending assessments export with empty completion and summary
	assert.Equal(t, "", records[3][4])
	assert.Equal(t, "", records[3][5])
}

func TestExportService_Excel(t *testing.T) {
	service := NewExportService(newMockRepository(), &stubAssessmentService{list: exportFixture()}, testLogger())

	data, err := service.ExportAssessmentsToExcel(context.Background(), "ws-1", repositories.AssessmentFilters{}, "user-manager")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Assessments")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)

	assert.Equal(t, "Test Type", rows[0][1])
	assert.Equal(t, "disc", rows[1][1])
	assert.Equal(t, "Profile DI", rows[1][5])
}

func TestResultSummary(t *testing.T) {
	assert.Equal(t, "Indefinido", resultSummary(&scoring.LeadershipStyleResult{Style: "Indefinido"}))
	assert.Equal(t, "Global 60%", resultSummary(&scoring.DEFMethodResult{GlobalPercentage: 60}))
	assert.Equal(t, "", resultSummary(nil))

	values := &scoring.Values8DResult{
		Dimensions: []scoring.DimensionResult{
			{Name: "Coragem", Score: 3.2},
			{Name: "Disciplina", Score: 4.5},
		},
	}
	assert.Equal(t, "Top dimension Disciplina (4.5)", resultSummary(values))
}
