package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository bundles the per-entity mocks behind the aggregate handle.
type mockRepository struct {
	structures    *mockStructureRepo
	assessments   *mockAssessmentRepo
	users         *mockUserRepo
	notifications *mockNotificationRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		structures:    &mockStructureRepo{},
		assessments:   &mockAssessmentRepo{},
		users:         &mockUserRepo{},
		notifications: &mockNotificationRepo{},
	}
}

func (m *mockRepository) TestStructure() repositories.TestStructureRepository { return m.structures }
func (m *mockRepository) Assessment() repositories.AssessmentRepository      { return m.assessments }
func (m *mockRepository) User() repositories.UserRepository                  { return m.users }
func (m *mockRepository) Notification() repositories.NotificationRepository  { return m.notifications }

func (m *mockRepository) WithTx(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

type mockStructureRepo struct {
	mock.Mock
}

func (m *mockStructureRepo) Create(ctx context.Context, structure *models.TestStructure) error {
	return m.Called(ctx, structure).Error(0)
}

func (m *mockStructureRepo) GetByID(ctx context.Context, id uint) (*models.TestStructure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestStructure), args.Error(1)
}

func (m *mockStructureRepo) GetActiveByType(ctx context.Context, testType string) (*models.TestStructure, error) {
	args := m.Called(ctx, testType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TestStructure), args.Error(1)
}

func (m *mockStructureRepo) List(ctx context.Context, filters repositories.StructureFilters) ([]*models.TestStructure, int64, error) {
	args := m.Called(ctx, filters)
	var structures []*models.TestStructure
	if args.Get(0) != nil {
		structures = args.Get(0).([]*models.TestStructure)
	}
	return structures, args.Get(1).(int64), args.Error(2)
}

func (m *mockStructureRepo) Update(ctx context.Context, structure *models.TestStructure) error {
	return m.Called(ctx, structure).Error(0)
}

func (m *mockStructureRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStructureRepo) Activate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStructureRepo) Deactivate(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStructureRepo) NextVersion(ctx context.Context, testType string) (int, error) {
	args := m.Called(ctx, testType)
	return args.Int(0), args.Error(1)
}

type mockAssessmentRepo struct {
	mock.Mock
}

func (m *mockAssessmentRepo) Create(ctx context.Context, assessment *models.Assessment) error {
	return m.Called(ctx, assessment).Error(0)
}

func (m *mockAssessmentRepo) GetByID(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *mockAssessmentRepo) GetByIDWithStructure(ctx context.Context, id uint) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *mockAssessmentRepo) Update(ctx context.Context, assessment *models.Assessment) error {
	return m.Called(ctx, assessment).Error(0)
}

func (m *mockAssessmentRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAssessmentRepo) List(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	args := m.Called(ctx, workspaceID, filters)
	var assessments []*models.Assessment
	if args.Get(0) != nil {
		assessments = args.Get(0).([]*models.Assessment)
	}
	return assessments, args.Get(1).(int64), args.Error(2)
}

func (m *mockAssessmentRepo) GetByRespondent(ctx context.Context, workspaceID, respondentID string, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	args := m.Called(ctx, workspaceID, respondentID, filters)
	var assessments []*models.Assessment
	if args.Get(0) != nil {
		assessments = args.Get(0).([]*models.Assessment)
	}
	return assessments, args.Get(1).(int64), args.Error(2)
}

func (m *mockAssessmentRepo) GetStats(ctx context.Context, workspaceID string) (*repositories.AssessmentStats, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.AssessmentStats), args.Error(1)
}

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *mockNotificationRepo) ListByRecipient(ctx context.Context, workspaceID, recipientID string, limit, offset int) ([]*models.Notification, int64, error) {
	args := m.Called(ctx, workspaceID, recipientID, limit, offset)
	var notifications []*models.Notification
	if args.Get(0) != nil {
		notifications = args.Get(0).([]*models.Notification)
	}
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id uint, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}
