package services

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/sales-cockpit/assessment-service/internal/errors"
	"github.com/sales-cockpit/assessment-service/internal/events"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/sales-cockpit/assessment-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validDefinition() *scoring.TestStructure {
	return &scoring.TestStructure{
		Categories: []scoring.Category{
			{
				Name: "Prospecção",
				Questions: []scoring.Question{
					{ID: "q1", Options: []scoring.Option{{Value: 1}, {Value: 5}}},
				},
			},
		},
	}
}

func newStructureServiceForTest(repo *mockRepository, publisher events.EventPublisher) StructureService {
	return NewStructureService(repo, publisher, testLogger(), validator.New())
}

func adminUser() *models.User {
	return &models.User{ID: "user-admin", Role: models.RoleAdmin}
}

func TestStructureService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns the next version", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher()
		service := newStructureServiceForTest(repo, publisher)

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("NextVersion", ctx, "seniority_seller").Return(3, nil)
		repo.structures.On("Create", ctx, mock.AnythingOfType("*models.TestStructure")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*models.TestStructure).ID = 9
			}).
			Return(nil)

		resp, err := service.Create(ctx, &CreateStructureRequest{
			TestType:   "seniority_seller",
			Name:       "Seniority v3",
			Definition: validDefinition(),
		}, "user-admin")

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Version)
		assert.False(t, resp.IsActive)
		require.NotNil(t, resp.Definition)

		require.Len(t, publisher.Events, 1)
		assert.Equal(t, events.EventStructureCreated, publisher.Events[0].Type)
	})

	t.Run("activate on create emits both events", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher()
		service := newStructureServiceForTest(repo, publisher)

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("NextVersion", ctx, "disc").Return(1, nil)
		repo.structures.On("Create", ctx, mock.AnythingOfType("*models.TestStructure")).Return(nil)
		repo.structures.On("Activate", ctx, mock.AnythingOfType("uint")).Return(nil)

		definition := validDefinition()
		definition.Categories[0].Questions[0] = scoring.Question{
			ID: "q1",
			MatrixConfig: &scoring.MatrixConfig{
				Scale: scoring.Scale{Min: 1, Max: 5},
				Statements: []scoring.Statement{
					{ID: "s1", Metadata: scoring.StatementMetadata{Profile: "D"}},
				},
			},
		}

		resp, err := service.Create(ctx, &CreateStructureRequest{
			TestType:   "disc",
			Name:       "DISC v1",
			Definition: definition,
			Activate:   true,
		}, "user-admin")

		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		require.Len(t, publisher.Events, 2)
		assert.Equal(t, events.EventStructureCreated, publisher.Events[0].Type)
		assert.Equal(t, events.EventStructureActivated, publisher.Events[1].Type)
	})

	t.Run("invalid definition is rejected", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		_, err := service.Create(ctx, &CreateStructureRequest{
			TestType:   "seniority_seller",
			Name:       "Broken",
			Definition: &scoring.TestStructure{},
		}, "user-admin")

		var ve apperrors.ValidationErrors
		require.True(t, errors.As(err, &ve))
	})

	t.Run("sellers cannot create structures", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		repo.users.On("GetByID", ctx, "user-seller").
			Return(&models.User{ID: "user-seller", Role: models.RoleSeller}, nil)

		_, err := service.Create(ctx, &CreateStructureRequest{
			TestType:   "seniority_seller",
			Name:       "Nope",
			Definition: validDefinition(),
		}, "user-seller")

		var pe *PermissionError
		assert.True(t, errors.As(err, &pe))
	})
}

func TestStructureService_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes the activation event", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher()
		service := newStructureServiceForTest(repo, publisher)

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("GetByID", ctx, uint(9)).
			Return(&models.TestStructure{ID: 9, TestType: "disc", Version: 2}, nil)
		repo.structures.On("Activate", ctx, uint(9)).Return(nil)

		err := service.Activate(ctx, 9, "user-admin")
		require.NoError(t, err)

		require.Len(t, publisher.Events, 1)
		assert.Equal(t, events.EventStructureActivated, publisher.Events[0].Type)
	})

	t.Run("already active", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("GetByID", ctx, uint(9)).
			Return(&models.TestStructure{ID: 9, TestType: "disc", IsActive: true}, nil)

		err := service.Activate(ctx, 9, "user-admin")
		assert.ErrorIs(t, err, ErrStructureAlreadyActive)
	})
}

func TestStructureService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("active structures are protected", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("GetByID", ctx, uint(9)).
			Return(&models.TestStructure{ID: 9, TestType: "disc", IsActive: true}, nil)

		err := service.Delete(ctx, 9, "user-admin")
		assert.ErrorIs(t, err, ErrStructureNotDeletable)
	})

	t.Run("inactive structures are deleted", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		repo.users.On("GetByID", ctx, "user-admin").Return(adminUser(), nil)
		repo.structures.On("GetByID", ctx, uint(9)).
			Return(&models.TestStructure{ID: 9, TestType: "disc"}, nil)
		repo.structures.On("Delete", ctx, uint(9)).Return(nil)

		err := service.Delete(ctx, 9, "user-admin")
		require.NoError(t, err)
		repo.structures.AssertExpectations(t)
	})
}

func TestStructureService_GetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown test type", func(t *testing.T) {
		repo := newMockRepository()
		service := newStructureServiceForTest(repo, events.NewMockEventPublisher())

		_, err := service.GetActive(ctx, "astrology")
		assert.ErrorIs(t, err, ErrStructureInvalidType)
	})
}
