package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sales-cockpit/assessment-service/internal/events"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/sales-cockpit/assessment-service/internal/validator"
)

type structureService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStructureService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) StructureService {
	return &structureService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *structureService) Create(ctx context.Context, req *CreateStructureRequest, creatorID string) (*StructureResponse, error) {
	s.logger.Info("Creating test structure", "test_type", req.TestType, "creator_id", creatorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if errs := s.validator.Structure().Validate(req.TestType, req.Definition); len(errs) > 0 {
		return nil, errs
	}

	if err := s.requireRole(ctx, creatorID, models.RoleAdmin, models.RoleManager); err != nil {
		return nil, err
	}

	definition, err := json.Marshal(req.Definition)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal structure definition: %w", err)
	}

	structure := &models.TestStructure{
		TestType:   req.TestType,
		Name:       req.Name,
		Definition: definition,
		CreatedBy:  creatorID,
	}

	err = s.repo.WithTx(ctx, func(tx repositories.Repository) error {
		version, err := tx.TestStructure().NextVersion(ctx, req.TestType)
		if err != nil {
			return err
		}
		structure.Version = version

		if err := tx.TestStructure().Create(ctx, structure); err != nil {
			return err
		}

		if req.Activate {
			return tx.TestStructure().Activate(ctx, structure.ID)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test structure: %w", err)
	}
	structure.IsActive = req.Activate

	s.publish(ctx, events.NewStructureCreatedEvent(structure.ID, structure.TestType, structure.Version, creatorID))
	if req.Activate {
		s.publish(ctx, events.NewStructureActivatedEvent(structure.ID, structure.TestType, structure.Version, creatorID))
	}

	s.logger.Info("Test structure created",
		"structure_id", structure.ID,
		"test_type", structure.TestType,
		"version", structure.Version)

	return s.buildResponse(structure, true)
}

func (s *structureService) GetByID(ctx context.Context, id uint) (*StructureResponse, error) {
	structure, err := s.repo.TestStructure().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStructureNotFound
		}
		return nil, fmt.Errorf("failed to get test structure: %w", err)
	}
	return s.buildResponse(structure, true)
}

func (s *structureService) GetActive(ctx context.Context, testType string) (*StructureResponse, error) {
	if !isKnownTestType(testType) {
		return nil, ErrStructureInvalidType
	}

	structure, err := s.repo.TestStructure().GetActiveByType(ctx, testType)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveStructure
		}
		return nil, fmt.Errorf("failed to get active test structure: %w", err)
	}
	return s.buildResponse(structure, true)
}

func (s *structureService) List(ctx context.Context, filters repositories.StructureFilters) (*StructureListResponse, error) {
	structures, total, err := s.repo.TestStructure().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list test structures: %w", err)
	}

	response := &StructureListResponse{
		Structures: make([]*StructureResponse, len(structures)),
		Total:      total,
		Page:       filters.Offset / max(filters.Limit, 1),
		Size:       filters.Limit,
	}
	for i, structure := range structures {
		// definitions are heavy; the list view carries metadata only
		resp, err := s.buildResponse(structure, false)
		if err != nil {
			return nil, err
		}
		response.Structures[i] = resp
	}
	return response, nil
}

func (s *structureService) Update(ctx context.Context, id uint, req *UpdateStructureRequest, userID string) (*StructureResponse, error) {
	s.logger.Info("Updating test structure", "structure_id", id, "user_id", userID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, userID, models.RoleAdmin, models.RoleManager); err != nil {
		return nil, err
	}

	structure, err := s.repo.TestStructure().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStructureNotFound
		}
		return nil, fmt.Errorf("failed to get test structure: %w", err)
	}

	if req.Name != nil {
		structure.Name = *req.Name
	}
	if req.Definition != nil {
		if errs := s.validator.Structure().Validate(structure.TestType, req.Definition); len(errs) > 0 {
			return nil, errs
		}
		definition, err := json.Marshal(req.Definition)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal structure definition: %w", err)
		}
		structure.Definition = definition
	}

	if err := s.repo.TestStructure().Update(ctx, structure); err != nil {
		return nil, fmt.Errorf("failed to update test structure: %w", err)
	}

	s.logger.Info("Test structure updated", "structure_id", id)
	return s.buildResponse(structure, true)
}

func (s *structureService) Delete(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deleting test structure", "structure_id", id, "user_id", userID)

	if err := s.requireRole(ctx, userID, models.RoleAdmin); err != nil {
		return err
	}

	structure, err := s.repo.TestStructure().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStructureNotFound
		}
		return fmt.Errorf("failed to get test structure: %w", err)
	}
	if structure.IsActive {
		return ErrStructureNotDeletable
	}

	if err := s.repo.TestStructure().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete test structure: %w", err)
	}

	s.logger.Info("Test structure deleted", "structure_id", id)
	return nil
}

// ===== ACTIVATION =====

func (s *structureService) Activate(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Activating test structure", "structure_id", id, "user_id", userID)

	if err := s.requireRole(ctx, userID, models.RoleAdmin, models.RoleManager); err != nil {
		return err
	}

	structure, err := s.repo.TestStructure().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStructureNotFound
		}
		return fmt.Errorf("failed to get test structure: %w", err)
	}
	if structure.IsActive {
		return ErrStructureAlreadyActive
	}

	if err := s.repo.TestStructure().Activate(ctx, id); err != nil {
		return fmt.Errorf("failed to activate test structure: %w", err)
	}

	s.publish(ctx, events.NewStructureActivatedEvent(structure.ID, structure.TestType, structure.Version, userID))

	s.logger.Info("Test structure activated",
		"structure_id", id,
		"test_type", structure.TestType,
		"version", structure.Version)
	return nil
}

func (s *structureService) Deactivate(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deactivating test structure", "structure_id", id, "user_id", userID)

	if err := s.requireRole(ctx, userID, models.RoleAdmin, models.RoleManager); err != nil {
		return err
	}

	if err := s.repo.TestStructure().Deactivate(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStructureNotFound
		}
		return fmt.Errorf("failed to deactivate test structure: %w", err)
	}
	return nil
}

// ===== HELPERS =====

func (s *structureService) buildResponse(structure *models.TestStructure, includeDefinition bool) (*StructureResponse, error) {
	resp := &StructureResponse{
		ID:        structure.ID,
		TestType:  structure.TestType,
		Name:      structure.Name,
		Version:   structure.Version,
		IsActive:  structure.IsActive,
		CreatedBy: structure.CreatedBy,
		CreatedAt: structure.CreatedAt,
		UpdatedAt: structure.UpdatedAt,
	}
	if includeDefinition {
		doc, err := structure.Decode()
		if err != nil {
			return nil, err
		}
		resp.Definition = doc
	}
	return resp, nil
}

func (s *structureService) requireRole(ctx context.Context, userID string, roles ...models.UserRole) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	for _, role := range roles {
		if user.Role == role {
			return nil
		}
	}
	return NewPermissionError(userID, 0, "test_structure", "manage", "insufficient role permissions")
}

func (s *structureService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// event delivery is best-effort; the write already committed
		s.logger.Error("Failed to publish structure event", "event_type", event.Type, "error", err)
	}
}

func isKnownTestType(testType string) bool {
	for _, known := range scoring.KnownTestTypes() {
		if string(known) == testType {
			return true
		}
	}
	return false
}
