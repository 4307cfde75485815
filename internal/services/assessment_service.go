package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sales-cockpit/assessment-service/internal/events"
	"github.com/sales-cockpit/assessment-service/internal/models"
	"github.com/sales-cockpit/assessment-service/internal/repositories"
	"github.com/sales-cockpit/assessment-service/internal/scoring"
	"github.com/sales-cockpit/assessment-service/internal/validator"
	"gorm.io/datatypes"
)

type assessmentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAssessmentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) AssessmentService {
	return &assessmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest, creatorID string) (*AssessmentResponse, error) {
	s.logger.Info("Creating assessment",
		"workspace_id", req.WorkspaceID,
		"test_type", req.TestType,
		"respondent_id", req.RespondentID,
		"creator_id", creatorID)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	// Pin the assessment to the currently active structure version so a
	// later activation cannot change how these answers are scored.
	structure, err := s.repo.TestStructure().GetActiveByType(ctx, req.TestType)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveStructure
		}
		return nil, fmt.Errorf("failed to resolve active structure: %w", err)
	}

	assessment := &models.Assessment{
		WorkspaceID: req.WorkspaceID,
		TestType:    req.TestType,
		StructureID: structure.ID,
		Respondent:  req.RespondentID,
		Status:      models.AssessmentPending,
		CreatedBy:   creatorID,
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.publish(ctx, events.NewAssessmentCreatedEvent(
		assessment.ID, assessment.WorkspaceID, assessment.TestType,
		assessment.StructureID, assessment.Respondent, creatorID))

	s.logger.Info("Assessment created", "assessment_id", assessment.ID, "structure_id", structure.ID)
	return s.buildResponse(assessment)
}

func (s *assessmentService) GetByID(ctx context.Context, id uint, userID string) (*AssessmentResponse, error) {
	assessment, err := s.getAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, assessment, userID, "read"); err != nil {
		return nil, err
	}
	return s.buildResponse(assessment)
}

func (s *assessmentService) List(ctx context.Context, workspaceID string, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error) {
	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Sellers only see their own assessments
	if role == models.RoleSeller {
		respondent := userID
		filters.Respondent = &respondent
	}

	assessments, total, err := s.repo.Assessment().List(ctx, workspaceID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return s.buildListResponse(assessments, total, filters)
}

func (s *assessmentService) GetByRespondent(ctx context.Context, workspaceID, respondentID string, filters repositories.AssessmentFilters, userID string) (*AssessmentListResponse, error) {
	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role == models.RoleSeller && respondentID != userID {
		return nil, NewPermissionError(userID, 0, "assessment", "list", "sellers can only list their own assessments")
	}

	assessments, total, err := s.repo.Assessment().GetByRespondent(ctx, workspaceID, respondentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessments by respondent: %w", err)
	}
	return s.buildListResponse(assessments, total, filters)
}

func (s *assessmentService) Delete(ctx context.Context, id uint, userID string) error {
	s.logger.Info("Deleting assessment", "assessment_id", id, "user_id", userID)

	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin && role != models.RoleManager {
		return NewPermissionError(userID, id, "assessment", "delete", "insufficient role permissions")
	}

	assessment, err := s.getAssessment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.publish(ctx, events.NewAssessmentDeletedEvent(assessment.ID, assessment.WorkspaceID, userID))

	s.logger.Info("Assessment deleted", "assessment_id", id)
	return nil
}

// ===== SUBMISSION AND SCORING =====

func (s *assessmentService) Submit(ctx context.Context, id uint, req *SubmitAnswersRequest, userID string) (*AssessmentResponse, error) {
	s.logger.Info("Submitting assessment answers", "assessment_id", id, "user_id", userID)

	if len(req.Answers) == 0 {
		return nil, ErrEmptyAnswers
	}

	assessment, err := s.getAssessmentWithStructure(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, assessment, userID, "submit"); err != nil {
		return nil, err
	}

	switch assessment.Status {
	case models.AssessmentCompleted:
		return nil, ErrAssessmentAlreadyCompleted
	case models.AssessmentArchived:
		return nil, ErrAssessmentArchived
	}

	resultJSON, err := s.score(assessment, req.Answers)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	now := time.Now()
	assessment.Answers = answersJSON
	assessment.Result = resultJSON
	assessment.Status = models.AssessmentCompleted
	assessment.CompletedAt = &now

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to persist assessment result: %w", err)
	}

	s.publish(ctx, events.NewAssessmentScoredEvent(
		assessment.ID, assessment.WorkspaceID, assessment.TestType,
		assessment.Respondent, now, json.RawMessage(resultJSON)))
	s.notifyResultAvailable(ctx, assessment, userID)

	s.logger.Info("Assessment scored",
		"assessment_id", assessment.ID,
		"test_type", assessment.TestType)

	return s.buildResponse(assessment)
}

func (s *assessmentService) Rescore(ctx context.Context, id uint, userID string) (*AssessmentResponse, error) {
	s.logger.Info("Rescoring assessment", "assessment_id", id, "user_id", userID)

	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && role != models.RoleManager {
		return nil, NewPermissionError(userID, id, "assessment", "rescore", "insufficient role permissions")
	}

	assessment, err := s.getAssessmentWithStructure(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.Status != models.AssessmentCompleted || len(assessment.Answers) == 0 {
		return nil, ErrAssessmentNotCompleted
	}

	var answers scoring.Answers
	if err := json.Unmarshal(assessment.Answers, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode stored answers: %w", err)
	}

	resultJSON, err := s.score(assessment, answers)
	if err != nil {
		return nil, err
	}
	assessment.Result = resultJSON

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to persist rescored result: %w", err)
	}

	s.publish(ctx, events.NewAssessmentScoredEvent(
		assessment.ID, assessment.WorkspaceID, assessment.TestType,
		assessment.Respondent, time.Now(), json.RawMessage(resultJSON)))

	s.logger.Info("Assessment rescored", "assessment_id", assessment.ID)
	return s.buildResponse(assessment)
}

// score runs the calculator against the assessment's pinned structure and
// returns the serialized result.
func (s *assessmentService) score(assessment *models.Assessment, answers scoring.Answers) ([]byte, error) {
	doc, err := assessment.Structure.Decode()
	if err != nil {
		return nil, err
	}

	result, err := scoring.CalculateResult(scoring.TestType(assessment.TestType), answers, doc)
	if err != nil {
		var scaleErr *scoring.UnresolvableScaleError
		if errors.As(err, &scaleErr) {
			return nil, NewBusinessRuleError("resolvable_scale",
				"structure has a question with no resolvable maximum score",
				map[string]interface{}{"question_id": scaleErr.QuestionID})
		}
		return nil, fmt.Errorf("failed to calculate result: %w", err)
	}
	if result == nil {
		// the calculator only returns nil when no scoring rule exists for
		// the stored test type; that is a data problem, not a user error
		return nil, NewBusinessRuleError("scoring_rule",
			"no scoring rule defined for test type "+assessment.TestType, nil)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return resultJSON, nil
}

// ===== STATISTICS =====

func (s *assessmentService) GetStats(ctx context.Context, workspaceID string, userID string) (*repositories.AssessmentStats, error) {
	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin && role != models.RoleManager {
		return nil, NewPermissionError(userID, 0, "assessment", "view_stats", "insufficient role permissions")
	}

	stats, err := s.repo.Assessment().GetStats(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment stats: %w", err)
	}
	return stats, nil
}

// ===== HELPERS =====

func (s *assessmentService) getAssessment(ctx context.Context, id uint) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) getAssessmentWithStructure(ctx context.Context, id uint) (*models.Assessment, error) {
	assessment, err := s.repo.Assessment().GetByIDWithStructure(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) checkAccess(ctx context.Context, assessment *models.Assessment, userID, action string) error {
	if assessment.Respondent == userID || assessment.CreatedBy == userID {
		return nil
	}

	role, err := s.getUserRole(ctx, userID)
	if err != nil {
		return err
	}
	if role == models.RoleAdmin || role == models.RoleManager {
		return nil
	}
	return NewPermissionError(userID, assessment.ID, "assessment", action, "not respondent, creator or manager")
}

func (s *assessmentService) getUserRole(ctx context.Context, userID string) (models.UserRole, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	return user.Role, nil
}

func (s *assessmentService) buildResponse(assessment *models.Assessment) (*AssessmentResponse, error) {
	resp := &AssessmentResponse{
		ID:           assessment.ID,
		WorkspaceID:  assessment.WorkspaceID,
		TestType:     assessment.TestType,
		StructureID:  assessment.StructureID,
		RespondentID: assessment.Respondent,
		Status:       assessment.Status,
		CompletedAt:  assessment.CompletedAt,
		CreatedBy:    assessment.CreatedBy,
		CreatedAt:    assessment.CreatedAt,
		UpdatedAt:    assessment.UpdatedAt,
	}

	if len(assessment.Answers) > 0 {
		if err := json.Unmarshal(assessment.Answers, &resp.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode stored answers: %w", err)
		}
	}
	if len(assessment.Result) > 0 {
		result, err := scoring.DecodeResult(scoring.TestType(assessment.TestType), assessment.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", err)
		}
		resp.Result = result
	}
	return resp, nil
}

func (s *assessmentService) buildListResponse(assessments []*models.Assessment, total int64, filters repositories.AssessmentFilters) (*AssessmentListResponse, error) {
	response := &AssessmentListResponse{
		Assessments: make([]*AssessmentResponse, len(assessments)),
		Total:       total,
		Page:        filters.Offset / max(filters.Limit, 1),
		Size:        filters.Limit,
	}
	for i, assessment := range assessments {
		resp, err := s.buildResponse(assessment)
		if err != nil {
			return nil, err
		}
		response.Assessments[i] = resp
	}
	return response, nil
}

// notifyResultAvailable writes the respondent's feed row and asks the
// notification consumer to fan the message out to everyone involved.
// Best-effort, like event delivery: a scored assessment is never rolled
// back over a notification.
func (s *assessmentService) notifyResultAvailable(ctx context.Context, assessment *models.Assessment, actorID string) {
	title := "Assessment result available"
	message := fmt.Sprintf("Your %s assessment has been scored.", assessment.TestType)

	notification := &models.Notification{
		Type:         models.NotificationResultAvailable,
		Title:        title,
		Message:      message,
		RecipientID:  &assessment.Respondent,
		WorkspaceID:  assessment.WorkspaceID,
		AssessmentID: &assessment.ID,
		Channels:     datatypes.JSON(`["in_app"]`),
		Priority:     int(models.PriorityNormal),
		CreatedBy:    actorID,
	}
	if err := s.repo.Notification().Create(ctx, notification); err != nil {
		s.logger.Error("Failed to store result notification",
			"assessment_id", assessment.ID, "error", err)
	}

	recipients := []string{assessment.Respondent}
	if assessment.CreatedBy != "" && assessment.CreatedBy != assessment.Respondent {
		recipients = append(recipients, assessment.CreatedBy)
	}
	s.publish(ctx, events.NewBulkNotificationEvent(
		recipients, assessment.WorkspaceID,
		models.NotificationResultAvailable,
		title, message,
		models.PriorityNormal, actorID))
}

func (s *assessmentService) publish(ctx context.Context, event *events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		// event delivery is best-effort; the write already committed
		s.logger.Error("Failed to publish assessment event", "event_type", event.Type, "error", err)
	}
}
