package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/sales-cockpit/assessment-service/internal/models"
)

// EventType represents the domain events emitted by the assessment service.
type EventType string

const (
	// Assessment lifecycle events
	EventAssessmentCreated EventType = "assessment.created"
	EventAssessmentScored  EventType = "assessment.scored"
	EventAssessmentDeleted EventType = "assessment.deleted"

	// Structure lifecycle events
	EventStructureCreated   EventType = "structure.created"
	EventStructureActivated EventType = "structure.activated"

	// System events
	EventBulkNotification EventType = "system.bulk_notification"
)

const eventSource = "assessment-service"

// Event is the envelope shared by every event on the wire.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Assessment event payloads

type AssessmentCreatedEvent struct {
	AssessmentID uint   `json:"assessment_id"`
	WorkspaceID  string `json:"workspace_id"`
	TestType     string `json:"test_type"`
	StructureID  uint   `json:"structure_id"`
	RespondentID string `json:"respondent_id"`
	CreatedBy    string `json:"created_by"`
}

type AssessmentScoredEvent struct {
	AssessmentID uint      `json:"assessment_id"`
	WorkspaceID  string    `json:"workspace_id"`
	TestType     string    `json:"test_type"`
	RespondentID string    `json:"respondent_id"`
	ScoredAt     time.Time `json:"scored_at"`

	// Result is the calculator output, already serialized for storage.
	Result interface{} `json:"result"`
}

type AssessmentDeletedEvent struct {
	AssessmentID uint   `json:"assessment_id"`
	WorkspaceID  string `json:"workspace_id"`
	DeletedBy    string `json:"deleted_by"`
}

// Structure event payloads

type StructureCreatedEvent struct {
	StructureID uint   `json:"structure_id"`
	TestType    string `json:"test_type"`
	Version     int    `json:"version"`
	CreatedBy   string `json:"created_by"`
}

type StructureActivatedEvent struct {
	StructureID uint   `json:"structure_id"`
	TestType    string `json:"test_type"`
	Version     int    `json:"version"`
	ActivatedBy string `json:"activated_by"`
}

// System event payload

// BulkNotificationEvent asks the notification consumer to fan a message out
// to a set of recipients.
type BulkNotificationEvent struct {
	RecipientIDs []string                    `json:"recipient_ids"`
	WorkspaceID  string                      `json:"workspace_id"`
	Type         models.NotificationType     `json:"type"`
	Title        string                      `json:"title"`
	Message      string                      `json:"message"`
	Priority     models.NotificationPriority `json:"priority"`
	SenderID     string                      `json:"sender_id"`
}

// Event factory functions

func NewAssessmentCreatedEvent(assessmentID uint, workspaceID, testType string, structureID uint, respondentID, createdBy string) *Event {
	return newEvent(EventAssessmentCreated, AssessmentCreatedEvent{
		AssessmentID: assessmentID,
		WorkspaceID:  workspaceID,
		TestType:     testType,
		StructureID:  structureID,
		RespondentID: respondentID,
		CreatedBy:    createdBy,
	})
}

func NewAssessmentScoredEvent(assessmentID uint, workspaceID, testType, respondentID string, scoredAt time.Time, result interface{}) *Event {
	return newEvent(EventAssessmentScored, AssessmentScoredEvent{
		AssessmentID: assessmentID,
		WorkspaceID:  workspaceID,
		TestType:     testType,
		RespondentID: respondentID,
		ScoredAt:     scoredAt,
		Result:       result,
	})
}

func NewAssessmentDeletedEvent(assessmentID uint, workspaceID, deletedBy string) *Event {
	return newEvent(EventAssessmentDeleted, AssessmentDeletedEvent{
		AssessmentID: assessmentID,
		WorkspaceID:  workspaceID,
		DeletedBy:    deletedBy,
	})
}

func NewStructureCreatedEvent(structureID uint, testType string, version int, createdBy string) *Event {
	return newEvent(EventStructureCreated, StructureCreatedEvent{
		StructureID: structureID,
		TestType:    testType,
		Version:     version,
		CreatedBy:   createdBy,
	})
}

func NewStructureActivatedEvent(structureID uint, testType string, version int, activatedBy string) *Event {
	return newEvent(EventStructureActivated, StructureActivatedEvent{
		StructureID: structureID,
		TestType:    testType,
		Version:     version,
		ActivatedBy: activatedBy,
	})
}

func NewBulkNotificationEvent(recipientIDs []string, workspaceID string, notificationType models.NotificationType, title, message string, priority models.NotificationPriority, senderID string) *Event {
	return newEvent(EventBulkNotification, BulkNotificationEvent{
		RecipientIDs: recipientIDs,
		WorkspaceID:  workspaceID,
		Type:         notificationType,
		Title:        title,
		Message:      message,
		Priority:     priority,
		SenderID:     senderID,
	})
}

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}
