package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string
type NotificationPriority int

const (
	NotificationAssessmentAssigned NotificationType = "assessment_assigned"
	NotificationResultAvailable    NotificationType = "result_available"
	NotificationStructureActivated NotificationType = "structure_activated"
	NotificationSystemMaintenance  NotificationType = "system_maintenance"

	PriorityLow      NotificationPriority = 1
	PriorityNormal   NotificationPriority = 2
	PriorityHigh     NotificationPriority = 3
	PriorityCritical NotificationPriority = 4
)

type Notification struct {
	ID      uint             `json:"id" gorm:"primaryKey"`
	Type    NotificationType `json:"type" gorm:"not null;index"`
	Title   string           `json:"title" gorm:"not null;size:255"`
	Message string           `json:"message" gorm:"type:text"`

	// Recipient; empty for workspace-wide broadcast
	RecipientID *string `json:"recipient_id" gorm:"size:255;index"`
	WorkspaceID string  `json:"workspace_id" gorm:"not null;size:255;index"`

	AssessmentID *uint `json:"assessment_id" gorm:"index"`

	Channels datatypes.JSON `json:"channels" gorm:"type:jsonb"` // ["email", "in_app"]
	Priority int            `json:"priority" gorm:"default:2"`

	SentAt         *time.Time `json:"sent_at"`
	ReadAt         *time.Time `json:"read_at"`
	DeliveryStatus string     `json:"delivery_status" gorm:"default:pending"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by" gorm:"not null;size:255"`
}
