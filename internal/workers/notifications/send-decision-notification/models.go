// internal/workers/notifications/send-decision-notification/models.go
package senddecisionnotification

type Input struct {
	ApplicationID    string                 `json:"applicationId"`
	NotificationType string                 `json:"notificationType"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeAnalysisCompleted  = "analysis_completed"
	TypeAnalysisFailed     = "analysis_failed"
	TypeComplianceFlagged  = "compliance_flagged"
	TypeDocumentsRequested = "documents_requested"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
