package entities

import "time"

type NotificationType string

const (
	NotificationTypeInternal NotificationType = "internal"
	NotificationTypeEmail    NotificationType = "email"
	NotificationTypeWhatsApp NotificationType = "whatsapp"
)

// Notification is an in-app message for a staff member.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (recipient_id-index): recipient_id
type Notification struct {
	ID                string           `json:"id"`
	RecipientID       string           `json:"recipient_id,omitempty"`
	RecipientEmail    string           `json:"recipient_email,omitempty"`
	NotificationType  NotificationType `json:"notification_type"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Read              bool             `json:"read"`
	RelatedEntityType string           `json:"related_entity_type,omitempty"`
	RelatedEntityID   string           `json:"related_entity_id,omitempty"`
	SentAt            time.Time        `json:"sent_at"`
	CreatedAt         time.Time        `json:"created_at"`
}

// ShortID is the 8-character prefix shown to humans for an identifier.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
