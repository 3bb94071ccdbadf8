package bus

import "github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"

// ChangeRecorded announces a freshly persisted change-history row.
type ChangeRecorded struct {
	Change model.ChangeHistory
}

// EventTopic implements Event.
func (ChangeRecorded) EventTopic() Topic { return TopicChange }

// SessionRevoked announces a logout; long-lived resources held for the user
// (stream subscriptions) should be released.
type SessionRevoked struct {
	UserID int64
}

// EventTopic implements Event.
func (SessionRevoked) EventTopic() Topic { return TopicSession }
