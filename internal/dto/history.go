package dto

import (
	"time"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// ChangeHistoryItem is the wire form of a change record. Field names follow
// the frontend contract (camelCase), unlike the snake_case REST models.
type ChangeHistoryItem struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"` // create | update | status_change | delete | quantity_change
	Field       string    `json:"field,omitempty"`
	FieldLabel  string    `json:"fieldLabel,omitempty"`
	OldValue    string    `json:"oldValue,omitempty"`
	NewValue    string    `json:"newValue,omitempty"`
	UserName    string    `json:"userName,omitempty"`
	UserEmail   string    `json:"userEmail,omitempty"`
	AccessLevel string    `json:"accessLevel,omitempty"`
	Remarks     string    `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TeamStreamEvent is the envelope delivered on team-scoped channels. The
// Type tag discriminates change payloads from heartbeats inside a single
// untyped message stream.
type TeamStreamEvent struct {
	Type       string             `json:"type"` // "change" | "heartbeat"
	EntityType string             `json:"entityType,omitempty"`
	EntityID   int64              `json:"entityId,omitempty"`
	Item       *ChangeHistoryItem `json:"item,omitempty"`
	Timestamp  *time.Time         `json:"timestamp,omitempty"` // heartbeat only
}

// PageRequest are the shared pagination query parameters.
type PageRequest struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=20"`
}

// ToChangeHistoryItem maps the persistence model to the wire form.
func ToChangeHistoryItem(m *model.ChangeHistory) ChangeHistoryItem {
	return ChangeHistoryItem{
		ID:          m.ChangeID,
		Action:      m.Action,
		Field:       m.Field,
		FieldLabel:  m.FieldLabel,
		OldValue:    m.OldValue,
		NewValue:    m.NewValue,
		UserName:    m.UserName,
		UserEmail:   m.UserEmail,
		AccessLevel: m.AccessLevel,
		Remarks:     m.Remarks,
		CreatedAt:   m.CreatedAt,
	}
}
