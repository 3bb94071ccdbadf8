package model

import "time"

// ChangeHistory is an append-only audit record, table change_histories.
// Rows are never updated or deleted; per-entity listings are served
// newest-first.
type ChangeHistory struct {
	ChangeID    int64     `gorm:"primaryKey;autoIncrement"  json:"change_id"`
	EntityType  string    `gorm:"type:varchar(20);not null" json:"entity_type"` // order | demo | item | team
	EntityID    int64     `gorm:"not null"                  json:"entity_id"`
	TeamID      int64     `gorm:"not null"                  json:"team_id"`
	Action      string    `gorm:"type:varchar(20);not null" json:"action"`
	Field       string    `gorm:"type:varchar(64)"          json:"field,omitempty"`
	FieldLabel  string    `gorm:"type:varchar(100)"         json:"field_label,omitempty"`
	OldValue    string    `gorm:"type:varchar(500)"         json:"old_value,omitempty"`
	NewValue    string    `gorm:"type:varchar(500)"         json:"new_value,omitempty"`
	UserName    string    `gorm:"type:varchar(100)"         json:"user_name,omitempty"`
	UserEmail   string    `gorm:"type:varchar(255)"         json:"user_email,omitempty"`
	AccessLevel string    `gorm:"type:varchar(20)"          json:"access_level,omitempty"`
	Remarks     string    `gorm:"type:varchar(500)"         json:"remarks,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (ChangeHistory) TableName() string { return "change_histories" }
