package model

import "time"

// Entity types used by change-history records and stream channel keys.
const (
	EntityOrder = "order"
	EntityDemo  = "demo"
	EntityItem  = "item"
	EntityTeam  = "team"
)

// Change-history actions.
const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionStatusChange   = "status_change"
	ActionDelete         = "delete"
	ActionQuantityChange = "quantity_change"
)

// Access levels mirrored into JWT claims and history records.
const (
	AccessAdmin     = "admin"
	AccessModerator = "moderator"
	AccessUser      = "user"
)

// BaseModel carries the shared audit timestamps.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
