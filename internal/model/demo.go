package model

import "time"

// Demo statuses.
const (
	DemoRequested = "requested"
	DemoConfirmed = "confirmed"
	DemoShipped   = "shipped"
	DemoReturned  = "returned"
	DemoRejected  = "rejected"
	DemoCancelled = "cancelled"
)

// Demo is an equipment demonstration spanning one or more days, table demos.
type Demo struct {
	DemoID        int64     `gorm:"primaryKey;autoIncrement"   json:"demo_id"`
	TeamID        int64     `gorm:"not null"                   json:"team_id"`
	Title         string    `gorm:"type:varchar(200);not null" json:"title"`
	DemoManager   string    `gorm:"type:varchar(100);not null" json:"demo_manager"`
	DemoStartDate time.Time `gorm:"type:date;not null"         json:"demo_start_date"`
	DemoEndDate   time.Time `gorm:"type:date;not null"         json:"demo_end_date"`
	Status        string    `gorm:"type:varchar(20);not null;default:'requested'" json:"status"`
	RequesterID   *int64    `json:"requester_id,omitempty"`
	Remarks       string    `gorm:"type:varchar(500)"          json:"remarks,omitempty"`
	BaseModel

	Requester *User `gorm:"foreignKey:RequesterID;references:UserID" json:"requester,omitempty"`
}

// TableName sets the table name.
func (Demo) TableName() string { return "demos" }

// ValidDemoTransition reports whether a status change is allowed.
func ValidDemoTransition(from, to string) bool {
	switch from {
	case DemoRequested:
		return to == DemoConfirmed || to == DemoRejected || to == DemoCancelled
	case DemoConfirmed:
		return to == DemoShipped || to == DemoCancelled
	case DemoShipped:
		return to == DemoReturned
	default:
		return false
	}
}
