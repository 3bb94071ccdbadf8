package model

// Team is a business unit owning warehouses, orders and demos, table teams.
type Team struct {
	TeamID int64  `gorm:"primaryKey;autoIncrement"   json:"team_id"`
	Name   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	BaseModel

	Members    []User      `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Warehouses []Warehouse `gorm:"foreignKey:TeamID" json:"warehouses,omitempty"`
}

// TableName sets the table name.
func (Team) TableName() string { return "teams" }
