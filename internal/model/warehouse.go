package model

// Warehouse groups inventory items for a team, table warehouses.
type Warehouse struct {
	WarehouseID int64  `gorm:"primaryKey;autoIncrement"  json:"warehouse_id"`
	TeamID      int64  `gorm:"not null"                  json:"team_id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Address     string `gorm:"type:varchar(255)"         json:"address,omitempty"`
	BaseModel

	Items []Item `gorm:"foreignKey:WarehouseID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Warehouse) TableName() string { return "warehouses" }
