package model

// Item is an inventory row, table items.
type Item struct {
	ItemID      int64  `gorm:"primaryKey;autoIncrement"   json:"item_id"`
	WarehouseID int64  `gorm:"not null"                   json:"warehouse_id"`
	SKU         string `gorm:"column:sku;type:varchar(64);not null" json:"sku"`
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Quantity    int    `gorm:"not null;default:0"         json:"quantity"`
	UnitPrice   int64  `gorm:"not null;default:0"         json:"unit_price"`
	BaseModel

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID;references:WarehouseID" json:"warehouse,omitempty"`
}

// TableName sets the table name.
func (Item) TableName() string { return "items" }
