package model

import "time"

// Order statuses. Lifecycle: requested → approved → shipped → delivered,
// with rejected/cancelled as terminal side exits.
const (
	OrderRequested = "requested"
	OrderApproved  = "approved"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderRejected  = "rejected"
	OrderCancelled = "cancelled"
)

// Order is a delivery request, table orders.
type Order struct {
	OrderID      int64     `gorm:"primaryKey;autoIncrement"    json:"order_id"`
	TeamID       int64     `gorm:"not null"                    json:"team_id"`
	Title        string    `gorm:"type:varchar(200);not null"  json:"title"`
	Receiver     string    `gorm:"type:varchar(100);not null"  json:"receiver"`
	ReceiverAddr string    `gorm:"type:varchar(255)"           json:"receiver_addr,omitempty"`
	DeliveryDate time.Time `gorm:"type:date;not null"          json:"delivery_date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'requested'" json:"status"`
	RequesterID  *int64    `json:"requester_id,omitempty"`
	Remarks      string    `gorm:"type:varchar(500)"           json:"remarks,omitempty"`
	BaseModel

	Items     []OrderItem `gorm:"foreignKey:OrderID"                        json:"items,omitempty"`
	Requester *User       `gorm:"foreignKey:RequesterID;references:UserID"  json:"requester,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string { return "orders" }

// OrderItem links an order to an inventory item, table order_items.
type OrderItem struct {
	OrderItemID int64 `gorm:"primaryKey;autoIncrement" json:"order_item_id"`
	OrderID     int64 `gorm:"not null"                 json:"order_id"`
	ItemID      int64 `gorm:"not null"                 json:"item_id"`
	Quantity    int   `gorm:"not null"                 json:"quantity"`

	Item *Item `gorm:"foreignKey:ItemID;references:ItemID" json:"item,omitempty"`
}

// TableName sets the table name.
func (OrderItem) TableName() string { return "order_items" }

// ValidOrderTransition reports whether a status change is allowed.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderRequested:
		return to == OrderApproved || to == OrderRejected || to == OrderCancelled
	case OrderApproved:
		return to == OrderShipped || to == OrderCancelled
	case OrderShipped:
		return to == OrderDelivered
	default:
		return false
	}
}
