package dto

// OrderLineRequest is one requested item quantity.
type OrderLineRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest submits a delivery request.
type CreateOrderRequest struct {
	Title        string             `json:"title" binding:"required,max=200"`
	Receiver     string             `json:"receiver" binding:"required,max=100"`
	ReceiverAddr string             `json:"receiver_addr,omitempty" binding:"max=255"`
	DeliveryDate string             `json:"delivery_date" binding:"required"` // YYYY-MM-DD
	Lines        []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	Remarks      string             `json:"remarks,omitempty" binding:"max=500"`
}

// UpdateOrderRequest partially updates an order. Nil fields are untouched.
type UpdateOrderRequest struct {
	Title        *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Receiver     *string `json:"receiver,omitempty" binding:"omitempty,max=100"`
	ReceiverAddr *string `json:"receiver_addr,omitempty" binding:"omitempty,max=255"`
	DeliveryDate *string `json:"delivery_date,omitempty"`
	Remarks      *string `json:"remarks,omitempty" binding:"omitempty,max=500"`
}

// ChangeStatusRequest moves an order or demo through its lifecycle.
type ChangeStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Remarks string `json:"remarks,omitempty" binding:"max=500"`
}

// OrderLineResponse is one order line view.
type OrderLineResponse struct {
	ItemID   int64  `json:"item_id"`
	ItemName string `json:"item_name,omitempty"`
	SKU      string `json:"sku,omitempty"`
	Quantity int    `json:"quantity"`
}

// OrderResponse is the order view.
type OrderResponse struct {
	ID           int64               `json:"id"`
	TeamID       int64               `json:"team_id"`
	Title        string              `json:"title"`
	Receiver     string              `json:"receiver"`
	ReceiverAddr string              `json:"receiver_addr,omitempty"`
	DeliveryDate string              `json:"delivery_date"`
	Status       string              `json:"status"`
	Lines        []OrderLineResponse `json:"lines,omitempty"`
	Remarks      string              `json:"remarks,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}
