package dto

// CreateItemRequest registers a new inventory item.
type CreateItemRequest struct {
	WarehouseID int64  `json:"warehouse_id" binding:"required"`
	SKU         string `json:"sku" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=200"`
	Quantity    int    `json:"quantity" binding:"min=0"`
	UnitPrice   int64  `json:"unit_price" binding:"min=0"`
}

// UpdateItemRequest partially updates an item. Nil fields are untouched.
type UpdateItemRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,max=200"`
	UnitPrice *int64  `json:"unit_price,omitempty" binding:"omitempty,min=0"`
}

// AdjustQuantityRequest moves stock by a signed delta.
type AdjustQuantityRequest struct {
	Delta   int    `json:"delta" binding:"required"`
	Remarks string `json:"remarks,omitempty" binding:"max=500"`
}

// ItemResponse is the inventory item view.
type ItemResponse struct {
	ID          int64  `json:"id"`
	WarehouseID int64  `json:"warehouse_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
