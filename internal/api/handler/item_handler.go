package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	apperrors "github.com/S-Soo100/Resource-Planning-System-sub004/pkg/errors"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// ItemHandler serves the inventory endpoints.
type ItemHandler struct {
	itemSvc *service.ItemService
}

// NewItemHandler builds the item handler.
func NewItemHandler(itemSvc *service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

// Create handles POST /api/v1/items.
func (h *ItemHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid item payload")
		return
	}

	item, err := h.itemSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, item)
}

// Get handles GET /api/v1/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemSvc.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, item)
}

// ListByWarehouse handles GET /api/v1/warehouses/:id/items.
func (h *ItemHandler) ListByWarehouse(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	warehouseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.itemSvc.ListByWarehouse(c.Request.Context(), actor, warehouseID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"list": items})
}

// Update handles PATCH /api/v1/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid item payload")
		return
	}

	item, err := h.itemSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, item)
}

// AdjustQuantity handles POST /api/v1/items/:id/quantity.
func (h *ItemHandler) AdjustQuantity(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid quantity payload")
		return
	}

	item, err := h.itemSvc.AdjustQuantity(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, item)
}

// Delete handles DELETE /api/v1/items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.itemSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *ItemHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		response.NotFound(c, "item not found")
	case errors.Is(err, service.ErrWarehouseNotFound):
		response.NotFound(c, "warehouse not found")
	case errors.Is(err, service.ErrInsufficientStock):
		response.Conflict(c, "quantity cannot go below zero")
	case errors.Is(err, apperrors.ErrOptimisticLock):
		response.Conflict(c, "item was modified by another operation, retry")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "resource belongs to another team")
	default:
		response.InternalError(c)
	}
}
