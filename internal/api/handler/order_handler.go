package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// OrderHandler serves the order endpoints.
type OrderHandler struct {
	orderSvc *service.OrderService
}

// NewOrderHandler builds the order handler.
func NewOrderHandler(orderSvc *service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Create handles POST /api/v1/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid order payload")
		return
	}

	order, err := h.orderSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, order)
}

// Get handles GET /api/v1/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderSvc.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, order)
}

// List handles GET /api/v1/orders.
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination")
		return
	}

	orders, total, err := h.orderSvc.List(c.Request.Context(), actor, page.Page, page.PageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, orders, total, page.Page, page.PageSize)
}

// Update handles PATCH /api/v1/orders/:id.
func (h *OrderHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid order payload")
		return
	}

	order, err := h.orderSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, order)
}

// ChangeStatus handles POST /api/v1/orders/:id/status.
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid status payload")
		return
	}

	order, err := h.orderSvc.ChangeStatus(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, order)
}

// Delete handles DELETE /api/v1/orders/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orderSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrOrderLineItem):
		response.BadRequest(c, "order references an unknown item")
	case errors.Is(err, service.ErrInvalidDeliveryDate):
		response.BadRequest(c, "invalid delivery date")
	case errors.Is(err, service.ErrOrderTransition):
		response.Conflict(c, "status transition not allowed")
	case errors.Is(err, service.ErrOrderNotEditable):
		response.Conflict(c, "order can no longer be edited")
	case errors.Is(err, service.ErrOrderNotDeletable):
		response.Conflict(c, "order can no longer be deleted")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "resource belongs to another team")
	default:
		response.InternalError(c)
	}
}
