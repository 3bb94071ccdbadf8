package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// DemoHandler serves the demonstration endpoints.
type DemoHandler struct {
	demoSvc *service.DemoService
}

// NewDemoHandler builds the demo handler.
func NewDemoHandler(demoSvc *service.DemoService) *DemoHandler {
	return &DemoHandler{demoSvc: demoSvc}
}

// Create handles POST /api/v1/demos.
func (h *DemoHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid demo payload")
		return
	}

	demo, err := h.demoSvc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, demo)
}

// Get handles GET /api/v1/demos/:id.
func (h *DemoHandler) Get(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	demo, err := h.demoSvc.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, demo)
}

// List handles GET /api/v1/demos.
func (h *DemoHandler) List(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination")
		return
	}

	demos, total, err := h.demoSvc.List(c.Request.Context(), actor, page.Page, page.PageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, demos, total, page.Page, page.PageSize)
}

// Update handles PATCH /api/v1/demos/:id.
func (h *DemoHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid demo payload")
		return
	}

	demo, err := h.demoSvc.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, demo)
}

// ChangeStatus handles POST /api/v1/demos/:id/status.
func (h *DemoHandler) ChangeStatus(c *gin.Context) {
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

	demo, err := h.demoSvc.ChangeStatus(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, demo)
}

// Delete handles DELETE /api/v1/demos/:id.
func (h *DemoHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.demoSvc.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *DemoHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDemoNotFound):
		response.NotFound(c, "demo not found")
	case errors.Is(err, service.ErrDemoDateRange):
		response.BadRequest(c, "invalid demo date range")
	case errors.Is(err, service.ErrDemoTransition):
		response.Conflict(c, "status transition not allowed")
	case errors.Is(err, service.ErrDemoNotEditable):
		response.Conflict(c, "demo can no longer be modified")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "resource belongs to another team")
	default:
		response.InternalError(c)
	}
}
