package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// validEntityTypes are the channel-addressable entity kinds.
var validEntityTypes = map[string]bool{
	model.EntityOrder: true,
	model.EntityDemo:  true,
	model.EntityItem:  true,
	model.EntityTeam:  true,
}

// HistoryHandler serves the change-history listings that seed stream
// caches before live frames arrive.
type HistoryHandler struct {
	historySvc *service.HistoryService
}

// NewHistoryHandler builds the history handler.
func NewHistoryHandler(historySvc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// List handles GET /api/v1/change-history/:entityType/:id. The reserved
// entity type "team" lists across the whole team instead of one entity.
func (h *HistoryHandler) List(c *gin.Context) {
	entityType := c.Param("entityType")
	if !validEntityTypes[entityType] {
		response.BadRequest(c, "unknown entity type")
		return
	}
	if entityType == model.EntityTeam {
		h.listByTeam(c)
		return
	}

	if _, ok := MustGetActor(c); !ok {
		return
	}
	entityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination")
		return
	}

	items, total, err := h.historySvc.ListByEntity(c.Request.Context(), entityType, entityID, page.Page, page.PageSize)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, items, total, page.Page, page.PageSize)
}

// parseTypesFilter reads the optional comma-separated ?types= entity type
// filter, writing a 400 for unknown kinds.
func parseTypesFilter(c *gin.Context) ([]string, bool) {
	raw := c.Query("types")
	if raw == "" {
		return nil, true
	}

	var types []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !validEntityTypes[part] {
			response.BadRequest(c, "unknown entity type in types filter")
			return nil, false
		}
		types = append(types, part)
	}
	return types, true
}

// listByTeam serves the team-wide listing with an optional comma-separated
// ?types= filter.
func (h *HistoryHandler) listByTeam(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if actor.AccessLevel != model.AccessAdmin && actor.TeamID != teamID {
		response.Forbidden(c, "history belongs to another team")
		return
	}

	types, ok := parseTypesFilter(c)
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, "invalid pagination")
		return
	}

	items, total, err := h.historySvc.ListByTeam(c.Request.Context(), teamID, types, page.Page, page.PageSize)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, items, total, page.Page, page.PageSize)
}
