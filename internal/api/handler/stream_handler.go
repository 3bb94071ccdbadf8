package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/stream"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// StreamHandler serves the two SSE channel kinds. Entity channels emit
// named change/heartbeat events; team channels emit untyped messages whose
// JSON envelope carries the type tag.
type StreamHandler struct {
	hub *stream.Hub
}

// NewStreamHandler builds the stream handler.
func NewStreamHandler(hub *stream.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream handles GET /api/v1/change-history/:entityType/:id/stream. The
// reserved entity type "team" selects the team-wide channel with its
// optional ?types= filter; everything else is a single-entity channel.
func (h *StreamHandler) Stream(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	entityType := c.Param("entityType")
	if !validEntityTypes[entityType] {
		response.BadRequest(c, "unknown entity type")
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var sub *stream.Subscriber
	if entityType == model.EntityTeam {
		if claims.AccessLevel != model.AccessAdmin && claims.TeamID != id {
			response.Forbidden(c, "stream belongs to another team")
			return
		}
		types, ok := parseTypesFilter(c)
		if !ok {
			return
		}
		sub = h.hub.SubscribeTeam(id, claims.UserID, types)
	} else {
		sub = h.hub.SubscribeEntity(entityType, id, claims.UserID)
	}
	defer sub.Close()

	h.serve(c, sub)
}

// serve pumps hub frames to the client until either side disconnects.
func (h *StreamHandler) serve(c *gin.Context, sub *stream.Subscriber) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, open := <-sub.Events():
			if !open {
				return false
			}
			// An empty event name yields a bare data frame, the SSE
			// default message type.
			c.SSEvent(msg.Event, string(msg.Data))
			return true
		}
	})
}
