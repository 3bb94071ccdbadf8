package handler

import (
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/stream"
)

// Handler aggregates the HTTP handlers.
type Handler struct {
	Auth     *AuthHandler
	Item     *ItemHandler
	Order    *OrderHandler
	Demo     *DemoHandler
	Calendar *CalendarHandler
	History  *HistoryHandler
	Stream   *StreamHandler
}

// NewHandler builds the handler aggregate.
func NewHandler(svc *service.Service, hub *stream.Hub) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Item:     NewItemHandler(svc.Item),
		Order:    NewOrderHandler(svc.Order),
		Demo:     NewDemoHandler(svc.Demo),
		Calendar: NewCalendarHandler(svc.Calendar, svc.ICS),
		History:  NewHistoryHandler(svc.History),
		Stream:   NewStreamHandler(hub),
	}
}
