package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
)

// ICSService renders a team's schedule as an iCalendar feed, so deliveries
// and demos show up in external calendar clients. Orders become single
// all-day events, demos all-day events spanning their whole range.
type ICSService struct {
	orders repository.OrderRepository
	demos  repository.DemoRepository
	logger *zap.Logger
}

// NewICSService builds the feed service.
func NewICSService(orders repository.OrderRepository, demos repository.DemoRepository, logger *zap.Logger) *ICSService {
	return &ICSService{orders: orders, demos: demos, logger: logger}
}

// Feed serializes every order and demo of the team inside [from, to].
func (s *ICSService) Feed(ctx context.Context, teamID int64, from, to time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//KARS//Schedule//EN")
	cal.SetName(fmt.Sprintf("KARS team %d schedule", teamID))

	now := time.Now()

	orders, err := s.orders.ListByDeliveryRange(ctx, teamID, from, to)
	if err != nil {
		return "", fmt.Errorf("load feed orders: %w", err)
	}
	for i := range orders {
		s.addOrder(cal, &orders[i], now)
	}

	demos, err := s.demos.ListOverlappingRange(ctx, teamID, from, to)
	if err != nil {
		return "", fmt.Errorf("load feed demos: %w", err)
	}
	for i := range demos {
		s.addDemo(cal, &demos[i], now)
	}

	return cal.Serialize(), nil
}

func (s *ICSService) addOrder(cal *ics.Calendar, order *model.Order, now time.Time) {
	evt := cal.AddEvent(fmt.Sprintf("order-%d@kars", order.OrderID))
	evt.SetCreatedTime(now)
	evt.SetDtStampTime(now)
	evt.SetAllDayStartAt(order.DeliveryDate)
	// DTEND is exclusive in the all-day convention.
	evt.SetAllDayEndAt(order.DeliveryDate.AddDate(0, 0, 1))
	evt.SetSummary(fmt.Sprintf("[Delivery] %s", order.Title))
	evt.SetDescription(fmt.Sprintf("Receiver: %s\nStatus: %s", order.Receiver, order.Status))
	if order.ReceiverAddr != "" {
		evt.SetLocation(order.ReceiverAddr)
	}
}

func (s *ICSService) addDemo(cal *ics.Calendar, demo *model.Demo, now time.Time) {
	evt := cal.AddEvent(fmt.Sprintf("demo-%d@kars", demo.DemoID))
	evt.SetCreatedTime(now)
	evt.SetDtStampTime(now)
	evt.SetAllDayStartAt(demo.DemoStartDate)
	evt.SetAllDayEndAt(demo.DemoEndDate.AddDate(0, 0, 1))
	evt.SetSummary(fmt.Sprintf("[Demo] %s", demo.Title))
	evt.SetDescription(fmt.Sprintf("Manager: %s\nStatus: %s", demo.DemoManager, demo.Status))
}
