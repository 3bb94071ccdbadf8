package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/calendar"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
)

// CalendarService assembles the week and month schedule views: orders on
// their delivery day, demos expanded across their whole range, grouped per
// grid cell with demo bars stacked onto non-overlapping layers.
type CalendarService struct {
	orders repository.OrderRepository
	demos  repository.DemoRepository
	logger *zap.Logger

	// now is swappable for tests; views default to the current week/month.
	now func() time.Time
}

// NewCalendarService builds the calendar service.
func NewCalendarService(orders repository.OrderRepository, demos repository.DemoRepository, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		orders: orders,
		demos:  demos,
		logger: logger,
		now:    time.Now,
	}
}

// WeekView builds the Monday-start week containing the anchor date.
func (s *CalendarService) WeekView(ctx context.Context, teamID int64, req *dto.CalendarViewRequest) (*dto.CalendarWeekResponse, error) {
	anchor, err := s.anchor(req.Date)
	if err != nil {
		return nil, err
	}
	week := calendar.WeekOf(anchor)

	events, err := s.loadEvents(ctx, teamID, week.StartDate, week.EndDate, req)
	if err != nil {
		return nil, err
	}

	days, layers, maxPerDay := assembleGrid(events, week.Days)
	return &dto.CalendarWeekResponse{
		Key:        week.Key,
		Year:       week.Year,
		Week:       week.Week,
		StartDate:  calendar.FormatDate(week.StartDate),
		EndDate:    calendar.FormatDate(week.EndDate),
		Days:       days,
		DemoLayers: layers,
		MaxPerDay:  maxPerDay,
	}, nil
}

// MonthView builds the month containing the anchor date over its full
// Monday-aligned week grid, so leading and trailing out-of-month cells
// carry their events too.
func (s *CalendarService) MonthView(ctx context.Context, teamID int64, req *dto.CalendarViewRequest) (*dto.CalendarMonthResponse, error) {
	anchor, err := s.anchor(req.Date)
	if err != nil {
		return nil, err
	}
	month := calendar.MonthOf(anchor)

	gridStart := month.Days[0]
	gridEnd := month.Days[len(month.Days)-1]
	events, err := s.loadEvents(ctx, teamID, gridStart, gridEnd, req)
	if err != nil {
		return nil, err
	}

	days, layers, maxPerDay := assembleGrid(events, month.Days)
	return &dto.CalendarMonthResponse{
		Key:        month.Key,
		Year:       month.Year,
		Month:      int(month.Month),
		StartDate:  calendar.FormatDate(month.StartDate),
		EndDate:    calendar.FormatDate(month.EndDate),
		Days:       days,
		DemoLayers: layers,
		MaxPerDay:  maxPerDay,
	}, nil
}

func (s *CalendarService) anchor(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	anchor, err := calendar.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse anchor date: %w", err)
	}
	return anchor, nil
}

// loadEvents fetches both entity kinds for [from, to] and flattens them
// into calendar events, applying the optional type/status/text filters.
func (s *CalendarService) loadEvents(ctx context.Context, teamID int64, from, to time.Time, req *dto.CalendarViewRequest) ([]calendar.CalendarEvent, error) {
	var events []calendar.CalendarEvent

	if req.Type == "" || req.Type == string(calendar.TypeOrder) {
		orders, err := s.orders.ListByDeliveryRange(ctx, teamID, from, to)
		if err != nil {
			return nil, fmt.Errorf("load calendar orders: %w", err)
		}
		for i := range orders {
			events = append(events, orderToEvent(&orders[i]))
		}
	}

	if req.Type == "" || req.Type == string(calendar.TypeDemo) {
		demos, err := s.demos.ListOverlappingRange(ctx, teamID, from, to)
		if err != nil {
			return nil, fmt.Errorf("load calendar demos: %w", err)
		}
		for i := range demos {
			events = append(events, demoToEvents(&demos[i])...)
		}
	}

	if req.Status != "" {
		events = calendar.FilterByStatus(events, req.Status)
	}
	events = calendar.FilterByText(events, req.Search)
	return events, nil
}

// assembleGrid groups events onto the day cells and stacks demo bars.
func assembleGrid(events []calendar.CalendarEvent, gridDays []time.Time) ([]dto.CalendarDay, map[int64]int, int) {
	grouped := calendar.GroupByDate(events)

	days := make([]dto.CalendarDay, len(gridDays))
	colOf := make(map[string]int, len(gridDays))
	for i, day := range gridDays {
		key := calendar.FormatDate(day)
		colOf[key] = i
		days[i] = dto.CalendarDay{Date: key, Events: grouped.EventsOn(day)}
	}

	demoEvents := calendar.FilterByType(events, calendar.TypeDemo)
	intervals := calendar.GroupIntervals(demoEvents, colOf)
	layers := calendar.AssignLayers(intervals)

	return days, layers, grouped.MaxPerDay()
}

func orderToEvent(order *model.Order) calendar.CalendarEvent {
	return calendar.OrderEvent(order.OrderID, order.Title, order.Receiver, order.Status, order.DeliveryDate)
}

func demoToEvents(demo *model.Demo) []calendar.CalendarEvent {
	return calendar.ExpandDemo(demo.DemoID, demo.Title, demo.DemoManager, demo.Status,
		demo.DemoStartDate, demo.DemoEndDate)
}
