package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/calendar"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// newCalendarFixture seeds team 7 with one order delivering Wed 2025-01-08
// and two overlapping demos: #1 Mon..Wed, #2 Tue..Thu.
func newCalendarFixture(t *testing.T) *CalendarService {
	t.Helper()
	orders := newMockOrderRepo()
	demos := newMockDemoRepo()
	ctx := context.Background()

	if err := orders.Create(ctx, &model.Order{
		TeamID:       7,
		Title:        "Hospital A delivery",
		Receiver:     "Dr. Park",
		DeliveryDate: localDate(2025, time.January, 8),
		Status:       model.OrderApproved,
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	seedDemos := []model.Demo{
		{
			TeamID: 7, Title: "CT scanner demo", DemoManager: "Lee",
			DemoStartDate: localDate(2025, time.January, 6),
			DemoEndDate:   localDate(2025, time.January, 8),
			Status:        model.DemoConfirmed,
		},
		{
			TeamID: 7, Title: "MRI demo", DemoManager: "Choi",
			DemoStartDate: localDate(2025, time.January, 7),
			DemoEndDate:   localDate(2025, time.January, 9),
			Status:        model.DemoRequested,
		},
	}
	for i := range seedDemos {
		if err := demos.Create(ctx, &seedDemos[i]); err != nil {
			t.Fatalf("seed demo: %v", err)
		}
	}

	return NewCalendarService(orders, demos, zap.NewNop())
}

func TestWeekView_GridAndSpans(t *testing.T) {
	svc := newCalendarFixture(t)

	view, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{Date: "2025-01-06"})
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}

	if view.Key != "2025-W02" {
		t.Errorf("Key = %q, want 2025-W02", view.Key)
	}
	if len(view.Days) != 7 {
		t.Fatalf("Days = %d, want 7", len(view.Days))
	}
	if view.Days[0].Date != "2025-01-06" || view.Days[6].Date != "2025-01-12" {
		t.Errorf("grid runs %s..%s, want Mon 2025-01-06..Sun 2025-01-12",
			view.Days[0].Date, view.Days[6].Date)
	}

	// Wednesday holds the order plus both demo entries, order first.
	wed := view.Days[2]
	if len(wed.Events) != 3 {
		t.Fatalf("events on %s = %d, want 3", wed.Date, len(wed.Events))
	}
	if wed.Events[0].Type != calendar.TypeOrder {
		t.Errorf("first event type = %q, want order before demos", wed.Events[0].Type)
	}

	// Demo 1 ends Wednesday; its entry there must be the closing segment.
	for _, ev := range wed.Events {
		if ev.Type == calendar.TypeDemo && ev.GroupID == 1 {
			if !ev.Span.IsEnd || ev.Span.IsStart {
				t.Errorf("demo 1 span on %s = %+v, want end segment", wed.Date, ev.Span)
			}
			if ev.Span.TotalDays != 3 {
				t.Errorf("demo 1 TotalDays = %d, want 3", ev.Span.TotalDays)
			}
		}
	}

	if view.MaxPerDay != 3 {
		t.Errorf("MaxPerDay = %d, want 3", view.MaxPerDay)
	}
}

func TestWeekView_OverlappingDemosStack(t *testing.T) {
	svc := newCalendarFixture(t)

	view, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{Date: "2025-01-06"})
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}

	if got := view.DemoLayers[1]; got != 0 {
		t.Errorf("demo 1 layer = %d, want 0", got)
	}
	if got := view.DemoLayers[2]; got != 1 {
		t.Errorf("demo 2 layer = %d, want 1", got)
	}
}

func TestWeekView_SearchFilter(t *testing.T) {
	svc := newCalendarFixture(t)

	view, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{
		Date:   "2025-01-06",
		Search: "scanner",
	})
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}

	total := 0
	for _, day := range view.Days {
		for _, ev := range day.Events {
			total++
			if ev.GroupID != 1 {
				t.Errorf("unexpected event %d on %s", ev.GroupID, day.Date)
			}
		}
	}
	if total != 3 {
		t.Errorf("filtered events = %d, want demo 1's three days", total)
	}
}

func TestWeekView_TypeFilterSkipsOtherKind(t *testing.T) {
	svc := newCalendarFixture(t)

	view, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{
		Date: "2025-01-06",
		Type: "order",
	})
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}

	for _, day := range view.Days {
		for _, ev := range day.Events {
			if ev.Type != calendar.TypeOrder {
				t.Errorf("type filter leaked %q on %s", ev.Type, day.Date)
			}
		}
	}
	if len(view.DemoLayers) != 0 {
		t.Errorf("DemoLayers = %v with demos filtered out, want empty", view.DemoLayers)
	}
}

func TestWeekView_DefaultsToCurrentWeek(t *testing.T) {
	svc := newCalendarFixture(t)
	svc.now = func() time.Time { return localDate(2025, time.January, 9) }

	view, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{})
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}
	if view.Key != "2025-W02" {
		t.Errorf("Key = %q, want the week containing the injected now", view.Key)
	}
}

func TestMonthView_FullWeekGrid(t *testing.T) {
	svc := newCalendarFixture(t)

	view, err := svc.MonthView(context.Background(), 7, &dto.CalendarViewRequest{Date: "2025-01-15"})
	if err != nil {
		t.Fatalf("MonthView: %v", err)
	}

	if view.Key != "2025-01" {
		t.Errorf("Key = %q, want 2025-01", view.Key)
	}
	if len(view.Days)%7 != 0 {
		t.Errorf("grid length %d is not a multiple of 7", len(view.Days))
	}
	if view.Days[0].Date != "2024-12-30" {
		t.Errorf("grid starts %s, want Monday 2024-12-30", view.Days[0].Date)
	}
	if view.Days[len(view.Days)-1].Date != "2025-02-02" {
		t.Errorf("grid ends %s, want Sunday 2025-02-02", view.Days[len(view.Days)-1].Date)
	}

	// The seeded events all land inside January and must appear.
	found := false
	for _, day := range view.Days {
		if day.Date == "2025-01-08" && len(day.Events) == 3 {
			found = true
		}
	}
	if !found {
		t.Error("expected 3 events on 2025-01-08 in the month grid")
	}
}

func TestWeekView_BadAnchorDate(t *testing.T) {
	svc := newCalendarFixture(t)

	if _, err := svc.WeekView(context.Background(), 7, &dto.CalendarViewRequest{Date: "garbage"}); err == nil {
		t.Error("expected error for unparseable anchor date")
	}
}
