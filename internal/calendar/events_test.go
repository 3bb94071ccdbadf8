package calendar

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
)

func sampleEvents() []CalendarEvent {
	return []CalendarEvent{
		{ID: 3, GroupID: 3, Title: "beam projector demo", Date: "2025-01-06T10:00:00Z", Type: TypeDemo, Status: "confirmed", DemoManager: "Lee"},
		{ID: 1, GroupID: 1, Title: "printer order", Date: "2025-01-06", Type: TypeOrder, Status: "approved", Receiver: "Park"},
		{ID: 2, GroupID: 2, Title: "desk order", Date: "2025-01-06 08:00", Type: TypeOrder, Status: "requested", Receiver: "Choi"},
		{ID: 1, GroupID: 1, Title: "booth demo", Date: "2025-01-07", Type: TypeDemo, Status: "shipped", DemoManager: "Kim"},
	}
}

func TestGroupByDate_NormalizesAndOrders(t *testing.T) {
	g := GroupByDate(sampleEvents())

	bucket := g.EventsOn(date(2025, 1, 6))
	if len(bucket) != 3 {
		t.Fatalf("len(bucket) = %d, want 3", len(bucket))
	}

	// Orders before demos, ascending id inside each kind.
	want := []struct {
		typ EventType
		id  int64
	}{
		{TypeOrder, 1},
		{TypeOrder, 2},
		{TypeDemo, 3},
	}
	for i, w := range want {
		if bucket[i].Type != w.typ || bucket[i].ID != w.id {
			t.Errorf("bucket[%d] = (%s, %d), want (%s, %d)", i, bucket[i].Type, bucket[i].ID, w.typ, w.id)
		}
	}
}

func TestGroupByDate_RoundTrip(t *testing.T) {
	events := sampleEvents()
	flat := GroupByDate(events).Flatten()

	if len(flat) != len(events) {
		t.Fatalf("flatten lost events: %d vs %d", len(flat), len(events))
	}

	key := func(e CalendarEvent) string {
		return fmt.Sprintf("%s:%d:%s", e.Type, e.ID, NormalizeDateKey(e.Date))
	}
	var a, b []string
	for _, e := range events {
		a = append(a, key(e))
	}
	for _, e := range flat {
		b = append(b, key(e))
	}
	sort.Strings(a)
	sort.Strings(b)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("round trip mismatch:\n%v\n%v", a, b)
	}
}

func TestGroupedAccessors(t *testing.T) {
	g := GroupByDate(sampleEvents())

	if !g.HasEventsOn(date(2025, 1, 6)) {
		t.Error("expected events on jan 6")
	}
	if g.HasEventsOn(date(2025, 1, 8)) {
		t.Error("expected no events on jan 8")
	}
	if got := g.CountOn(date(2025, 1, 7)); got != 1 {
		t.Errorf("CountOn(jan 7) = %d, want 1", got)
	}
	if got := g.MaxPerDay(); got != 3 {
		t.Errorf("MaxPerDay = %d, want 3", got)
	}
	if got := g.Dates(); !reflect.DeepEqual(got, []string{"2025-01-06", "2025-01-07"}) {
		t.Errorf("Dates = %v", got)
	}
}

func TestFilterByType(t *testing.T) {
	orders := FilterByType(sampleEvents(), TypeOrder)
	if len(orders) != 2 {
		t.Errorf("len(orders) = %d, want 2", len(orders))
	}
	for _, ev := range orders {
		if ev.Type != TypeOrder {
			t.Errorf("unexpected type %s", ev.Type)
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	got := FilterByStatus(sampleEvents(), "approved")
	if len(got) != 1 || got[0].ID != 1 || got[0].Type != TypeOrder {
		t.Errorf("FilterByStatus = %+v", got)
	}
}

func TestFilterByText(t *testing.T) {
	events := sampleEvents()

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"title match is case-insensitive", "PRINTER", 1},
		{"receiver matches orders", "choi", 1},
		{"demo manager matches demos", "kim", 1},
		{"status matches", "confirmed", 1},
		{"no match", "zzz", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FilterByText(events, tc.query); len(got) != tc.want {
				t.Errorf("len = %d, want %d", len(got), tc.want)
			}
		})
	}

	// Empty query is a no-op returning the input unchanged.
	if got := FilterByText(events, ""); !reflect.DeepEqual(got, events) {
		t.Error("empty query must return input unchanged")
	}
}

func TestFilterByText_Idempotent(t *testing.T) {
	events := sampleEvents()
	once := FilterByText(events, "order")
	twice := FilterByText(once, "order")
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filter not idempotent: %v vs %v", once, twice)
	}
}

func TestExpandDemo(t *testing.T) {
	got := ExpandDemo(5, "booth", "Kim", "confirmed", date(2025, 1, 6), date(2025, 1, 8))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	if got[0].Date != "2025-01-06" || !got[0].Span.IsStart {
		t.Errorf("first entry = %+v", got[0])
	}
	if got[1].Date != "2025-01-07" || !got[1].Span.IsMiddle {
		t.Errorf("second entry = %+v", got[1])
	}
	if got[2].Date != "2025-01-08" || !got[2].Span.IsEnd {
		t.Errorf("third entry = %+v", got[2])
	}
	for _, ev := range got {
		if ev.GroupID != 5 || ev.Span.TotalDays != 3 {
			t.Errorf("entry = %+v", ev)
		}
	}

	if got := ExpandDemo(5, "x", "y", "z", date(2025, 1, 8), date(2025, 1, 6)); got != nil {
		t.Errorf("reversed range should yield nil, got %v", got)
	}
}
