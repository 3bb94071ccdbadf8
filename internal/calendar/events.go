package calendar

import (
	"sort"
	"strings"
	"time"
)

// EventType distinguishes the two calendar entry kinds.
type EventType string

const (
	TypeOrder EventType = "order"
	TypeDemo  EventType = "demo"
)

// CalendarEvent is one grid entry. Identity is (Type, ID). A multi-day demo
// appears once per occupied day, all entries sharing GroupID (the demo id)
// and carrying that day's SpanInfo.
type CalendarEvent struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // "YYYY-MM-DD", possibly raw until normalized
	Type        EventType `json:"type"`
	Status      string    `json:"status"`
	Receiver    string    `json:"receiver,omitempty"`     // orders
	DemoManager string    `json:"demo_manager,omitempty"` // demos
	Span        SpanInfo  `json:"span"`
}

// typePriority orders event kinds inside a date bucket: orders first.
func typePriority(t EventType) int {
	if t == TypeOrder {
		return 0
	}
	return 1
}

// Grouped is an immutable date-keyed view over an event list.
type Grouped struct {
	byDate map[string][]CalendarEvent
}

// GroupByDate buckets events by normalized date key. Inside a bucket events
// are sorted by type priority (order before demo) then ascending id, a
// fixed tie-break so repeated renders of the same input agree.
func GroupByDate(events []CalendarEvent) Grouped {
	byDate := make(map[string][]CalendarEvent)
	for _, ev := range events {
		key := NormalizeDateKey(ev.Date)
		byDate[key] = append(byDate[key], ev)
	}

	for key, bucket := range byDate {
		sort.SliceStable(bucket, func(i, j int) bool {
			pi, pj := typePriority(bucket[i].Type), typePriority(bucket[j].Type)
			if pi != pj {
				return pi < pj
			}
			return bucket[i].ID < bucket[j].ID
		})
		byDate[key] = bucket
	}

	return Grouped{byDate: byDate}
}

// EventsOn returns the bucket for a day, empty when there is none.
func (g Grouped) EventsOn(day time.Time) []CalendarEvent {
	return g.byDate[FormatDate(day)]
}

// HasEventsOn reports whether a day has at least one event.
func (g Grouped) HasEventsOn(day time.Time) bool {
	return len(g.byDate[FormatDate(day)]) > 0
}

// CountOn returns the number of events on a day.
func (g Grouped) CountOn(day time.Time) int {
	return len(g.byDate[FormatDate(day)])
}

// MaxPerDay returns the largest bucket size, used to size the grid rows.
func (g Grouped) MaxPerDay() int {
	max := 0
	for _, bucket := range g.byDate {
		if len(bucket) > max {
			max = len(bucket)
		}
	}
	return max
}

// Dates returns the occupied date keys in ascending order.
func (g Grouped) Dates() []string {
	keys := make([]string, 0, len(g.byDate))
	for k := range g.byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Flatten concatenates all buckets in date order.
func (g Grouped) Flatten() []CalendarEvent {
	var out []CalendarEvent
	for _, key := range g.Dates() {
		out = append(out, g.byDate[key]...)
	}
	return out
}

// ── filters ──

// FilterByType keeps events of one kind.
func FilterByType(events []CalendarEvent, t EventType) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByStatus keeps events with an exact status.
func FilterByStatus(events []CalendarEvent, status string) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByText keeps events whose title, status or type-specific contact
// field (receiver for orders, demo manager for demos) contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterByText(events []CalendarEvent, query string) []CalendarEvent {
	if query == "" {
		return events
	}
	q := strings.ToLower(query)

	out := make([]CalendarEvent, 0, len(events))
	for _, ev := range events {
		contact := ev.Receiver
		if ev.Type == TypeDemo {
			contact = ev.DemoManager
		}
		if strings.Contains(strings.ToLower(ev.Title), q) ||
			strings.Contains(strings.ToLower(ev.Status), q) ||
			strings.Contains(strings.ToLower(contact), q) {
			out = append(out, ev)
		}
	}
	return out
}

// ── expansion ──

// ExpandDemo produces one CalendarEvent per day of [start, end] with span
// info attached. A reversed range yields nothing.
func ExpandDemo(demoID int64, title, manager, status string, start, end time.Time) []CalendarEvent {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil
	}

	total := daysInclusive(start, end)
	out := make([]CalendarEvent, 0, total)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		span, ok := SpanFor(start, end, d)
		if !ok {
			continue
		}
		out = append(out, CalendarEvent{
			ID:          demoID,
			GroupID:     demoID,
			Title:       title,
			Date:        FormatDate(d),
			Type:        TypeDemo,
			Status:      status,
			DemoManager: manager,
			Span:        span,
		})
	}
	return out
}

// OrderEvent builds the single-day entry for an order delivery.
func OrderEvent(orderID int64, title, receiver, status string, deliveryDate time.Time) CalendarEvent {
	return CalendarEvent{
		ID:       orderID,
		GroupID:  orderID,
		Title:    title,
		Date:     FormatDate(deliveryDate),
		Type:     TypeOrder,
		Status:   status,
		Receiver: receiver,
		Span:     SpanInfo{IsStart: true, IsEnd: true, TotalDays: 1},
	}
}
