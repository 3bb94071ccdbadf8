package dto

import "github.com/S-Soo100/Resource-Planning-System-sub004/internal/calendar"

// CalendarViewRequest selects the period containing the anchor date.
type CalendarViewRequest struct {
	Date   string `form:"date"`   // YYYY-MM-DD, defaults to today
	Type   string `form:"type"`   // optional: order | demo
	Status string `form:"status"` // optional exact status filter
	Search string `form:"search"` // optional free-text filter
}

// CalendarDay is one grid cell with its ordered events.
type CalendarDay struct {
	Date   string                   `json:"date"`
	Events []calendar.CalendarEvent `json:"events"`
}

// CalendarWeekResponse is the week view model.
type CalendarWeekResponse struct {
	Key       string          `json:"key"` // "YYYY-Www"
	Year      int             `json:"year"`
	Week      int             `json:"week"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Days      []CalendarDay   `json:"days"`
	// DemoLayers maps a demo id to its display layer inside this week.
	DemoLayers map[int64]int `json:"demo_layers"`
	MaxPerDay  int           `json:"max_per_day"`
}

// CalendarMonthResponse is the month view model over the full week grid.
type CalendarMonthResponse struct {
	Key        string        `json:"key"` // "YYYY-MM"
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	Days       []CalendarDay `json:"days"`
	DemoLayers map[int64]int `json:"demo_layers"`
	MaxPerDay  int           `json:"max_per_day"`
}
