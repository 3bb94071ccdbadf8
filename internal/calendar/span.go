package calendar

import "time"

// SpanInfo describes one occupied day's position inside a multi-day event.
// For any event exactly one day has IsStart, exactly one has IsEnd (the same
// day when TotalDays is 1) and every other day has IsMiddle.
type SpanInfo struct {
	IsStart   bool `json:"is_start"`
	IsMiddle  bool `json:"is_middle"`
	IsEnd     bool `json:"is_end"`
	TotalDays int  `json:"total_days"`
}

// SpanFor computes the SpanInfo for one grid cell of an event running over
// [start, end] inclusive. ok is false when the cell lies outside the range;
// the caller renders nothing for that cell.
func SpanFor(start, end, cell time.Time) (SpanInfo, bool) {
	startKey := FormatDate(start)
	endKey := FormatDate(end)
	cellKey := FormatDate(cell)

	if cellKey < startKey || cellKey > endKey {
		return SpanInfo{}, false
	}

	info := SpanInfo{
		IsStart:   cellKey == startKey,
		IsEnd:     cellKey == endKey,
		TotalDays: daysInclusive(start, end),
	}
	info.IsMiddle = !info.IsStart && !info.IsEnd
	return info, true
}

// daysInclusive counts calendar days from start through end, both included.
func daysInclusive(start, end time.Time) int {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// SegmentEdges reports which sides of a span segment get a rounded corner in
// a week row of `cols` columns, the cell sitting at column `col`. A middle
// day on the first or last column closes the visual segment even though the
// underlying span continues into the adjacent week. Presentation-only: the
// SpanInfo itself is untouched.
func SegmentEdges(span SpanInfo, col, cols int) (roundLeft, roundRight bool) {
	roundLeft = span.IsStart || col == 0
	roundRight = span.IsEnd || col == cols-1
	return roundLeft, roundRight
}
