package calendar

// Interval is one event group's occupied column range on the current grid,
// both ends inclusive.
type Interval struct {
	GroupID int64
	Start   int
	End     int
}

// GroupIntervals collapses per-day event entries into one interval per group
// id, preserving first-appearance order. colOf maps a normalized "YYYY-MM-DD"
// key to its grid column; entries whose date is not on the grid are ignored.
func GroupIntervals(events []CalendarEvent, colOf map[string]int) []Interval {
	byGroup := make(map[int64]int) // group id -> index into result
	result := make([]Interval, 0, len(events))

	for _, ev := range events {
		col, ok := colOf[NormalizeDateKey(ev.Date)]
		if !ok {
			continue
		}
		idx, seen := byGroup[ev.GroupID]
		if !seen {
			byGroup[ev.GroupID] = len(result)
			result = append(result, Interval{GroupID: ev.GroupID, Start: col, End: col})
			continue
		}
		if col < result[idx].Start {
			result[idx].Start = col
		}
		if col > result[idx].End {
			result[idx].End = col
		}
	}

	return result
}

// AssignLayers places each interval on the lowest display layer whose
// occupants it does not overlap, appending a new layer when none fits.
// First-fit in input order: deterministic, not globally minimal.
func AssignLayers(intervals []Interval) map[int64]int {
	layers := make([][]Interval, 0, 4)
	assigned := make(map[int64]int, len(intervals))

	for _, iv := range intervals {
		placed := false
		for li := 0; li < len(layers) && !placed; li++ {
			if fits(layers[li], iv) {
				layers[li] = append(layers[li], iv)
				assigned[iv.GroupID] = li
				placed = true
			}
		}
		if !placed {
			layers = append(layers, []Interval{iv})
			assigned[iv.GroupID] = len(layers) - 1
		}
	}

	return assigned
}

// fits reports whether iv overlaps none of the intervals already on a layer.
func fits(layer []Interval, iv Interval) bool {
	for _, existing := range layer {
		if !(existing.End < iv.Start || iv.End < existing.Start) {
			return false
		}
	}
	return true
}
