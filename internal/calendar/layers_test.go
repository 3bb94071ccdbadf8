package calendar

import (
	"reflect"
	"testing"
)

func TestAssignLayers_OverlapForcesSecondLayer(t *testing.T) {
	// Demo X on days [0,2], demo Y on [1,3]: ranges overlap on [1,2].
	intervals := []Interval{
		{GroupID: 1, Start: 0, End: 2},
		{GroupID: 2, Start: 1, End: 3},
	}

	layers := AssignLayers(intervals)
	if layers[1] != 0 {
		t.Errorf("X layer = %d, want 0", layers[1])
	}
	if layers[2] != 1 {
		t.Errorf("Y layer = %d, want 1", layers[2])
	}
}

func TestAssignLayers_DisjointSharesLayerZero(t *testing.T) {
	intervals := []Interval{
		{GroupID: 1, Start: 0, End: 2},
		{GroupID: 2, Start: 1, End: 3},
		{GroupID: 3, Start: 3, End: 5}, // clear of X, reuses layer 0
	}

	layers := AssignLayers(intervals)
	if layers[3] != 0 {
		t.Errorf("Z layer = %d, want 0", layers[3])
	}
}

func TestAssignLayers_Deterministic(t *testing.T) {
	intervals := []Interval{
		{GroupID: 10, Start: 0, End: 1},
		{GroupID: 20, Start: 1, End: 2},
		{GroupID: 30, Start: 2, End: 4},
		{GroupID: 40, Start: 0, End: 6},
		{GroupID: 50, Start: 5, End: 6},
	}

	first := AssignLayers(intervals)
	for i := 0; i < 10; i++ {
		if got := AssignLayers(intervals); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %v vs %v", i, got, first)
		}
	}
}

func TestAssignLayers_SameLayerNeverOverlaps(t *testing.T) {
	intervals := []Interval{
		{GroupID: 1, Start: 0, End: 3},
		{GroupID: 2, Start: 2, End: 5},
		{GroupID: 3, Start: 4, End: 6},
		{GroupID: 4, Start: 0, End: 0},
		{GroupID: 5, Start: 6, End: 6},
		{GroupID: 6, Start: 1, End: 4},
	}

	layers := AssignLayers(intervals)

	byID := make(map[int64]Interval)
	for _, iv := range intervals {
		byID[iv.GroupID] = iv
	}

	for a, la := range layers {
		for b, lb := range layers {
			if a >= b || la != lb {
				continue
			}
			ia, ib := byID[a], byID[b]
			if !(ia.End < ib.Start || ib.End < ia.Start) {
				t.Errorf("groups %d and %d share layer %d but overlap: %+v %+v", a, b, la, ia, ib)
			}
		}
	}
}

func TestGroupIntervals_MergesPerDayEntries(t *testing.T) {
	colOf := map[string]int{
		"2025-01-06": 0,
		"2025-01-07": 1,
		"2025-01-08": 2,
		"2025-01-09": 3,
	}

	events := ExpandDemo(7, "projector demo", "lee", "confirmed", date(2025, 1, 7), date(2025, 1, 9))
	events = append(events, CalendarEvent{ID: 9, GroupID: 9, Type: TypeDemo, Date: "2025-01-06"})
	// Entry off the visible grid is dropped.
	events = append(events, CalendarEvent{ID: 9, GroupID: 9, Type: TypeDemo, Date: "2025-02-01"})

	intervals := GroupIntervals(events, colOf)
	if len(intervals) != 2 {
		t.Fatalf("len(intervals) = %d, want 2", len(intervals))
	}
	if intervals[0] != (Interval{GroupID: 7, Start: 1, End: 3}) {
		t.Errorf("intervals[0] = %+v", intervals[0])
	}
	if intervals[1] != (Interval{GroupID: 9, Start: 0, End: 0}) {
		t.Errorf("intervals[1] = %+v", intervals[1])
	}
}
