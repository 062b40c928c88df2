package season

// WeekSlot is one week of a division's schedule. A slot has no identity
// beyond its position: its 1-based week number is index+1, and reordering
// renumbers implicitly.
type WeekSlot struct {
	Type WeekType `json:"type"`
}

// DivisionSchedule is the ordered week sequence for one division. A schedule
// is never empty; removal of the last remaining week is rejected.
type DivisionSchedule []WeekSlot

// Clone returns an independent copy of the schedule.
func (s DivisionSchedule) Clone() DivisionSchedule {
	out := make(DivisionSchedule, len(s))
	copy(out, s)
	return out
}

// TypeCounts returns the multiset of week types in the schedule. Reordering
// must leave this unchanged.
func (s DivisionSchedule) TypeCounts() map[WeekType]int {
	counts := make(map[WeekType]int, len(AllWeekTypes))
	for _, slot := range s {
		counts[slot.Type]++
	}
	return counts
}
