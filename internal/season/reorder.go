package season

// Move describes one completed drag-and-drop of a week slot. Indices are
// 0-based positions in the source division's list at the moment of the drop.
// InsertAfter is true when the pointer was below the target slot's vertical
// midpoint, i.e. the slot lands after the target rather than before it.
type Move struct {
	Division       Division
	TargetDivision Division
	SourceIndex    int
	TargetIndex    int
	InsertAfter    bool
}

// Reorder applies a drag-and-drop move within a single division. A move
// whose target division differs from its source is rejected outright and
// both lists are left untouched. The result is always a permutation of the
// original slots: one removal, one insertion, nothing created or destroyed.
func (d *Draft) Reorder(m Move) error {
	if m.TargetDivision != "" && m.TargetDivision != m.Division {
		return ErrCrossDivisionMove
	}
	s, err := d.editable(m.Division)
	if err != nil {
		return err
	}
	if m.SourceIndex < 0 || m.SourceIndex >= len(s) {
		return ErrWeekOutOfRange
	}
	if m.TargetIndex < 0 || m.TargetIndex >= len(s) {
		return ErrWeekOutOfRange
	}
	if m.SourceIndex == m.TargetIndex {
		return nil
	}

	insert := m.TargetIndex
	if m.InsertAfter {
		insert++
	}
	// Removal shifts everything past the source down by one.
	if m.SourceIndex < m.TargetIndex {
		insert--
	}

	moved := s[m.SourceIndex]
	s = append(s[:m.SourceIndex], s[m.SourceIndex+1:]...)
	s = append(s, WeekSlot{})
	copy(s[insert+1:], s[insert:])
	s[insert] = moved

	d.Schedules[m.Division] = s
	return nil
}
