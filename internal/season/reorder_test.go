package season

import (
	"errors"
	"reflect"
	"testing"
)

func scheduleOf(types ...WeekType) DivisionSchedule {
	s := make(DivisionSchedule, len(types))
	for i, t := range types {
		s[i] = WeekSlot{Type: t}
	}
	return s
}

func typesOf(s DivisionSchedule) []WeekType {
	out := make([]WeekType, len(s))
	for i, slot := range s {
		out[i] = slot.Type
	}
	return out
}

func TestReorderPositions(t *testing.T) {
	base := []WeekType{WeekRegular, WeekTST, WeekFun, WeekBye, WeekPlayoff}

	tests := []struct {
		name        string
		source      int
		target      int
		insertAfter bool
		want        []WeekType
	}{
		{
			name:   "forward before target",
			source: 0, target: 2, insertAfter: false,
			want: []WeekType{WeekTST, WeekRegular, WeekFun, WeekBye, WeekPlayoff},
		},
		{
			name:   "forward after target",
			source: 0, target: 2, insertAfter: true,
			want: []WeekType{WeekTST, WeekFun, WeekRegular, WeekBye, WeekPlayoff},
		},
		{
			name:   "backward before target",
			source: 4, target: 1, insertAfter: false,
			want: []WeekType{WeekRegular, WeekPlayoff, WeekTST, WeekFun, WeekBye},
		},
		{
			name:   "backward after target",
			source: 4, target: 1, insertAfter: true,
			want: []WeekType{WeekRegular, WeekTST, WeekPlayoff, WeekFun, WeekBye},
		},
		{
			name:   "move to end",
			source: 1, target: 4, insertAfter: true,
			want: []WeekType{WeekRegular, WeekFun, WeekBye, WeekPlayoff, WeekTST},
		},
		{
			name:   "move to front",
			source: 3, target: 0, insertAfter: false,
			want: []WeekType{WeekBye, WeekRegular, WeekTST, WeekFun, WeekPlayoff},
		},
		{
			name:   "same index is a no-op",
			source: 2, target: 2, insertAfter: true,
			want: base,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			d.Schedules[DivisionPremier] = scheduleOf(base...)

			err := d.Reorder(Move{
				Division:       DivisionPremier,
				TargetDivision: DivisionPremier,
				SourceIndex:    tt.source,
				TargetIndex:    tt.target,
				InsertAfter:    tt.insertAfter,
			})
			if err != nil {
				t.Fatalf("reorder: %v", err)
			}
			if got := typesOf(d.Schedules[DivisionPremier]); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReorderIsAPermutation(t *testing.T) {
	d := NewDraft()
	d.Schedules[DivisionClassic] = scheduleOf(
		WeekRegular, WeekRegular, WeekTST, WeekFun, WeekBye, WeekPlayoff, WeekPractice,
	)
	before := d.Schedules[DivisionClassic].TypeCounts()

	moves := []Move{
		{Division: DivisionClassic, SourceIndex: 0, TargetIndex: 6, InsertAfter: true},
		{Division: DivisionClassic, SourceIndex: 5, TargetIndex: 1, InsertAfter: false},
		{Division: DivisionClassic, SourceIndex: 3, TargetIndex: 3, InsertAfter: true},
		{Division: DivisionClassic, SourceIndex: 6, TargetIndex: 0, InsertAfter: true},
		{Division: DivisionClassic, SourceIndex: 2, TargetIndex: 4, InsertAfter: false},
	}
	for i, m := range moves {
		if err := d.Reorder(m); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
		if got := d.Schedules[DivisionClassic].TypeCounts(); !reflect.DeepEqual(got, before) {
			t.Fatalf("move %d changed the week type multiset: got %v, want %v", i, got, before)
		}
	}
	if len(d.Schedules[DivisionClassic]) != 7 {
		t.Fatalf("reordering must preserve length")
	}
}

func TestReorderAcrossDivisionsIsFullNoOp(t *testing.T) {
	d := NewDraft()
	premierBefore := d.Schedules[DivisionPremier].Clone()
	classicBefore := d.Schedules[DivisionClassic].Clone()

	err := d.Reorder(Move{
		Division:       DivisionPremier,
		TargetDivision: DivisionClassic,
		SourceIndex:    0,
		TargetIndex:    3,
	})
	if !errors.Is(err, ErrCrossDivisionMove) {
		t.Fatalf("expected ErrCrossDivisionMove, got %v", err)
	}
	if !reflect.DeepEqual(d.Schedules[DivisionPremier], premierBefore) {
		t.Fatalf("source division must be untouched by a rejected move")
	}
	if !reflect.DeepEqual(d.Schedules[DivisionClassic], classicBefore) {
		t.Fatalf("target division must be untouched by a rejected move")
	}
}

func TestReorderRejectsOutOfRangeIndices(t *testing.T) {
	d := NewDraft()
	n := len(d.Schedules[DivisionPremier])

	for _, m := range []Move{
		{Division: DivisionPremier, SourceIndex: -1, TargetIndex: 0},
		{Division: DivisionPremier, SourceIndex: 0, TargetIndex: n},
		{Division: DivisionPremier, SourceIndex: n, TargetIndex: 0},
	} {
		if err := d.Reorder(m); !errors.Is(err, ErrWeekOutOfRange) {
			t.Fatalf("move %+v: expected ErrWeekOutOfRange, got %v", m, err)
		}
	}
}
