package season

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()

	if d.LeagueMode != ModePubLeague {
		t.Fatalf("expected default league mode %q, got %q", ModePubLeague, d.LeagueMode)
	}
	if d.StartDate != nil {
		t.Fatalf("expected no default start date")
	}
	if got := d.TeamCounts[DivisionPremier]; got != 8 {
		t.Fatalf("expected 8 premier teams, got %d", got)
	}
	if got := d.TeamCounts[DivisionClassic]; got != 4 {
		t.Fatalf("expected 4 classic teams, got %d", got)
	}

	std, err := Template(DivisionPremier, TemplateStandard)
	if err != nil {
		t.Fatalf("template lookup: %v", err)
	}
	if !reflect.DeepEqual(d.Schedules[DivisionPremier], std) {
		t.Fatalf("expected premier schedule seeded from the standard template")
	}
}

func TestAddWeekDefaultsToRegular(t *testing.T) {
	d := NewDraft()
	before := len(d.Schedules[DivisionPremier])

	if err := d.AddWeek(DivisionPremier, ""); err != nil {
		t.Fatalf("add week: %v", err)
	}

	s := d.Schedules[DivisionPremier]
	if len(s) != before+1 {
		t.Fatalf("expected length %d, got %d", before+1, len(s))
	}
	if s[len(s)-1].Type != WeekRegular {
		t.Fatalf("expected appended week to default to REGULAR, got %s", s[len(s)-1].Type)
	}
}

func TestAddWeekRejectsPracticeOutsideClassic(t *testing.T) {
	d := NewDraft()

	if err := d.AddWeek(DivisionPremier, WeekPractice); !errors.Is(err, ErrTypeNotPermitted) {
		t.Fatalf("expected ErrTypeNotPermitted for premier practice week, got %v", err)
	}
	if err := d.AddWeek(DivisionClassic, WeekPractice); err != nil {
		t.Fatalf("expected classic to permit practice weeks, got %v", err)
	}
}

func TestRemoveWeekRenumbersImplicitly(t *testing.T) {
	d := NewDraft()
	if err := d.ApplyTemplate(DivisionPremier, TemplateStandard); err != nil {
		t.Fatalf("apply template: %v", err)
	}

	// Standard premier: week 4 is TST. Remove week 1; TST becomes week 3.
	if err := d.RemoveWeek(DivisionPremier, 0); err != nil {
		t.Fatalf("remove week: %v", err)
	}
	s := d.Schedules[DivisionPremier]
	if len(s) != 10 {
		t.Fatalf("expected 10 weeks, got %d", len(s))
	}
	if s[2].Type != WeekTST {
		t.Fatalf("expected TST to shift to week 3, got %s", s[2].Type)
	}
}

func TestRemoveLastWeekRejected(t *testing.T) {
	d := NewDraft()
	d.LeagueMode = ModeEcsFc
	d.Schedules[DivisionEcsFc] = DivisionSchedule{{Type: WeekRegular}}

	err := d.RemoveWeek(DivisionEcsFc, 0)
	if !errors.Is(err, ErrLastWeek) {
		t.Fatalf("expected ErrLastWeek, got %v", err)
	}
	if len(d.Schedules[DivisionEcsFc]) != 1 {
		t.Fatalf("schedule must remain length 1 after rejected removal")
	}
}

func TestSetWeekType(t *testing.T) {
	d := NewDraft()

	if err := d.SetWeekType(DivisionClassic, 2, WeekBye); err != nil {
		t.Fatalf("set type: %v", err)
	}
	if got := d.Schedules[DivisionClassic][2].Type; got != WeekBye {
		t.Fatalf("expected BYE at index 2, got %s", got)
	}

	if err := d.SetWeekType(DivisionClassic, 99, WeekBye); !errors.Is(err, ErrWeekOutOfRange) {
		t.Fatalf("expected ErrWeekOutOfRange, got %v", err)
	}
	if err := d.SetWeekType(DivisionPremier, 0, WeekPractice); !errors.Is(err, ErrTypeNotPermitted) {
		t.Fatalf("expected ErrTypeNotPermitted, got %v", err)
	}
}

func TestEditsRejectInactiveDivision(t *testing.T) {
	d := NewDraft()

	// ECS FC does not participate in a Pub League season.
	if err := d.AddWeek(DivisionEcsFc, WeekRegular); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("add week: expected ErrInactiveDivision, got %v", err)
	}
	if err := d.RemoveWeek(DivisionEcsFc, 0); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("remove week: expected ErrInactiveDivision, got %v", err)
	}
	if err := d.SetWeekType(DivisionEcsFc, 0, WeekBye); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("set type: expected ErrInactiveDivision, got %v", err)
	}
	if err := d.ApplyTemplate(DivisionEcsFc, TemplateStandard); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("apply template: expected ErrInactiveDivision, got %v", err)
	}
	if err := d.Reorder(Move{Division: DivisionEcsFc, SourceIndex: 0, TargetIndex: 1}); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("reorder: expected ErrInactiveDivision, got %v", err)
	}

	d.LeagueMode = ModeEcsFc
	if err := d.AddWeek(DivisionPremier, WeekRegular); !errors.Is(err, ErrInactiveDivision) {
		t.Fatalf("premier in ECS FC mode: expected ErrInactiveDivision, got %v", err)
	}
	if err := d.AddWeek(DivisionEcsFc, WeekRegular); err != nil {
		t.Fatalf("ecs fc in ECS FC mode: %v", err)
	}
}

func TestApplyTemplateIdempotent(t *testing.T) {
	d := NewDraft()

	if err := d.ApplyTemplate(DivisionPremier, TemplateStandard); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	first := d.Schedules[DivisionPremier].Clone()

	if err := d.ApplyTemplate(DivisionPremier, TemplateStandard); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if !reflect.DeepEqual(first, d.Schedules[DivisionPremier]) {
		t.Fatalf("reapplying the same template must yield an identical list")
	}
}

func TestApplyTemplateCopiesCatalog(t *testing.T) {
	d := NewDraft()
	if err := d.ApplyTemplate(DivisionPremier, TemplateCompact); err != nil {
		t.Fatalf("apply template: %v", err)
	}
	d.Schedules[DivisionPremier][0].Type = WeekBye

	fresh, err := Template(DivisionPremier, TemplateCompact)
	if err != nil {
		t.Fatalf("template lookup: %v", err)
	}
	if fresh[0].Type == WeekBye {
		t.Fatalf("mutating an applied schedule must not corrupt the catalog")
	}
}

func TestApplyUnknownTemplate(t *testing.T) {
	d := NewDraft()
	if err := d.ApplyTemplate(DivisionPremier, "marathon"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestSetTeamCount(t *testing.T) {
	d := NewDraft()
	if err := d.SetTeamCount(DivisionPremier, 10); err != nil {
		t.Fatalf("set team count: %v", err)
	}
	if err := d.SetTeamCount(DivisionPremier, -1); !errors.Is(err, ErrTeamCountNegative) {
		t.Fatalf("expected ErrTeamCountNegative, got %v", err)
	}
	if d.TeamCounts[DivisionPremier] != 10 {
		t.Fatalf("rejected update must not change the count")
	}
}
