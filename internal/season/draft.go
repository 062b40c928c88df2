package season

import "time"

const (
	defaultPremierTeams = 8
	defaultClassicTeams = 4
	defaultEcsFcTeams   = 8
)

// TimeConfig carries the match-time and field settings collected on the
// Time/Fields step. Values pass through to the provisioning backend as-is.
type TimeConfig struct {
	PremierStartTime   string   `json:"premier_start_time"`
	ClassicStartTime   string   `json:"classic_start_time"`
	MatchDuration      int      `json:"match_duration"`
	BreakDuration      int      `json:"break_duration"`
	Fields             []string `json:"fields"`
	EnableTimeRotation bool     `json:"enable_time_rotation"`
}

// Draft is the complete in-memory season configuration being edited by the
// wizard. It lives only for the wizard session: it is either serialized and
// submitted once, or discarded. All mutation goes through the operation
// methods; none of them touches the draft when it reports an error.
type Draft struct {
	Name         string
	LeagueMode   LeagueMode
	SetAsCurrent bool
	StartDate    *time.Time
	Schedules    map[Division]DivisionSchedule
	TeamCounts   map[Division]int
	TimeConfig   TimeConfig
}

// NewDraft returns a fresh draft with the defaults the wizard opens with:
// Pub League mode, both divisions seeded from their standard templates, and
// the stock time configuration.
func NewDraft() *Draft {
	d := &Draft{
		LeagueMode: ModePubLeague,
		Schedules:  make(map[Division]DivisionSchedule),
		TeamCounts: map[Division]int{
			DivisionPremier: defaultPremierTeams,
			DivisionClassic: defaultClassicTeams,
			DivisionEcsFc:   defaultEcsFcTeams,
		},
		TimeConfig: TimeConfig{
			PremierStartTime:   "08:20",
			ClassicStartTime:   "13:10",
			MatchDuration:      70,
			BreakDuration:      10,
			Fields:             []string{"North", "South"},
			EnableTimeRotation: true,
		},
	}
	for _, div := range []Division{DivisionPremier, DivisionClassic, DivisionEcsFc} {
		tmpl, err := Template(div, TemplateStandard)
		if err != nil {
			// The catalog covers every division; a miss is a programming error.
			panic(err)
		}
		d.Schedules[div] = tmpl
	}
	return d
}

// active reports whether div participates in the draft's league mode.
func (d *Draft) active(div Division) bool {
	for _, a := range ActiveDivisions(d.LeagueMode) {
		if a == div {
			return true
		}
	}
	return false
}

// Schedule returns the division's current week list.
func (d *Draft) Schedule(div Division) (DivisionSchedule, error) {
	s, ok := d.Schedules[div]
	if !ok {
		return nil, ErrUnknownDivision
	}
	return s, nil
}

// editable returns the division's schedule for mutation. Divisions that do
// not participate in the draft's league mode cannot be edited.
func (d *Draft) editable(div Division) (DivisionSchedule, error) {
	s, ok := d.Schedules[div]
	if !ok {
		return nil, ErrUnknownDivision
	}
	if !d.active(div) {
		return nil, ErrInactiveDivision
	}
	return s, nil
}

// AddWeek appends one slot of the given type to the division's schedule.
// An empty type defaults to REGULAR.
func (d *Draft) AddWeek(div Division, t WeekType) error {
	if t == "" {
		t = WeekRegular
	}
	s, err := d.editable(div)
	if err != nil {
		return err
	}
	if !div.Permits(t) {
		return ErrTypeNotPermitted
	}
	d.Schedules[div] = append(s, WeekSlot{Type: t})
	return nil
}

// RemoveWeek deletes the slot at index (0-based). Removing the last
// remaining week is rejected and the schedule is left untouched; later
// slots renumber implicitly.
func (d *Draft) RemoveWeek(div Division, index int) error {
	s, err := d.editable(div)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s) {
		return ErrWeekOutOfRange
	}
	if len(s) == 1 {
		return ErrLastWeek
	}
	d.Schedules[div] = append(s[:index], s[index+1:]...)
	return nil
}

// SetWeekType retypes the slot at index in place.
func (d *Draft) SetWeekType(div Division, index int, t WeekType) error {
	s, err := d.editable(div)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(s) {
		return ErrWeekOutOfRange
	}
	if !div.Permits(t) {
		return ErrTypeNotPermitted
	}
	s[index].Type = t
	return nil
}

// ApplyTemplate replaces the division's schedule wholesale with a copy of
// the named template. Applying the same template twice is idempotent.
func (d *Draft) ApplyTemplate(div Division, name string) error {
	if _, err := d.editable(div); err != nil {
		return err
	}
	tmpl, err := Template(div, name)
	if err != nil {
		return err
	}
	d.Schedules[div] = tmpl
	return nil
}

// SetTeamCount records the placeholder team count for a division.
func (d *Draft) SetTeamCount(div Division, count int) error {
	if _, ok := d.TeamCounts[div]; !ok {
		return ErrUnknownDivision
	}
	if count < 0 {
		return ErrTeamCountNegative
	}
	d.TeamCounts[div] = count
	return nil
}
