package wizard

import (
	"github.com/emeraldleague/leagueadmin/internal/season"
)

// weekView is one week slot projected for display: its 1-based number, its
// type, and, once a start date is set, its calendar date.
type weekView struct {
	WeekNumber int    `json:"week_number"`
	Type       string `json:"type"`
	Date       string `json:"date,omitempty"`
}

type timeConfigView struct {
	PremierStartTime   string   `json:"premier_start_time"`
	ClassicStartTime   string   `json:"classic_start_time"`
	MatchDuration      int      `json:"match_duration"`
	BreakDuration      int      `json:"break_duration"`
	Fields             []string `json:"fields"`
	EnableTimeRotation bool     `json:"enable_time_rotation"`
}

type draftView struct {
	Name         string                `json:"name"`
	LeagueMode   string                `json:"league_mode"`
	SetAsCurrent bool                  `json:"set_as_current"`
	StartDate    string                `json:"start_date,omitempty"`
	Schedules    map[string][]weekView `json:"schedules"`
	TeamCounts   map[string]int        `json:"team_counts"`
	TimeConfig   timeConfigView        `json:"time_config"`
}

type wizardView struct {
	SessionID string    `json:"session_id"`
	Step      int       `json:"step"`
	StepName  string    `json:"step_name"`
	State     string    `json:"state"`
	Draft     draftView `json:"draft"`
}

// viewOf snapshots a session into its response shape under the session lock.
func viewOf(s *season.Session) (wizardView, error) {
	var view wizardView
	err := deps.Sessions.Do(s.ID, func(wz *season.Wizard) error {
		view = buildView(s.ID, wz)
		return nil
	})
	return view, err
}

func buildView(id string, wz *season.Wizard) wizardView {
	d := wz.Draft()
	view := wizardView{
		SessionID: id,
		Step:      int(wz.Step()),
		StepName:  wz.Step().String(),
		State:     wz.State().String(),
		Draft: draftView{
			Name:         d.Name,
			LeagueMode:   string(d.LeagueMode),
			SetAsCurrent: d.SetAsCurrent,
			Schedules:    make(map[string][]weekView, len(d.Schedules)),
			TeamCounts:   make(map[string]int, len(d.TeamCounts)),
			TimeConfig: timeConfigView{
				PremierStartTime:   d.TimeConfig.PremierStartTime,
				ClassicStartTime:   d.TimeConfig.ClassicStartTime,
				MatchDuration:      d.TimeConfig.MatchDuration,
				BreakDuration:      d.TimeConfig.BreakDuration,
				Fields:             append([]string(nil), d.TimeConfig.Fields...),
				EnableTimeRotation: d.TimeConfig.EnableTimeRotation,
			},
		},
	}
	if d.StartDate != nil {
		view.Draft.StartDate = d.StartDate.Format("2006-01-02")
	}
	for _, div := range season.ActiveDivisions(d.LeagueMode) {
		schedule := d.Schedules[div]
		weeks := make([]weekView, len(schedule))
		for i, slot := range schedule {
			weeks[i] = weekView{WeekNumber: i + 1, Type: string(slot.Type)}
			if d.StartDate != nil {
				weeks[i].Date = season.WeekDate(*d.StartDate, i).Format("2006-01-02")
			}
		}
		view.Draft.Schedules[string(div)] = weeks
	}
	for div, count := range d.TeamCounts {
		view.Draft.TeamCounts[string(div)] = count
	}
	return view
}
