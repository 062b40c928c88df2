package season

import "time"

const dateLayout = "2006-01-02"

// WeekConfig is one week of a division's schedule on the wire: a 1-based
// week number and its type.
type WeekConfig struct {
	WeekNumber int      `json:"week_number"`
	Type       WeekType `json:"type"`
}

// SubmitPayload is the season-creation request accepted by the provisioning
// backend. It is the only structure that crosses that boundary.
type SubmitPayload struct {
	SeasonName      string `json:"season_name"`
	LeagueType      string `json:"league_type"`
	SetAsCurrent    bool   `json:"set_as_current"`
	SeasonStartDate string `json:"season_start_date"`

	PremierTeams int `json:"premier_teams"`
	ClassicTeams int `json:"classic_teams"`
	EcsFcTeams   int `json:"ecs_fc_teams"`

	PremierStartTime   string   `json:"premier_start_time"`
	ClassicStartTime   string   `json:"classic_start_time"`
	MatchDuration      int      `json:"match_duration"`
	BreakDuration      int      `json:"break_duration"`
	Fields             []string `json:"fields"`
	EnableTimeRotation bool     `json:"enable_time_rotation"`

	PremierWeekConfigs []WeekConfig `json:"premier_week_configs,omitempty"`
	ClassicWeekConfigs []WeekConfig `json:"classic_week_configs,omitempty"`
	EcsFcWeekConfigs   []WeekConfig `json:"ecs_fc_week_configs,omitempty"`
}

// BuildPayload serializes the draft into the submission contract. Week
// slots become 1-based week configs; only the active divisions' schedules
// are emitted. Callers validate the draft first; BuildPayload does not.
func (d *Draft) BuildPayload() *SubmitPayload {
	p := &SubmitPayload{
		SeasonName:         d.Name,
		LeagueType:         string(d.LeagueMode),
		SetAsCurrent:       d.SetAsCurrent,
		PremierTeams:       d.TeamCounts[DivisionPremier],
		ClassicTeams:       d.TeamCounts[DivisionClassic],
		EcsFcTeams:         d.TeamCounts[DivisionEcsFc],
		PremierStartTime:   d.TimeConfig.PremierStartTime,
		ClassicStartTime:   d.TimeConfig.ClassicStartTime,
		MatchDuration:      d.TimeConfig.MatchDuration,
		BreakDuration:      d.TimeConfig.BreakDuration,
		Fields:             append([]string(nil), d.TimeConfig.Fields...),
		EnableTimeRotation: d.TimeConfig.EnableTimeRotation,
	}
	if d.StartDate != nil {
		p.SeasonStartDate = d.StartDate.Format(dateLayout)
	}
	for _, div := range ActiveDivisions(d.LeagueMode) {
		configs := weekConfigs(d.Schedules[div])
		switch div {
		case DivisionPremier:
			p.PremierWeekConfigs = configs
		case DivisionClassic:
			p.ClassicWeekConfigs = configs
		case DivisionEcsFc:
			p.EcsFcWeekConfigs = configs
		}
	}
	return p
}

func weekConfigs(s DivisionSchedule) []WeekConfig {
	configs := make([]WeekConfig, len(s))
	for i, slot := range s {
		configs[i] = WeekConfig{WeekNumber: i + 1, Type: slot.Type}
	}
	return configs
}

// ParseStartDate parses a YYYY-MM-DD start date into a date-only value.
func ParseStartDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}
