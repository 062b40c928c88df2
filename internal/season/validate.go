package season

import "strings"

const minScheduleWeeks = 4

// Validate runs the cross-division checks in fixed order and returns the
// first violation, never an aggregate. It is invoked before leaving the
// Schedule step and again before final submission.
//
// Order: start date set, start date on a Sunday, per-division minimum
// length, Pub League length equality, Pub League shared-type week sync,
// minimum field count.
func (d *Draft) Validate() error {
	if d.StartDate == nil {
		return validationErrorf("start_date_required", "a season start date is required")
	}
	if !OnSunday(*d.StartDate) {
		return validationErrorf("start_date_sunday", "the season must start on a Sunday")
	}

	for _, div := range ActiveDivisions(d.LeagueMode) {
		if len(d.Schedules[div]) < minScheduleWeeks {
			err := validationErrorf("min_weeks",
				"%s needs at least %d weeks", div, minScheduleWeeks)
			err.Division = div
			return err
		}
	}

	if d.LeagueMode == ModePubLeague {
		premier := d.Schedules[DivisionPremier]
		classic := d.Schedules[DivisionClassic]
		if len(premier) != len(classic) {
			return validationErrorf("length_mismatch",
				"Premier has %d weeks but Classic has %d; concurrent divisions must run the same number of weeks",
				len(premier), len(classic))
		}
		for i := range premier {
			p, c := premier[i].Type, classic[i].Type
			if (p.Shared() || c.Shared()) && p != c {
				err := validationErrorf("shared_week_mismatch",
					"week %d: Premier has %s but Classic has %s; league-wide weeks must match across divisions",
					i+1, p, c)
				err.Week = i + 1
				return err
			}
		}
	}

	if countFields(d.TimeConfig.Fields) < 2 {
		return validationErrorf("min_fields", "at least 2 fields are required")
	}
	return nil
}

// validateBasics gates the Basics step: a usable name and a league mode.
func (d *Draft) validateBasics() error {
	if len(strings.TrimSpace(d.Name)) < 3 {
		return validationErrorf("name_too_short", "season name must be at least 3 characters")
	}
	if !d.LeagueMode.Valid() {
		return validationErrorf("league_mode", "a league mode must be selected")
	}
	return nil
}

// validateTeams gates the Teams step: defaults are valid, negatives are not.
func (d *Draft) validateTeams() error {
	for _, div := range ActiveDivisions(d.LeagueMode) {
		if d.TeamCounts[div] < 0 {
			err := validationErrorf("team_count_negative",
				"%s team count must not be negative", div)
			err.Division = div
			return err
		}
	}
	return nil
}

// validateTimeFields gates the Time/Fields step.
func (d *Draft) validateTimeFields() error {
	if countFields(d.TimeConfig.Fields) < 2 {
		return validationErrorf("min_fields", "at least 2 fields are required")
	}
	return nil
}

func countFields(fields []string) int {
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}
