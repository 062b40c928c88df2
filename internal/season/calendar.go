package season

import "time"

// WeekDate projects the 0-based week index onto the calendar: the date of
// week i is the start date plus seven days per week. Pure function of its
// inputs; callers are expected to pass date-only values.
func WeekDate(start time.Time, index int) time.Time {
	return start.AddDate(0, 0, 7*index)
}

// OnSunday reports whether t falls on a Sunday. Seasons start on Sundays;
// the convention mirrors time.Weekday's Sunday-as-zero numbering.
func OnSunday(t time.Time) bool {
	return t.Weekday() == time.Sunday
}
