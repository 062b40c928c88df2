// Package season implements the multi-division season schedule composer:
// week-type schedules per division, calendar projection from a start date,
// cross-division validation, and the five-step creation wizard.
package season

// WeekType is the kind of activity scheduled for one week of a division's
// season. The set is closed; anything else is rejected at the API boundary.
type WeekType string

const (
	WeekRegular  WeekType = "REGULAR"
	WeekTST      WeekType = "TST"
	WeekFun      WeekType = "FUN"
	WeekBye      WeekType = "BYE"
	WeekPlayoff  WeekType = "PLAYOFF"
	WeekPractice WeekType = "PRACTICE"
)

// AllWeekTypes lists every week type in display order.
var AllWeekTypes = []WeekType{
	WeekRegular,
	WeekTST,
	WeekFun,
	WeekBye,
	WeekPlayoff,
	WeekPractice,
}

// sharedWeekTypes are league-wide events: when one division schedules one of
// these on a given calendar week, every concurrently-running division must
// schedule the same type that week.
var sharedWeekTypes = map[WeekType]bool{
	WeekTST: true,
	WeekBye: true,
	WeekFun: true,
}

// Valid reports whether t is a member of the closed week-type set.
func (t WeekType) Valid() bool {
	switch t {
	case WeekRegular, WeekTST, WeekFun, WeekBye, WeekPlayoff, WeekPractice:
		return true
	}
	return false
}

// Shared reports whether t must be synchronized across divisions.
func (t WeekType) Shared() bool {
	return sharedWeekTypes[t]
}
