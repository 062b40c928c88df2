package season

// Division is one named bracket of teams with its own week schedule.
type Division string

const (
	DivisionPremier Division = "Premier"
	DivisionClassic Division = "Classic"
	DivisionEcsFc   Division = "ECS FC"
)

// LeagueMode selects which divisions a season runs. The wire values match
// the provisioning backend's league_type field.
type LeagueMode string

const (
	ModePubLeague LeagueMode = "Pub League"
	ModeEcsFc     LeagueMode = "ECS FC"
)

// Valid reports whether m is a known league mode.
func (m LeagueMode) Valid() bool {
	return m == ModePubLeague || m == ModeEcsFc
}

// ActiveDivisions returns the divisions that participate in a season of the
// given mode, in validation order. Pub League runs Premier and Classic
// concurrently; ECS FC runs a single division.
func ActiveDivisions(mode LeagueMode) []Division {
	switch mode {
	case ModePubLeague:
		return []Division{DivisionPremier, DivisionClassic}
	case ModeEcsFc:
		return []Division{DivisionEcsFc}
	}
	return nil
}

// Permits reports whether week type t may be scheduled in division d.
// Practice weeks exist only in Classic; every other type is league-wide.
func (d Division) Permits(t WeekType) bool {
	if !t.Valid() {
		return false
	}
	if t == WeekPractice {
		return d == DivisionClassic
	}
	return true
}

// Valid reports whether d is a known division.
func (d Division) Valid() bool {
	switch d {
	case DivisionPremier, DivisionClassic, DivisionEcsFc:
		return true
	}
	return false
}
