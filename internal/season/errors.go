package season

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDivision   = errors.New("unknown division")
	ErrInactiveDivision  = errors.New("division is not active for this league mode")
	ErrLastWeek          = errors.New("cannot remove the last week")
	ErrWeekOutOfRange    = errors.New("week index out of range")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrCrossDivisionMove = errors.New("weeks cannot be moved between divisions")
	ErrSubmitInProgress  = errors.New("a submission is already in progress")
	ErrWizardFinished    = errors.New("wizard session is finished")
	ErrStepNotReachable  = errors.New("step is not reachable from the current step")
	ErrSubmitNotAtReview = errors.New("submit is only allowed from the review step")
	ErrNoPendingSubmit   = errors.New("no submission is in progress")
	ErrTypeNotPermitted  = errors.New("week type is not permitted in this division")
	ErrTeamCountNegative = errors.New("team counts must be non-negative")
)

// ValidationError is a recoverable rule violation: it blocks step advancement
// or submission, never mutates the draft, and names the first offending rule.
type ValidationError struct {
	Rule     string   // stable identifier, e.g. "start_date_sunday"
	Division Division // offending division, if the rule is division-scoped
	Week     int      // 1-based offending week, if the rule is week-scoped
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(rule string, format string, args ...any) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}
