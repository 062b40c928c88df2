package wizard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/api/apiutil"
	"github.com/emeraldleague/leagueadmin/internal/season"
)

func serviceUnavailable(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Error().Msg("Wizard handlers not initialized")
	apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

// sessionFromPath resolves the {id} path parameter to a live session,
// writing the error response itself when it cannot.
func sessionFromPath(w http.ResponseWriter, r *http.Request) (*season.Session, bool) {
	if deps.Sessions == nil {
		serviceUnavailable(w, r)
		return nil, false
	}
	id := strings.TrimSpace(r.PathValue(sessionIDParam))
	if id == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}
	s, err := deps.Sessions.Get(id)
	if err != nil {
		writeDomainError(w, r, err)
		return nil, false
	}
	return s, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := apiutil.DecodeJSON(r, dst); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// mutateSession runs fn against the session named in the path under its
// lock and, on success, responds with the refreshed wizard view. Wizards
// mid-submission or in a terminal state reject every mutation.
func mutateSession(w http.ResponseWriter, r *http.Request, fn func(*season.Wizard) error) {
	s, ok := sessionFromPath(w, r)
	if !ok {
		return
	}

	var view wizardView
	err := deps.Sessions.Do(s.ID, func(wz *season.Wizard) error {
		if err := wz.Mutable(); err != nil {
			return err
		}
		if err := fn(wz); err != nil {
			return err
		}
		view = buildView(s.ID, wz)
		return nil
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, view)
}

// writeDomainError maps domain errors onto HTTP statuses: missing sessions
// are 404, lifecycle conflicts 409, rule violations 422.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *season.ValidationError
	switch {
	case errors.Is(err, season.ErrSessionNotFound):
		apiutil.WriteError(w, http.StatusNotFound, "wizard session not found")
	case errors.Is(err, season.ErrSubmitInProgress),
		errors.Is(err, season.ErrWizardFinished),
		errors.Is(err, season.ErrNoPendingSubmit):
		apiutil.WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &verr):
		apiutil.WriteError(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.Is(err, season.ErrUnknownDivision),
		errors.Is(err, season.ErrInactiveDivision),
		errors.Is(err, season.ErrLastWeek),
		errors.Is(err, season.ErrWeekOutOfRange),
		errors.Is(err, season.ErrUnknownTemplate),
		errors.Is(err, season.ErrCrossDivisionMove),
		errors.Is(err, season.ErrTypeNotPermitted),
		errors.Is(err, season.ErrTeamCountNegative),
		errors.Is(err, season.ErrStepNotReachable),
		errors.Is(err, season.ErrSubmitNotAtReview):
		apiutil.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Ctx(r.Context()).Error().Err(err).Msg("Unhandled wizard error")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
