// internal/api/wizard/handlers.go
package wizard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/api/apiutil"
	"github.com/emeraldleague/leagueadmin/internal/db"
	"github.com/emeraldleague/leagueadmin/internal/email"
	"github.com/emeraldleague/leagueadmin/internal/provision"
	"github.com/emeraldleague/leagueadmin/internal/ratelimit"
	"github.com/emeraldleague/leagueadmin/internal/season"
	"github.com/emeraldleague/leagueadmin/internal/store"
)

const (
	sessionIDParam       = "id"
	registryQueryTimeout = 5 * time.Second
)

// SeasonCreator is the season-provisioning backend boundary.
type SeasonCreator interface {
	CreateSeason(ctx context.Context, payload *season.SubmitPayload) (*provision.Response, error)
}

// Deps wires the wizard handlers to their collaborators.
type Deps struct {
	Sessions    *season.Store
	Provisioner SeasonCreator
	Registry    *db.DB
	Limiter     *ratelimit.Limiter
	Mailer      email.Sender
	AdminEmail  string
}

var deps Deps

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps) {
	deps = d
}

// POST /api/v1/season-wizard
func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	if deps.Sessions == nil {
		serviceUnavailable(w, r)
		return
	}
	s := deps.Sessions.Create()
	log.Ctx(r.Context()).Info().Str("session_id", s.ID).Msg("Season wizard session opened")

	view, err := viewOf(s)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, view)
}

// GET /api/v1/season-wizard/{id}
func HandleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFromPath(w, r)
	if !ok {
		return
	}
	view, err := viewOf(s)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, view)
}

// DELETE /api/v1/season-wizard/{id}
func HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if deps.Sessions == nil {
		serviceUnavailable(w, r)
		return
	}
	id := strings.TrimSpace(r.PathValue(sessionIDParam))
	if err := deps.Sessions.Remove(id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("session_id", id).Msg("Season wizard session abandoned")
	w.WriteHeader(http.StatusNoContent)
}

type basicsRequest struct {
	Name         *string `json:"name"`
	LeagueMode   *string `json:"league_mode"`
	SetAsCurrent *bool   `json:"set_as_current"`
	StartDate    *string `json:"start_date"` // YYYY-MM-DD; empty clears
}

// PUT /api/v1/season-wizard/{id}/basics
func HandleUpdateBasics(w http.ResponseWriter, r *http.Request) {
	var req basicsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mutateSession(w, r, func(wz *season.Wizard) error {
		d := wz.Draft()
		if req.Name != nil {
			d.Name = strings.TrimSpace(*req.Name)
		}
		if req.LeagueMode != nil {
			mode := season.LeagueMode(*req.LeagueMode)
			if !mode.Valid() {
				return &season.ValidationError{Rule: "league_mode", Message: "unknown league mode"}
			}
			d.LeagueMode = mode
		}
		if req.SetAsCurrent != nil {
			d.SetAsCurrent = *req.SetAsCurrent
		}
		if req.StartDate != nil {
			if strings.TrimSpace(*req.StartDate) == "" {
				d.StartDate = nil
			} else {
				parsed, err := season.ParseStartDate(*req.StartDate)
				if err != nil {
					return &season.ValidationError{Rule: "start_date_format", Message: "start date must be YYYY-MM-DD"}
				}
				d.StartDate = &parsed
			}
		}
		return nil
	})
}

type teamsRequest struct {
	PremierTeams *int `json:"premier_teams"`
	ClassicTeams *int `json:"classic_teams"`
	EcsFcTeams   *int `json:"ecs_fc_teams"`
}

// PUT /api/v1/season-wizard/{id}/teams
func HandleUpdateTeams(w http.ResponseWriter, r *http.Request) {
	var req teamsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mutateSession(w, r, func(wz *season.Wizard) error {
		d := wz.Draft()
		if req.PremierTeams != nil {
			if err := d.SetTeamCount(season.DivisionPremier, *req.PremierTeams); err != nil {
				return err
			}
		}
		if req.ClassicTeams != nil {
			if err := d.SetTeamCount(season.DivisionClassic, *req.ClassicTeams); err != nil {
				return err
			}
		}
		if req.EcsFcTeams != nil {
			if err := d.SetTeamCount(season.DivisionEcsFc, *req.EcsFcTeams); err != nil {
				return err
			}
		}
		return nil
	})
}

type timeConfigRequest struct {
	PremierStartTime   *string   `json:"premier_start_time"`
	ClassicStartTime   *string   `json:"classic_start_time"`
	MatchDuration      *int      `json:"match_duration"`
	BreakDuration      *int      `json:"break_duration"`
	Fields             *[]string `json:"fields"`
	EnableTimeRotation *bool     `json:"enable_time_rotation"`
}

// PUT /api/v1/season-wizard/{id}/time-config
func HandleUpdateTimeConfig(w http.ResponseWriter, r *http.Request) {
	var req timeConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	mutateSession(w, r, func(wz *season.Wizard) error {
		tc := &wz.Draft().TimeConfig
		if req.PremierStartTime != nil {
			tc.PremierStartTime = *req.PremierStartTime
		}
		if req.ClassicStartTime != nil {
			tc.ClassicStartTime = *req.ClassicStartTime
		}
		if req.MatchDuration != nil {
			tc.MatchDuration = *req.MatchDuration
		}
		if req.BreakDuration != nil {
			tc.BreakDuration = *req.BreakDuration
		}
		if req.Fields != nil {
			tc.Fields = append([]string(nil), (*req.Fields)...)
		}
		if req.EnableTimeRotation != nil {
			tc.EnableTimeRotation = *req.EnableTimeRotation
		}
		return nil
	})
}

type addWeekRequest struct {
	Division string `json:"division"`
	Type     string `json:"type,omitempty"`
}

// POST /api/v1/season-wizard/{id}/weeks
func HandleAddWeek(w http.ResponseWriter, r *http.Request) {
	var req addWeekRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Draft().AddWeek(season.Division(req.Division), season.WeekType(req.Type))
	})
}

type removeWeekRequest struct {
	Division string `json:"division"`
	Index    int    `json:"index"`
}

// DELETE /api/v1/season-wizard/{id}/weeks
func HandleRemoveWeek(w http.ResponseWriter, r *http.Request) {
	var req removeWeekRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Draft().RemoveWeek(season.Division(req.Division), req.Index)
	})
}

type setWeekTypeRequest struct {
	Division string `json:"division"`
	Index    int    `json:"index"`
	Type     string `json:"type"`
}

// PUT /api/v1/season-wizard/{id}/weeks/type
func HandleSetWeekType(w http.ResponseWriter, r *http.Request) {
	var req setWeekTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Draft().SetWeekType(season.Division(req.Division), req.Index, season.WeekType(req.Type))
	})
}

type reorderRequest struct {
	Division       string `json:"division"`
	TargetDivision string `json:"target_division,omitempty"`
	SourceIndex    int    `json:"source_index"`
	TargetIndex    int    `json:"target_index"`
	InsertAfter    bool   `json:"insert_after"`
}

// POST /api/v1/season-wizard/{id}/weeks/reorder
func HandleReorderWeeks(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Draft().Reorder(season.Move{
			Division:       season.Division(req.Division),
			TargetDivision: season.Division(req.TargetDivision),
			SourceIndex:    req.SourceIndex,
			TargetIndex:    req.TargetIndex,
			InsertAfter:    req.InsertAfter,
		})
	})
}

type applyTemplateRequest struct {
	Division string `json:"division"`
	Template string `json:"template"`
}

// POST /api/v1/season-wizard/{id}/template
func HandleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req applyTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Draft().ApplyTemplate(season.Division(req.Division), req.Template)
	})
}

// POST /api/v1/season-wizard/{id}/next
func HandleNext(w http.ResponseWriter, r *http.Request) {
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Next()
	})
}

// POST /api/v1/season-wizard/{id}/prev
func HandlePrev(w http.ResponseWriter, r *http.Request) {
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.Prev()
	})
}

type goToRequest struct {
	Step int `json:"step"`
}

// POST /api/v1/season-wizard/{id}/goto
func HandleGoTo(w http.ResponseWriter, r *http.Request) {
	var req goToRequest
	if !decodeBody(w, r, &req) {
		return
	}
	mutateSession(w, r, func(wz *season.Wizard) error {
		return wz.GoTo(season.Step(req.Step))
	})
}

type submitResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
	SeasonID    int64  `json:"season_id,omitempty"`
}

// POST /api/v1/season-wizard/{id}/submit
//
// Validation and payload construction happen under the session lock; the
// provisioning call runs outside it with the wizard parked in its
// submitting state, so no other request can mutate the draft while the
// call is outstanding. Failure of any kind leaves the draft intact.
func HandleSubmit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	s, ok := sessionFromPath(w, r)
	if !ok {
		return
	}

	var clientIP string
	if deps.Limiter != nil {
		clientIP = ratelimit.ClientIP(r)
		if result := deps.Limiter.CheckSubmit(clientIP); !result.Allowed {
			logger.Warn().Str("reason", result.Reason).Str("ip", clientIP).Msg("Season submit rate limited")
			w.Header().Set("Retry-After", result.RetryAfter.Round(time.Second).String())
			apiutil.WriteError(w, http.StatusTooManyRequests, "too many submissions, try again later")
			return
		}
	}

	var payload *season.SubmitPayload
	err := deps.Sessions.Do(s.ID, func(wz *season.Wizard) error {
		var err error
		payload, err = wz.BeginSubmit()
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	// The attempt counts against the cooldown only once it passes
	// validation and is actually going out to the backend.
	if deps.Limiter != nil {
		deps.Limiter.RecordSubmit(clientIP)
	}

	resolve := func(created bool) {
		if err := deps.Sessions.Do(s.ID, func(wz *season.Wizard) error {
			return wz.FinishSubmit(created)
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to resolve wizard submission")
		}
	}

	// Duplicate names are rejected locally before the backend sees them,
	// mirroring the backend's own uniqueness rule.
	if deps.Registry != nil {
		ctx, cancel := context.WithTimeout(r.Context(), registryQueryTimeout)
		exists, err := deps.Registry.Seasons.ExistsByName(ctx, payload.SeasonName, payload.LeagueType)
		cancel()
		if err != nil {
			resolve(false)
			logger.Error().Err(err).Msg("Failed to check season name")
			apiutil.WriteError(w, http.StatusInternalServerError, "failed to check season name")
			return
		}
		if exists {
			resolve(false)
			apiutil.WriteError(w, http.StatusUnprocessableEntity,
				"a season with this name already exists for "+payload.LeagueType)
			return
		}
	}

	resp, err := deps.Provisioner.CreateSeason(r.Context(), payload)
	if err != nil {
		resolve(false)
		var berr *provision.BackendError
		if errors.As(err, &berr) {
			logger.Warn().Int("status", berr.StatusCode).Str("reason", berr.Reason).Msg("Season provisioning rejected")
			apiutil.WriteError(w, http.StatusBadGateway, berr.Error())
			return
		}
		logger.Error().Err(err).Msg("Season provisioning request failed")
		apiutil.WriteError(w, http.StatusBadGateway, "season provisioning request failed")
		return
	}

	resolve(true)

	seasonID, err := recordSeason(r.Context(), payload)
	if err != nil {
		// The season exists on the backend; a registry failure is logged,
		// not surfaced as a submission failure.
		logger.Error().Err(err).Msg("Failed to record season in registry")
	}

	email.SendSeasonCreated(r.Context(), deps.Mailer, deps.AdminEmail, payload, resp.Message, logger)

	apiutil.WriteJSON(w, http.StatusOK, submitResponse{
		Success:     true,
		Message:     resp.Message,
		RedirectURL: resp.RedirectURL,
		SeasonID:    seasonID,
	})
}

// recordSeason mirrors the provisioned season into the local registry,
// shifting the current-season flag in the same transaction when the draft
// asked for it.
func recordSeason(ctx context.Context, payload *season.SubmitPayload) (int64, error) {
	if deps.Registry == nil {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, registryQueryTimeout)
	defer cancel()

	var id int64
	err := deps.Registry.RunInTx(ctx, func(tx *db.DB) error {
		if payload.SetAsCurrent {
			if err := tx.Seasons.UnsetCurrent(ctx, payload.LeagueType); err != nil {
				return err
			}
		}
		var err error
		id, err = tx.Seasons.Insert(ctx, store.Season{
			Name:       payload.SeasonName,
			LeagueType: payload.LeagueType,
			IsCurrent:  payload.SetAsCurrent,
			StartDate:  payload.SeasonStartDate,
		})
		return err
	})
	return id, err
}
