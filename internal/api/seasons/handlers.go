// internal/api/seasons/handlers.go
package seasons

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/api/apiutil"
	"github.com/emeraldleague/leagueadmin/internal/db"
	"github.com/emeraldleague/leagueadmin/internal/season"
	"github.com/emeraldleague/leagueadmin/internal/store"
)

const (
	seasonIDParam        = "id"
	leagueTypeQueryKey   = "league_type"
	registryQueryTimeout = 5 * time.Second
)

var database *db.DB

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d *db.DB) {
	database = d
}

type seasonView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LeagueType string `json:"league_type"`
	IsCurrent  bool   `json:"is_current"`
	StartDate  string `json:"start_date,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func viewOf(s store.Season) seasonView {
	return seasonView{
		ID:         s.ID,
		Name:       s.Name,
		LeagueType: s.LeagueType,
		IsCurrent:  s.IsCurrent,
		StartDate:  s.StartDate,
		CreatedAt:  s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GET /api/v1/seasons?league_type=
func HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if database == nil {
		logger.Error().Msg("Season registry not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	leagueType := strings.TrimSpace(r.URL.Query().Get(leagueTypeQueryKey))
	if leagueType == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "league_type is required")
		return
	}
	if !season.LeagueMode(leagueType).Valid() {
		apiutil.WriteError(w, http.StatusBadRequest, "unknown league_type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registryQueryTimeout)
	defer cancel()

	seasons, err := database.Seasons.ListByType(ctx, leagueType)
	if err != nil {
		logger.Error().Err(err).Str("league_type", leagueType).Msg("Failed to list seasons")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to list seasons")
		return
	}

	views := make([]seasonView, 0, len(seasons))
	for _, s := range seasons {
		views = append(views, viewOf(s))
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"seasons": views})
}

// PUT /api/v1/seasons/{id}/current
func HandleSetCurrent(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id, ok := seasonIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registryQueryTimeout)
	defer cancel()

	err := database.RunInTx(ctx, func(tx *db.DB) error {
		return tx.Seasons.SetCurrent(ctx, id)
	})
	if errors.Is(err, store.ErrSeasonNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("season_id", id).Msg("Failed to set current season")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to set current season")
		return
	}

	updated, err := database.Seasons.Get(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("season_id", id).Msg("Failed to reload season")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to load season")
		return
	}
	logger.Info().Int64("season_id", id).Str("league_type", updated.LeagueType).Msg("Season set as current")
	apiutil.WriteJSON(w, http.StatusOK, viewOf(updated))
}

// DELETE /api/v1/seasons/{id}
func HandleDeleteSeason(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	id, ok := seasonIDFromPath(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registryQueryTimeout)
	defer cancel()

	err := database.Seasons.Delete(ctx, id)
	if errors.Is(err, store.ErrSeasonNotFound) {
		apiutil.WriteError(w, http.StatusNotFound, "season not found")
		return
	}
	if err != nil {
		logger.Error().Err(err).Int64("season_id", id).Msg("Failed to delete season")
		apiutil.WriteError(w, http.StatusInternalServerError, "failed to delete season")
		return
	}
	logger.Info().Int64("season_id", id).Msg("Season removed from registry")
	w.WriteHeader(http.StatusNoContent)
}

func seasonIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if database == nil {
		log.Ctx(r.Context()).Error().Msg("Season registry not initialized")
		apiutil.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return 0, false
	}
	raw := strings.TrimSpace(r.PathValue(seasonIDParam))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "invalid season id")
		return 0, false
	}
	return id, true
}
