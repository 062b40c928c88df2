package scheduler

import (
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/ratelimit"
	"github.com/emeraldleague/leagueadmin/internal/season"
)

// RegisterMaintenanceJobs registers the recurring housekeeping tasks:
// expiring idle wizard sessions and pruning stale rate-limit entries.
func RegisterMaintenanceJobs(sessions *season.Store, limiter *ratelimit.Limiter, cronExpr string) error {
	if sessions == nil {
		return fmt.Errorf("maintenance jobs require a session store")
	}

	jobName := "wizard_session_sweep"
	jobLogger := log.With().
		Str("component", "wizard_session_sweep_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		removed := sessions.Sweep()
		if removed > 0 {
			jobLogger.Info().Int("removed", removed).Int("remaining", sessions.Len()).Msg("Expired wizard sessions swept")
		}
		if limiter != nil {
			limiter.Prune()
		}
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add wizard session sweep job: %w", err)
	}

	jobLogger.Info().Msg("Wizard session sweep job registered")
	return nil
}
