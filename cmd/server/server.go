// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/api"
	"github.com/emeraldleague/leagueadmin/internal/api/seasons"
	"github.com/emeraldleague/leagueadmin/internal/api/wizard"
	"github.com/emeraldleague/leagueadmin/internal/config"
	"github.com/emeraldleague/leagueadmin/internal/db"
	"github.com/emeraldleague/leagueadmin/internal/email"
	"github.com/emeraldleague/leagueadmin/internal/provision"
	"github.com/emeraldleague/leagueadmin/internal/ratelimit"
	"github.com/emeraldleague/leagueadmin/internal/scheduler"
	"github.com/emeraldleague/leagueadmin/internal/season"
)

func newServer(cfg *config.Config, database *db.DB) (*http.Server, error) {
	sessions := season.NewStore(cfg.Wizard.SessionTTL(), nil)
	limiter := ratelimit.New(ratelimit.DefaultConfig())
	provisioner := provision.New(cfg.Provisioner.BaseURL, cfg.Provisioner.Timeout())

	var mailer email.Sender
	if cfg.Email.Enabled {
		sesClient, err := email.NewSESClient(
			cfg.Email.AccessKeyID,
			cfg.Email.SecretAccessKey,
			cfg.Email.Region,
			cfg.Email.Sender,
		)
		if err != nil {
			return nil, fmt.Errorf("create SES client: %w", err)
		}
		mailer = sesClient
		log.Info().Str("region", cfg.Email.Region).Msg("Email notifications enabled")
	}

	wizard.InitHandlers(wizard.Deps{
		Sessions:    sessions,
		Provisioner: provisioner,
		Registry:    database,
		Limiter:     limiter,
		Mailer:      mailer,
		AdminEmail:  cfg.Email.AdminEmail,
	})
	seasons.InitHandlers(database)

	if err := scheduler.RegisterMaintenanceJobs(sessions, limiter, cfg.Wizard.SweepCron); err != nil {
		return nil, fmt.Errorf("register maintenance jobs: %w", err)
	}

	router := http.NewServeMux()
	registerRoutes(router)

	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithAdminToken(cfg.App.AdminTokenHash),
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Wizard session lifecycle
	mux.HandleFunc("POST /api/v1/season-wizard", wizard.HandleCreateSession)
	mux.HandleFunc("GET /api/v1/season-wizard/{id}", wizard.HandleGetSession)
	mux.HandleFunc("DELETE /api/v1/season-wizard/{id}", wizard.HandleAbandonSession)

	// Draft editing
	mux.HandleFunc("PUT /api/v1/season-wizard/{id}/basics", wizard.HandleUpdateBasics)
	mux.HandleFunc("PUT /api/v1/season-wizard/{id}/teams", wizard.HandleUpdateTeams)
	mux.HandleFunc("PUT /api/v1/season-wizard/{id}/time-config", wizard.HandleUpdateTimeConfig)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/weeks", wizard.HandleAddWeek)
	mux.HandleFunc("DELETE /api/v1/season-wizard/{id}/weeks", wizard.HandleRemoveWeek)
	mux.HandleFunc("PUT /api/v1/season-wizard/{id}/weeks/type", wizard.HandleSetWeekType)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/weeks/reorder", wizard.HandleReorderWeeks)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/template", wizard.HandleApplyTemplate)

	// Step navigation and submission
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/next", wizard.HandleNext)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/prev", wizard.HandlePrev)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/goto", wizard.HandleGoTo)
	mux.HandleFunc("POST /api/v1/season-wizard/{id}/submit", wizard.HandleSubmit)

	// Season registry
	mux.HandleFunc("GET /api/v1/seasons", seasons.HandleListSeasons)
	mux.HandleFunc("PUT /api/v1/seasons/{id}/current", seasons.HandleSetCurrent)
	mux.HandleFunc("DELETE /api/v1/seasons/{id}", seasons.HandleDeleteSeason)
}
