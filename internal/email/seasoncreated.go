package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emeraldleague/leagueadmin/internal/season"
)

const seasonCreatedTimeout = 5 * time.Second

// BuildSeasonCreated renders the notification sent to the league admin
// address after the provisioning backend confirms a new season.
func BuildSeasonCreated(payload *season.SubmitPayload, backendMessage string) (subject, body string) {
	subject = fmt.Sprintf("New season created: %s (%s)", payload.SeasonName, payload.LeagueType)

	var b strings.Builder
	fmt.Fprintf(&b, "A new %s season %q was created through the season builder.\n\n", payload.LeagueType, payload.SeasonName)
	fmt.Fprintf(&b, "Start date: %s\n", payload.SeasonStartDate)
	if payload.LeagueType == string(season.ModePubLeague) {
		fmt.Fprintf(&b, "Premier: %d teams, %d weeks\n", payload.PremierTeams, len(payload.PremierWeekConfigs))
		fmt.Fprintf(&b, "Classic: %d teams, %d weeks\n", payload.ClassicTeams, len(payload.ClassicWeekConfigs))
	} else {
		fmt.Fprintf(&b, "ECS FC: %d teams, %d weeks\n", payload.EcsFcTeams, len(payload.EcsFcWeekConfigs))
	}
	fmt.Fprintf(&b, "Fields: %s\n", strings.Join(payload.Fields, ", "))
	if payload.SetAsCurrent {
		b.WriteString("The season was set as current.\n")
	}
	if backendMessage != "" {
		fmt.Fprintf(&b, "\nBackend: %s\n", backendMessage)
	}
	return subject, b.String()
}

// SendSeasonCreated delivers the season-created notification asynchronously.
// Failures are logged and never surfaced to the submitting request; the
// season already exists by the time this runs.
func SendSeasonCreated(ctx context.Context, client Sender, recipient string, payload *season.SubmitPayload, backendMessage string, logger *zerolog.Logger) {
	if client == nil {
		return
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return
	}

	subject, body := BuildSeasonCreated(payload, backendMessage)

	sendCtx, cancel := newEmailContext(ctx, seasonCreatedTimeout)
	go func() {
		defer cancel()
		if err := client.Send(sendCtx, recipient, subject, body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send season created email")
		}
	}()
}
