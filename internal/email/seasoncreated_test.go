package email

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emeraldleague/leagueadmin/internal/season"
)

type fakeSender struct {
	mu        sync.Mutex
	sent      chan struct{}
	recipient string
	subject   string
	body      string
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan struct{}, 1)}
}

func (f *fakeSender) Send(ctx context.Context, recipient, subject, body string) error {
	f.mu.Lock()
	f.recipient, f.subject, f.body = recipient, subject, body
	f.mu.Unlock()
	select {
	case f.sent <- struct{}{}:
	default:
	}
	return nil
}

func pubLeaguePayload() *season.SubmitPayload {
	d := season.NewDraft()
	d.Name = "Spring 2024"
	d.SetAsCurrent = true
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	d.StartDate = &start
	return d.BuildPayload()
}

func TestBuildSeasonCreated(t *testing.T) {
	subject, body := BuildSeasonCreated(pubLeaguePayload(), "Discord setup in progress...")

	if !strings.Contains(subject, "Spring 2024") || !strings.Contains(subject, "Pub League") {
		t.Fatalf("unexpected subject %q", subject)
	}
	for _, want := range []string{
		"2024-01-07",
		"Premier: 8 teams, 11 weeks",
		"Classic: 4 teams, 11 weeks",
		"North, South",
		"set as current",
		"Discord setup in progress...",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestBuildSeasonCreatedEcsFc(t *testing.T) {
	d := season.NewDraft()
	d.Name = "ECS FC Fall"
	d.LeagueMode = season.ModeEcsFc
	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	d.StartDate = &start

	_, body := BuildSeasonCreated(d.BuildPayload(), "")
	if !strings.Contains(body, "ECS FC: 8 teams, 8 weeks") {
		t.Fatalf("body missing ECS FC summary:\n%s", body)
	}
	if strings.Contains(body, "Premier:") {
		t.Fatalf("ECS FC notification must not mention Pub League divisions:\n%s", body)
	}
}

func TestSendSeasonCreated(t *testing.T) {
	sender := newFakeSender()
	SendSeasonCreated(context.Background(), sender, "admin@example.com", pubLeaguePayload(), "", nil)

	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected an async send")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if sender.recipient != "admin@example.com" {
		t.Fatalf("unexpected recipient %q", sender.recipient)
	}
}

func TestSendSeasonCreatedNoRecipient(t *testing.T) {
	sender := newFakeSender()
	SendSeasonCreated(context.Background(), sender, "  ", pubLeaguePayload(), "", nil)

	select {
	case <-sender.sent:
		t.Fatalf("expected no send without a recipient")
	case <-time.After(50 * time.Millisecond):
	}
}
