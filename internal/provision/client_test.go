package provision

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emeraldleague/leagueadmin/internal/season"
)

func testPayload() *season.SubmitPayload {
	d := season.NewDraft()
	d.Name = "Spring 2024"
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	d.StartDate = &start
	return d.BuildPayload()
}

func TestCreateSeasonSuccess(t *testing.T) {
	var gotPath string
	var gotPayload season.SubmitPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(Response{Success: true, Message: "created", RedirectURL: "/schedule"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	resp, err := client.CreateSeason(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	if gotPath != "/auto-schedule/create-season-wizard" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotPayload.SeasonName != "Spring 2024" || gotPayload.LeagueType != "Pub League" {
		t.Fatalf("payload did not round-trip: %+v", gotPayload)
	}
	if resp.RedirectURL != "/schedule" {
		t.Fatalf("unexpected redirect %q", resp.RedirectURL)
	}
}

func TestCreateSeasonBackendRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "season already exists"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.CreateSeason(context.Background(), testPayload())

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if berr.StatusCode != http.StatusBadRequest || berr.Reason != "season already exists" {
		t.Fatalf("unexpected backend error: %+v", berr)
	}
}

func TestCreateSeasonSuccessFalseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Success: false, Message: "template generation failed"})
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.CreateSeason(context.Background(), testPayload())

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("expected BackendError on success:false, got %v", err)
	}
	if berr.Reason != "template generation failed" {
		t.Fatalf("unexpected reason %q", berr.Reason)
	}
}

func TestCreateSeasonUnreachableBackend(t *testing.T) {
	client := New("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := client.CreateSeason(context.Background(), testPayload())
	if err == nil {
		t.Fatalf("expected a transport error")
	}
	var berr *BackendError
	if errors.As(err, &berr) {
		t.Fatalf("transport failures must not be BackendError: %v", err)
	}
}
