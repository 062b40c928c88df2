// Package provision is the client for the external season-provisioning
// backend. The composer treats it as a black box behind a single
// request/response pair: one POST carrying the season payload, one
// success/error envelope back.
package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/emeraldleague/leagueadmin/internal/season"
)

const createSeasonPath = "/auto-schedule/create-season-wizard"

// Response is the backend's envelope. On failure either Error or Message
// carries the reason.
type Response struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Reason returns the human-readable failure text.
func (r *Response) Reason() string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}

// BackendError is a season-creation request the backend rejected or failed.
// The submitting draft stays intact; the caller surfaces the reason and
// permits retry.
type BackendError struct {
	StatusCode int
	Reason     string
}

func (e *BackendError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("season provisioning failed: %s", e.Reason)
	}
	return fmt.Sprintf("season provisioning failed with status %d", e.StatusCode)
}

// Client issues season-creation requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the backend at baseURL with the given per-request
// timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateSeason submits the payload and returns the backend's response. A
// network failure, a non-JSON reply, an error status, or success:false all
// come back as errors; *BackendError carries anything the backend said.
func (c *Client) CreateSeason(ctx context.Context, payload *season.SubmitPayload) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode season payload: %w", err)
	}

	url := c.baseURL + createSeasonPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build season request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger := log.Ctx(ctx)
	logger.Info().
		Str("url", url).
		Str("season_name", payload.SeasonName).
		Str("league_type", payload.LeagueType).
		Msg("Submitting season to provisioning backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("season provisioning request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read provisioning response: %w", err)
	}

	var parsed Response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &BackendError{StatusCode: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success {
		return &parsed, &BackendError{StatusCode: resp.StatusCode, Reason: parsed.Reason()}
	}

	logger.Info().
		Str("season_name", payload.SeasonName).
		Str("redirect_url", parsed.RedirectURL).
		Msg("Season provisioned")
	return &parsed, nil
}
