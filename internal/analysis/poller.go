// Package analysis drives the lifecycle of one website scan: submit the
// URL, poll the status endpoint until a terminal state, then hand the
// result (or failure) to the caller. Polls are strictly sequential: the
// next one is scheduled only after the previous response is observed.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sanghyxuk/shieldhub-cli/internal/api"
	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// SubmissionError reports a failed scan submission. No job is registered
// when this is returned.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string { return fmt.Sprintf("submitting scan: %v", e.Err) }
func (e *SubmissionError) Unwrap() error { return e.Err }

// StatusClient is the slice of the API client the poller needs.
type StatusClient interface {
	StartAnalysis(ctx context.Context, url string) (string, error)
	GetAnalysisStatus(ctx context.Context, id string) (*api.AnalysisStatusResponse, error)
}

// Clock abstracts timer scheduling so tests can advance virtual time.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Callbacks receive the terminal outcome of a job. Exactly one of the two
// is invoked, exactly once, per Run.
type Callbacks struct {
	OnCompleted func(id string, result *models.ScanResult)
	OnFailed    func(id string, err error)
}

// Poller submits scans and polls their status until completion.
type Poller struct {
	client     StatusClient
	interval   time.Duration
	maxRetries int
	clock      Clock
}

// NewPoller returns a Poller configured from cfg.
func NewPoller(client StatusClient, cfg config.AnalysisConfig) *Poller {
	interval := time.Duration(cfg.PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	retries := cfg.MaxFetchRetries
	if retries < 0 {
		retries = 0
	}
	return &Poller{
		client:     client,
		interval:   interval,
		maxRetries: retries,
		clock:      realClock{},
	}
}

// Submit validates url and creates the analysis job, returning its
// identifier. An empty URL fails locally with a ValidationError; a failed
// request fails with a SubmissionError and leaves no job registered.
// Auth errors pass through unchanged so callers can prompt for login.
func (p *Poller) Submit(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", &ValidationError{Reason: "url must not be empty"}
	}
	id, err := p.client.StartAnalysis(ctx, url)
	if err != nil {
		if errors.Is(err, api.ErrAuthRequired) || errors.Is(err, api.ErrUnauthorized) {
			return "", err
		}
		return "", &SubmissionError{Err: err}
	}
	return id, nil
}

// Run polls the job until it reaches a terminal state, then invokes exactly
// one callback. Cancelling ctx during a wait stops the loop without
// invoking either callback; no further poll is issued.
//
// Transient fetch errors are retried with a doubling backoff up to the
// configured budget; exhausting it is terminal failure. Auth errors are
// terminal immediately.
func (p *Poller) Run(ctx context.Context, id string, cb Callbacks) error {
	retries := 0
	for {
		st, err := p.client.GetAnalysisStatus(ctx, id)
		if err != nil {
			if errors.Is(err, api.ErrAuthRequired) || errors.Is(err, api.ErrUnauthorized) || ctx.Err() != nil {
				p.fail(cb, id, err)
				return err
			}
			retries++
			if retries > p.maxRetries {
				err = fmt.Errorf("polling status after %d attempts: %w", retries, err)
				p.fail(cb, id, err)
				return err
			}
			backoff := p.interval << (retries - 1)
			slog.Debug("status poll failed; retrying", "analysis_id", id, "attempt", retries, "backoff", backoff, "error", err)
			if err := p.wait(ctx, backoff); err != nil {
				return err
			}
			continue
		}
		retries = 0

		switch st.Status {
		case models.AnalysisPending, models.AnalysisInProgress:
			if err := p.wait(ctx, p.interval); err != nil {
				return err
			}
		case models.AnalysisCompleted:
			if st.Result == nil {
				err := fmt.Errorf("analysis %s completed without a result payload", id)
				p.fail(cb, id, err)
				return err
			}
			if cb.OnCompleted != nil {
				cb.OnCompleted(id, st.Result)
			}
			return nil
		default:
			// FAILED or an unrecognised status, both terminal.
			err := fmt.Errorf("analysis %s ended with status %q", id, st.Status)
			p.fail(cb, id, err)
			return err
		}
	}
}

func (p *Poller) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.clock.After(d):
		return nil
	}
}

func (p *Poller) fail(cb Callbacks, id string, err error) {
	if cb.OnFailed != nil {
		cb.OnFailed(id, err)
	}
}
