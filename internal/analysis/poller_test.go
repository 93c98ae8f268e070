package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sanghyxuk/shieldhub-cli/internal/api"
	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

// instantClock fires every timer immediately so tests never sleep.
type instantClock struct{ waits int }

func (c *instantClock) After(d time.Duration) <-chan time.Time {
	c.waits++
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

// scriptedClient returns one response (or error) per poll, in order.
type scriptedClient struct {
	startID  string
	startErr error
	statuses []statusStep
	polls    int
}

type statusStep struct {
	resp *api.AnalysisStatusResponse
	err  error
}

func (s *scriptedClient) StartAnalysis(ctx context.Context, url string) (string, error) {
	return s.startID, s.startErr
}

func (s *scriptedClient) GetAnalysisStatus(ctx context.Context, id string) (*api.AnalysisStatusResponse, error) {
	if s.polls >= len(s.statuses) {
		panic("poll after terminal state")
	}
	step := s.statuses[s.polls]
	s.polls++
	return step.resp, step.err
}

func newTestPoller(client StatusClient) *Poller {
	p := NewPoller(client, config.AnalysisConfig{PollIntervalMs: 1, MaxFetchRetries: 3})
	p.clock = &instantClock{}
	return p
}

func status(st models.AnalysisStatus) statusStep {
	return statusStep{resp: &api.AnalysisStatusResponse{Status: st}}
}

func completed(result *models.ScanResult) statusStep {
	return statusStep{resp: &api.AnalysisStatusResponse{Status: models.AnalysisCompleted, Result: result}}
}

func TestSubmitEmptyURLFailsWithoutNetwork(t *testing.T) {
	client := &scriptedClient{startErr: errors.New("should not be called")}
	p := newTestPoller(client)

	_, err := p.Submit(context.Background(), "   ")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSubmitWrapsRequestFailures(t *testing.T) {
	client := &scriptedClient{startErr: errors.New("boom")}
	p := newTestPoller(client)

	_, err := p.Submit(context.Background(), "https://example.com")
	var sErr *SubmissionError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
}

func TestSubmitPassesAuthErrorsThrough(t *testing.T) {
	client := &scriptedClient{startErr: api.ErrAuthRequired}
	p := newTestPoller(client)

	_, err := p.Submit(context.Background(), "https://example.com")
	if !errors.Is(err, api.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired to pass through, got %v", err)
	}
}

func TestRunPollsUntilCompleted(t *testing.T) {
	result := &models.ScanResult{Success: true, URL: "https://example.com", VulnerabilityCount: 2}
	client := &scriptedClient{statuses: []statusStep{
		status(models.AnalysisPending),
		status(models.AnalysisInProgress),
		status(models.AnalysisInProgress),
		completed(result),
	}}
	p := newTestPoller(client)

	var gotResult *models.ScanResult
	completions, failures := 0, 0
	err := p.Run(context.Background(), "a1", Callbacks{
		OnCompleted: func(id string, r *models.ScanResult) {
			completions++
			gotResult = r
		},
		OnFailed: func(id string, err error) { failures++ },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if completions != 1 || failures != 0 {
		t.Fatalf("expected exactly one completion, got %d completions %d failures", completions, failures)
	}
	if gotResult != result {
		t.Fatalf("callback got wrong result: %+v", gotResult)
	}
	if client.polls != 4 {
		t.Fatalf("expected 4 polls, got %d", client.polls)
	}
}

func TestRunFailedStatusInvokesOnFailedOnce(t *testing.T) {
	client := &scriptedClient{statuses: []statusStep{
		status(models.AnalysisInProgress),
		status(models.AnalysisFailed),
	}}
	p := newTestPoller(client)

	failures := 0
	err := p.Run(context.Background(), "a1", Callbacks{
		OnCompleted: func(string, *models.ScanResult) { t.Fatal("OnCompleted must not fire") },
		OnFailed:    func(string, error) { failures++ },
	})
	if err == nil {
		t.Fatal("expected an error for a failed analysis")
	}
	if failures != 1 {
		t.Fatalf("expected exactly one failure callback, got %d", failures)
	}
}

func TestRunCompletedWithoutResultIsFailure(t *testing.T) {
	client := &scriptedClient{statuses: []statusStep{
		status(models.AnalysisCompleted), // no result payload
	}}
	p := newTestPoller(client)

	failures := 0
	err := p.Run(context.Background(), "a1", Callbacks{
		OnFailed: func(string, error) { failures++ },
	})
	if err == nil || failures != 1 {
		t.Fatalf("expected terminal failure, err=%v failures=%d", err, failures)
	}
}

func TestRunRetriesTransientErrorsThenRecovers(t *testing.T) {
	result := &models.ScanResult{Success: true}
	client := &scriptedClient{statuses: []statusStep{
		{err: errors.New("connection reset")},
		{err: errors.New("connection reset")},
		completed(result),
	}}
	p := newTestPoller(client)

	if err := p.Run(context.Background(), "a1", Callbacks{}); err != nil {
		t.Fatalf("Run should recover from transient errors: %v", err)
	}
	if client.polls != 3 {
		t.Fatalf("expected 3 polls, got %d", client.polls)
	}
}

func TestRunExhaustedRetryBudgetIsTerminal(t *testing.T) {
	boom := errors.New("connection reset")
	client := &scriptedClient{statuses: []statusStep{
		{err: boom}, {err: boom}, {err: boom}, {err: boom},
	}}
	p := newTestPoller(client)

	failures := 0
	err := p.Run(context.Background(), "a1", Callbacks{
		OnFailed: func(string, error) { failures++ },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the underlying error, got %v", err)
	}
	if failures != 1 {
		t.Fatalf("expected exactly one failure callback, got %d", failures)
	}
	// maxRetries=3 means the initial attempt plus three retries.
	if client.polls != 4 {
		t.Fatalf("expected 4 fetch attempts, got %d", client.polls)
	}
}

func TestRunAuthErrorIsTerminalImmediately(t *testing.T) {
	client := &scriptedClient{statuses: []statusStep{
		{err: api.ErrUnauthorized},
	}}
	p := newTestPoller(client)

	err := p.Run(context.Background(), "a1", Callbacks{})
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if client.polls != 1 {
		t.Fatalf("auth errors must not be retried, got %d polls", client.polls)
	}
}

func TestRunCancellationStopsWithoutCallbacks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedClient{statuses: []statusStep{
		status(models.AnalysisInProgress),
	}}
	p := NewPoller(client, config.AnalysisConfig{PollIntervalMs: 1, MaxFetchRetries: 3})
	// A clock that never fires, so cancellation is the only way out of the wait.
	p.clock = stuckClock{}

	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, "a1", Callbacks{
			OnCompleted: func(string, *models.ScanResult) { t.Error("OnCompleted after cancel") },
			OnFailed:    func(string, error) { t.Error("OnFailed after cancel") },
		})
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if client.polls != 1 {
		t.Fatalf("no poll may be issued after cancellation, got %d", client.polls)
	}
}

type stuckClock struct{}

func (stuckClock) After(d time.Duration) <-chan time.Time { return make(chan time.Time) }
