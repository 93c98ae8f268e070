package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/sanghyxuk/shieldhub-cli/internal/config"
	"github.com/sanghyxuk/shieldhub-cli/internal/events"
	"github.com/sanghyxuk/shieldhub-cli/internal/session"
	"github.com/sanghyxuk/shieldhub-cli/models"
)

func newTestClient(t *testing.T, serverURL string, bus *events.Bus) (*Client, *session.Store) {
	t.Helper()
	sessions, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"), bus)
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	cfg := config.ServerConfig{URL: serverURL, TimeoutSeconds: 5, RatePerSecond: 1000}
	return New(cfg, sessions, bus), sessions
}

func TestBearerTokenAttachedWhenLoggedIn(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"PENDING"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok-abc"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	if _, err := client.GetAnalysisStatus(context.Background(), "a1"); err != nil {
		t.Fatalf("GetAnalysisStatus: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestPrivilegedCallWithoutTokenNeverHitsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL, nil)

	_, err := client.StartAnalysis(context.Background(), "https://example.com")
	if !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Fatalf("expected zero requests, server saw %d", n)
	}
}

func TestUnauthorizedClearsSessionAndPublishesOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	bus := events.NewBus()
	ch := bus.Subscribe(events.Unauthorized)
	client, sessions := newTestClient(t, srv.URL, bus)
	if err := sessions.Set(models.Session{Token: "stale"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	_, err := client.GetAnalysisStatus(context.Background(), "a1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if sessions.Current().LoggedIn() {
		t.Fatal("session should be cleared after a 401")
	}

	select {
	case <-ch:
	default:
		t.Fatal("expected an Unauthorized event")
	}
	select {
	case evt := <-ch:
		t.Fatalf("expected exactly one event, got a second: %+v", evt)
	default:
	}
}

func TestNonOKExtractsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"url is not reachable"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	_, err := client.StartAnalysis(context.Background(), "https://bad.example")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusBadRequest || reqErr.Message != "url is not reachable" {
		t.Fatalf("unexpected RequestError: %+v", reqErr)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-1","type":"Bearer","userId":7,"username":"dana","name":"Dana"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	res, err := client.Login(context.Background(), "dana", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok-1" || res.UserID != 7 {
		t.Fatalf("unexpected login response: %+v", res)
	}
	sess := sessions.Current()
	if sess.Token != "tok-1" || sess.Username != "dana" || sess.Name != "Dana" {
		t.Fatalf("session not persisted: %+v", sess)
	}
}

func TestLoginEmptyTokenIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"dana"}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if _, err := client.Login(context.Background(), "dana", "pw"); err == nil {
		t.Fatal("expected an error for a tokenless login response")
	}
	if sessions.Current().LoggedIn() {
		t.Fatal("no session should be stored")
	}
}

func TestLogoutClearsLocalSessionEvenOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected the server error to be reported")
	}
	if sessions.Current().LoggedIn() {
		t.Fatal("local session should be cleared regardless of server failure")
	}
}

func TestStartAnalysisRejectsMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	_, err := client.StartAnalysis(context.Background(), "https://example.com")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError for missing analysis id, got %v", err)
	}
}

func TestMalformedJSONResponseIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": PENDING`))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	_, err := client.GetAnalysisStatus(context.Background(), "a1")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
}

func TestDeleteAccountClearsSessionOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)
	if err := sessions.Set(models.Session{Token: "tok"}); err != nil {
		t.Fatalf("seeding session: %v", err)
	}

	if err := client.DeleteAccount(context.Background(), "pw"); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if sessions.Current().LoggedIn() {
		t.Fatal("session should be cleared after account deletion")
	}
}
