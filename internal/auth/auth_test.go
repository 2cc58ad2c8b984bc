package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	repo "AusTreeCalc/internal/repo"
	"golang.org/x/time/rate"
)

type account struct {
	id   int
	hash string
}

type memRepo struct {
	byLogin map[string]account
}

func newMemRepo() *memRepo {
	return &memRepo{byLogin: map[string]account{}}
}

func (m *memRepo) CreateAssessor(_ context.Context, login, _, hash string) (int, error) {
	if _, ok := m.byLogin[login]; ok {
		return 0, errors.New("duplicate login")
	}
	id := len(m.byLogin) + 1
	m.byLogin[login] = account{id, hash}
	return id, nil
}

func (m *memRepo) GetByLogin(_ context.Context, login string) (int, string, error) {
	a, ok := m.byLogin[login]
	if !ok {
		return 0, "", repo.ErrNotFound
	}
	return a.id, a.hash, nil
}

func TestTokenRoundTrip(t *testing.T) {
	env := &Authenv{JWTkey: []byte("k")}
	tok, err := env.IssueToken(7, "arborist", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	id, login, err := env.ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if id != 7 || login != "arborist" {
		t.Errorf("got %d %q", id, login)
	}

	other := &Authenv{JWTkey: []byte("other")}
	if _, _, err := other.ParseToken(tok); err == nil {
		t.Error("token signed with another key should be rejected")
	}
	expired, _ := env.IssueToken(7, "arborist", time.Now().Add(-2*sessionTTL))
	if _, _, err := env.ParseToken(expired); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestRegisterLoginAndMiddleware(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret"), Repo: newMemRepo()}

	rec := httptest.NewRecorder()
	env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":"jo","email":"jo@example.com","password":"correct-horse"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	env.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"jo","password":"wrong-password"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"jo","password":"correct-horse"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	var seen int
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AssessorID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/user/tools/tree/species", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen != 1 {
		t.Errorf("authorised request: status %d, assessor %d", rec.Code, seen)
	}

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/tools/tree/species", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing cookie status %d", rec.Code)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret"), Repo: newMemRepo()}
	rec := httptest.NewRecorder()
	env.RegisterHandler(rec, httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":"jo","email":"jo@example.com","password":"short"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d", rec.Code)
	}
}

func TestLoginUnknownAssessor(t *testing.T) {
	env := &Authenv{JWTkey: []byte("secret"), Repo: newMemRepo()}
	rec := httptest.NewRecorder()
	env.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"login":"ghost","password":"whatever1"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status %d", rec.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected codes %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client should have its own bucket, got %d", rec.Code)
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		l.getLimiter(ip)
	}
	if len(l.ips) != 3 {
		t.Fatalf("tracked %d clients, want 3", len(l.ips))
	}

	clock = clock.Add(IdleTimeout / 2)
	l.getLimiter("10.0.0.1")

	clock = clock.Add(IdleTimeout/2 + time.Second)
	if !l.getLimiter("10.0.0.4").Allow() {
		t.Error("new client should get a fresh bucket")
	}
	if _, ok := l.ips["10.0.0.2"]; ok {
		t.Error("idle client 10.0.0.2 was not evicted")
	}
	if _, ok := l.ips["10.0.0.1"]; !ok {
		t.Error("recently seen client 10.0.0.1 was evicted")
	}
	if len(l.ips) != 2 {
		t.Errorf("tracked %d clients, want 2", len(l.ips))
	}
}
