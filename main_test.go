package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	auth "AusTreeCalc/internal/auth"
	validate "AusTreeCalc/internal/calc/validate"
	config "AusTreeCalc/internal/config"
	repo "AusTreeCalc/internal/repo"
	"github.com/gorilla/mux"
)

type noAccounts struct{}

func (noAccounts) CreateAssessor(context.Context, string, string, string) (int, error) {
	return 0, repo.ErrNotFound
}

func (noAccounts) GetByLogin(context.Context, string) (int, string, error) {
	return 0, "", repo.ErrNotFound
}

func TestRoutesRequireSession(t *testing.T) {
	cfg := config.Config{TokenKey: []byte("test-key"), Limits: validate.DefaultLimits}
	router := mux.NewRouter()
	HandleList(router, cfg, noAccounts{})
	srv := httptest.NewServer(CORS(router))
	defer srv.Close()

	body := `{"species":"euc_typical","dbh_cm":50,"height_m":18,"crown_diameter_m":10,"design_wind_speed_ms":40}`
	resp, err := http.Post(srv.URL+"/api/user/tools/tree/calc", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous calc status %d", resp.StatusCode)
	}

	token, err := (&auth.Authenv{JWTkey: cfg.TokenKey}).IssueToken(1, "jo", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/user/tools/tree/calc", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("authorised calc status %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodPost, srv.URL+"/api/user/tools/tree/biometrics",
		strings.NewReader(`{"dbh_cm":50,"height_m":20,"genus":"oak"}`))
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("authorised biometrics status %d", resp.StatusCode)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := mux.NewRouter()
	rec := httptest.NewRecorder()
	CORS(router).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/user/tools/tree/calc", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}

func TestNoStaticFallback(t *testing.T) {
	router := mux.NewRouter()
	HandleList(router, config.Config{TokenKey: []byte("test-key")}, noAccounts{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /index.html status %d, want 404", rec.Code)
	}
}
