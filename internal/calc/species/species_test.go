package species

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogueInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range All() {
		if p.Code == "" || p.Name == "" {
			t.Errorf("preset %+v missing code or name", p)
		}
		if seen[p.Code] {
			t.Errorf("duplicate code %q", p.Code)
		}
		seen[p.Code] = true
		if p.WoodStrengthMPa <= 0 {
			t.Errorf("%s: wood strength must be positive, got %v", p.Code, p.WoodStrengthMPa)
		}
		if p.DefaultFullness <= 0 || p.DefaultFullness > 1 {
			t.Errorf("%s: default fullness out of (0,1]: %v", p.Code, p.DefaultFullness)
		}
		if p.DragCoefficient <= 0 || p.CrownShapeFactor <= 0 {
			t.Errorf("%s: drag and shape factors must be positive", p.Code)
		}
	}
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("euc_typical")
	if !ok {
		t.Fatal("euc_typical should exist")
	}
	if p.WoodStrengthMPa != 35 {
		t.Errorf("expected fb 35, got %v", p.WoodStrengthMPa)
	}
	if _, ok := Lookup("baobab"); ok {
		t.Error("unknown code should not resolve")
	}
	if diff := cmp.Diff(p, Default()); diff != "" {
		t.Errorf("Default() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].WoodStrengthMPa = -1
	if All()[0].WoodStrengthMPa == -1 {
		t.Error("mutating All() result leaked into the catalogue")
	}
}

func TestListHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).List(rec, httptest.NewRequest(http.MethodGet, "/tools/tree/species", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var got []Preset
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(All(), got); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
}
