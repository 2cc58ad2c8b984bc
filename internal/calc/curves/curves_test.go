package curves

import (
	"math"
	"testing"

	risk "AusTreeCalc/internal/calc/risk"
	species "AusTreeCalc/internal/calc/species"
)

func tree() risk.Input {
	return risk.Input{DBHCm: 50, HeightM: 18, CrownDiameterM: 10, DesignWindSpeedMs: 40}
}

func TestWindCurveDecreasing(t *testing.T) {
	sp := species.Default()
	in := tree()
	vf, _ := risk.WindToFailure(in.DesignWindSpeedMs, risk.Calculate(sp, in))
	c := Wind(sp, in, vf)
	if len(c.X) != windSteps || len(c.SF) != windSteps {
		t.Fatalf("expected %d points, got %d/%d", windSteps, len(c.X), len(c.SF))
	}
	if c.X[0] != 20 {
		t.Errorf("first speed should be half the design speed, got %v", c.X[0])
	}
	if last := c.X[len(c.X)-1]; last < vf {
		t.Errorf("curve should reach past wind-to-failure %v, ends at %v", vf, last)
	}
	for i := 1; i < len(c.SF); i++ {
		if c.SF[i] > c.SF[i-1] {
			t.Errorf("SF rose between %v and %v m/s", c.X[i-1], c.X[i])
		}
	}
}

func TestWindCurveEmptyWithoutWind(t *testing.T) {
	in := tree()
	in.DesignWindSpeedMs = 0
	if c := Wind(species.Default(), in, 0); len(c.X) != 0 {
		t.Errorf("expected empty curve, got %d points", len(c.X))
	}
}

func TestResidualWallCrossing(t *testing.T) {
	sp := species.Default()
	in := tree()
	in.DesignWindSpeedMs = 55
	c := ResidualWall(sp, in)
	if len(c.X) != wallSteps {
		t.Fatalf("expected %d points, got %d", wallSteps, len(c.X))
	}
	for i := 1; i < len(c.SF); i++ {
		if c.SF[i] < c.SF[i-1] {
			t.Errorf("SF should grow with residual wall, dropped at %v%%", c.X[i])
		}
	}
	if c.CriticalResidualPercent == nil || c.CriticalWallThicknessCm == nil {
		t.Fatal("expected SF to cross 1 within 20..100% residual wall")
	}
	rw := *c.CriticalResidualPercent
	if rw <= minResidualPercent || rw >= maxResidualPercent {
		t.Errorf("critical residual wall %v out of range", rw)
	}
	if got, want := *c.CriticalWallThicknessCm, 50*rw/100/2; math.Abs(got-want) > 1e-9 {
		t.Errorf("wall thickness %v, want %v", got, want)
	}
}

func TestResidualWallNoCrossingForStrongTree(t *testing.T) {
	in := tree()
	in.DBHCm = 150
	in.DesignWindSpeedMs = 20
	if c := ResidualWall(species.Default(), in); c.CriticalResidualPercent != nil {
		t.Errorf("a massive stem in light wind should not cross SF=1, got %v", *c.CriticalResidualPercent)
	}
}

func TestCrownReductionCurve(t *testing.T) {
	sp := species.Default()
	in := tree()
	c := CrownReduction(sp, in, 30, 30)
	if len(c.X) != reductionSteps {
		t.Fatalf("expected %d points, got %d", reductionSteps, len(c.X))
	}
	if c.X[len(c.X)-1] != 30 {
		t.Errorf("curve should end at the planned reduction, got %v", c.X[len(c.X)-1])
	}
	if base := risk.Calculate(sp, in).SafetyFactor; c.SF[0] != base {
		t.Errorf("first point %v should equal the unpruned SF %v", c.SF[0], base)
	}
	for i := 1; i < len(c.SF); i++ {
		if c.SF[i] <= c.SF[i-1] {
			t.Errorf("SF should rise with reduction at %v%%", c.X[i])
		}
	}
}

func TestCrownReductionRangeClamped(t *testing.T) {
	sp := species.Default()
	cases := map[float64]float64{0: 20, 2: 5, 80: 40}
	for in, want := range cases {
		c := CrownReduction(sp, tree(), in, 0)
		if got := c.X[len(c.X)-1]; got != want {
			t.Errorf("planned %v%%: curve ends at %v, want %v", in, got, want)
		}
	}
}
