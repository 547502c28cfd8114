//
// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okiyitooo/hyp-tests/power"
	"github.com/okiyitooo/hyp-tests/stattestutils"
)

func computeOrFatal(t *testing.T, p *power.Parameters) power.Result {
	t.Helper()
	r, err := power.Compute(p)
	if err != nil {
		t.Fatalf("power.Compute(%+v) returned error %v", p, err)
	}
	return r
}

func areaSets(r power.Result) AreaSets {
	h0 := SampleDensity(r.H0Value, r.StandardErrorH0, nil)
	ha := SampleDensity(r.ActualParam, r.StandardErrorHa, nil)
	return BuildAreaSets(r, h0, ha, 0)
}

func totalArea(a Area) float64 {
	var sum float64
	for _, r := range a.Regions() {
		sum += area(r)
	}
	return sum
}

func TestAreaVariants(t *testing.T) {
	r := Region{{X: 0, Y: 1}, {X: 1, Y: 1}}
	for _, tc := range []struct {
		desc        string
		a           Area
		wantShape   Shape
		wantRegions int
	}{
		{"zero value", Area{}, Empty, 0},
		{"one empty region", NewOneRegion(nil), Empty, 0},
		{"one region", NewOneRegion(r), OneRegion, 1},
		{"two empty regions", NewTwoRegions(nil, Region{}), Empty, 0},
		{"two regions, left empty", NewTwoRegions(nil, r), TwoRegions, 2},
		{"two regions", NewTwoRegions(r, r), TwoRegions, 2},
	} {
		if got := tc.a.Shape(); got != tc.wantShape {
			t.Errorf("Shape: when %s got %v, want %v", tc.desc, got, tc.wantShape)
		}
		if got := len(tc.a.Regions()); got != tc.wantRegions {
			t.Errorf("Regions: when %s got %d regions, want %d", tc.desc, got, tc.wantRegions)
		}
		_, single := tc.a.Single()
		_, _, pair := tc.a.Pair()
		if single != (tc.wantShape == OneRegion) || pair != (tc.wantShape == TwoRegions) {
			t.Errorf("Single/Pair: when %s got ok %t/%t for shape %v", tc.desc, single, pair, tc.wantShape)
		}
	}
	left, right, _ := NewTwoRegions(r, nil).Pair()
	if diff := cmp.Diff(r, left); diff != "" || len(right) != 0 {
		t.Errorf("Pair: got (%v, %v), want (%v, empty)", left, right, r)
	}
}

func TestBuildAreaSetsTwoSided(t *testing.T) {
	r := computeOrFatal(t, power.DefaultParameters(power.Mean))
	sets := areaSets(r)
	for _, tc := range []struct {
		desc      string
		a         Area
		wantShape Shape
		wantArea  float64
	}{
		{"alpha", sets.Alpha, TwoRegions, 0.05},
		{"beta", sets.Beta, OneRegion, r.Beta},
		{"power", sets.Power, TwoRegions, r.Power},
	} {
		if got := tc.a.Shape(); got != tc.wantShape {
			t.Errorf("BuildAreaSets: %s area has shape %v, want %v", tc.desc, got, tc.wantShape)
		}
		if got := totalArea(tc.a); !stattestutils.NearEqual(got, tc.wantArea, 5e-3) {
			t.Errorf("BuildAreaSets: %s area is %f, want %f", tc.desc, got, tc.wantArea)
		}
	}
	left, right, _ := sets.Alpha.Pair()
	if got := left[len(left)-1].X; got != r.CriticalValue1 {
		t.Errorf("BuildAreaSets: left alpha region ends at %f, want CriticalValue1 %f", got, r.CriticalValue1)
	}
	if got := right[0].X; got != r.CriticalValue2 {
		t.Errorf("BuildAreaSets: right alpha region starts at %f, want CriticalValue2 %f", got, r.CriticalValue2)
	}
}

// Means placed symmetrically around a shared midpoint give two non-empty
// tails for both the α and the power areas.
func TestBuildAreaSetsSymmetric(t *testing.T) {
	for _, p := range []*power.Parameters{
		{Family: power.Mean, H0Value: 100, Alternative: power.TwoSided, ActualParam: 105, SampleSize: 30, StdDev: 15, Alpha: 0.05},
		{Family: power.Mean, H0Value: -1, Alternative: power.TwoSided, ActualParam: 1, SampleSize: 10, StdDev: 2, Alpha: 0.1},
		{Family: power.Proportion, H0Value: 0.45, Alternative: power.TwoSided, ActualParam: 0.55, SampleSize: 200, Alpha: 0.01},
	} {
		sets := areaSets(computeOrFatal(t, p))
		for name, a := range map[string]Area{"alpha": sets.Alpha, "power": sets.Power} {
			regions := a.Regions()
			if len(regions) != 2 {
				t.Errorf("BuildAreaSets(%+v): %s area has %d regions, want 2", p, name, len(regions))
				continue
			}
			for i, reg := range regions {
				if len(reg) == 0 {
					t.Errorf("BuildAreaSets(%+v): %s region %d is empty", p, name, i)
				}
			}
		}
		if got := sets.Beta.Shape(); got != OneRegion {
			t.Errorf("BuildAreaSets(%+v): beta area has shape %v, want %v", p, got, OneRegion)
		}
	}
}

func TestBuildAreaSetsOneSided(t *testing.T) {
	for _, alt := range []power.Alternative{power.GreaterThan, power.LessThan} {
		p := &power.Parameters{Family: power.Mean, H0Value: 100, Alternative: alt, ActualParam: 105, SampleSize: 30, StdDev: 15, Alpha: 0.05}
		if alt == power.LessThan {
			p.ActualParam = 95
		}
		r := computeOrFatal(t, p)
		sets := areaSets(r)
		for _, tc := range []struct {
			desc     string
			a        Area
			wantArea float64
		}{
			{"alpha", sets.Alpha, 0.05},
			{"beta", sets.Beta, r.Beta},
			{"power", sets.Power, r.Power},
		} {
			reg, ok := tc.a.Single()
			if !ok {
				t.Errorf("BuildAreaSets(%v): %s area has shape %v, want %v", alt, tc.desc, tc.a.Shape(), OneRegion)
				continue
			}
			if got := area(reg); !stattestutils.NearEqual(got, tc.wantArea, 5e-3) {
				t.Errorf("BuildAreaSets(%v): %s area is %f, want %f", alt, tc.desc, got, tc.wantArea)
			}
		}
		beta, _ := sets.Beta.Single()
		pw, _ := sets.Power.Single()
		// β and power meet at the critical value, on the side given by alt.
		betaEdge, powerEdge := beta[len(beta)-1].X, pw[0].X
		if alt == power.LessThan {
			betaEdge, powerEdge = beta[0].X, pw[len(pw)-1].X
		}
		if betaEdge != r.CriticalValue1 || powerEdge != r.CriticalValue1 {
			t.Errorf("BuildAreaSets(%v): beta and power meet at %f and %f, want %f", alt, betaEdge, powerEdge, r.CriticalValue1)
		}
	}
}

func TestBuildAreaSetsCollapsedRegions(t *testing.T) {
	for _, tc := range []struct {
		desc                           string
		r                              power.Result
		wantAlpha, wantBeta, wantPower Shape
		wantAlphaRegions               int
	}{
		{
			desc:      "critical value beyond the range",
			r:         power.Result{Alternative: power.GreaterThan, StandardErrorH0: 1, StandardErrorHa: 1, CriticalValue1: 6},
			wantAlpha: Empty, wantBeta: OneRegion, wantPower: Empty,
		},
		{
			desc:      "lower critical value below the range",
			r:         power.Result{Alternative: power.LessThan, StandardErrorH0: 1, StandardErrorHa: 1, CriticalValue1: -6},
			wantAlpha: Empty, wantBeta: OneRegion, wantPower: Empty,
		},
		{
			desc:      "one tail beyond the range",
			r:         power.Result{Alternative: power.TwoSided, StandardErrorH0: 1, StandardErrorHa: 1, CriticalValue1: -6, CriticalValue2: 1, HasCriticalValue2: true},
			wantAlpha: TwoRegions, wantBeta: OneRegion, wantPower: TwoRegions, wantAlphaRegions: 1,
		},
		{
			desc:      "both tails beyond the range",
			r:         power.Result{Alternative: power.TwoSided, StandardErrorH0: 1, StandardErrorHa: 1, CriticalValue1: -6, CriticalValue2: 6, HasCriticalValue2: true},
			wantAlpha: Empty, wantBeta: OneRegion, wantPower: Empty,
		},
		{
			desc:      "no spread under Hₐ",
			r:         power.Result{Alternative: power.TwoSided, StandardErrorH0: 1, CriticalValue1: -2, CriticalValue2: 2, HasCriticalValue2: true},
			wantAlpha: TwoRegions, wantBeta: Empty, wantPower: Empty, wantAlphaRegions: 2,
		},
	} {
		sets := BuildAreaSets(tc.r, nil, nil, 10)
		if sets.Alpha.Shape() != tc.wantAlpha || sets.Beta.Shape() != tc.wantBeta || sets.Power.Shape() != tc.wantPower {
			t.Errorf("BuildAreaSets: when %s got shapes %v/%v/%v, want %v/%v/%v", tc.desc,
				sets.Alpha.Shape(), sets.Beta.Shape(), sets.Power.Shape(), tc.wantAlpha, tc.wantBeta, tc.wantPower)
		}
		var nonEmpty int
		for _, reg := range sets.Alpha.Regions() {
			if len(reg) > 0 {
				nonEmpty++
			}
		}
		if nonEmpty != tc.wantAlphaRegions {
			t.Errorf("BuildAreaSets: when %s got %d non-empty alpha regions, want %d", tc.desc, nonEmpty, tc.wantAlphaRegions)
		}
	}
}

func TestBuildAreaSetsUsesPointExtents(t *testing.T) {
	r := power.Result{Alternative: power.GreaterThan, StandardErrorH0: 1, StandardErrorHa: 1, CriticalValue1: 6}
	wide := []Point{{X: -20}, {X: 20}}
	sets := BuildAreaSets(r, wide, nil, 10)
	reg, ok := sets.Alpha.Single()
	if !ok {
		t.Fatalf("BuildAreaSets: got alpha shape %v, want %v", sets.Alpha.Shape(), OneRegion)
	}
	if reg[len(reg)-1].X != 20 {
		t.Errorf("BuildAreaSets: alpha region ends at %f, want 20", reg[len(reg)-1].X)
	}
	beta, _ := sets.Beta.Single()
	if beta[0].X != -20 {
		t.Errorf("BuildAreaSets: beta region starts at %f, want -20", beta[0].X)
	}
}
