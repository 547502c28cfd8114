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
	"math"

	log "github.com/golang/glog"
	"github.com/okiyitooo/hyp-tests/power"
)

const (
	domainPadding = 0.05
	yHeadroom     = 1.1
	emptyYMax     = 0.1
)

// Options contains the options of BuildVisualization. The zero value selects
// the defaults.
type Options struct {
	DensityPoints   int     // Defaults to DefaultDensityPoints.
	RangeMultiplier float64 // Defaults to DefaultRangeMultiplier.
	AreaPoints      int     // Defaults to DefaultAreaPoints.
}

// Visualization holds everything needed to draw a test: both density curves
// and the three shaded areas.
type Visualization struct {
	H0Points []Point
	HaPoints []Point
	AreaSets
}

// BuildVisualization samples the H₀ and Hₐ densities of the test and builds
// its shaded areas. r must be the Result of power.Compute(p); it must not be
// called after Compute failed. Curves and areas are both drawn from the means
// and standard errors held by r, so they always describe the same
// distributions. p may be nil; when its means disagree with r, a warning is
// logged and r wins. A nil opt selects the defaults.
func BuildVisualization(p *power.Parameters, r power.Result, opt *Options) Visualization {
	if opt == nil {
		opt = &Options{}
	}
	if p != nil && (p.H0Value != r.H0Value || p.ActualParam != r.ActualParam || p.Alternative != r.Alternative) {
		log.Warningf("BuildVisualization: Parameters (H0Value %g, ActualParam %g, %v) do not match the Result (H0Value %g, ActualParam %g, %v), drawing the Result",
			p.H0Value, p.ActualParam, p.Alternative, r.H0Value, r.ActualParam, r.Alternative)
	}
	dopt := &DensityOptions{NumPoints: opt.DensityPoints, RangeMultiplier: opt.RangeMultiplier}
	h0Points := SampleDensity(r.H0Value, r.StandardErrorH0, dopt)
	haPoints := SampleDensity(r.ActualParam, r.StandardErrorHa, dopt)
	return Visualization{
		H0Points: h0Points,
		HaPoints: haPoints,
		AreaSets: BuildAreaSets(r, h0Points, haPoints, opt.AreaPoints),
	}
}

// XDomain returns the x-range a chart of v needs: both curves and the critical
// value(s) of r, padded by 5% of the width on each side.
func XDomain(v Visualization, r power.Result) (lo, hi float64) {
	lo, hi = r.CriticalValue1, r.CriticalValue1
	if r.HasCriticalValue2 {
		lo, hi = math.Min(lo, r.CriticalValue2), math.Max(hi, r.CriticalValue2)
	}
	for _, points := range [][]Point{v.H0Points, v.HaPoints} {
		for _, p := range points {
			lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
		}
	}
	pad := domainPadding * (hi - lo)
	if pad == 0 {
		pad = domainPadding
	}
	return lo - pad, hi + pad
}

// YDomain returns the y-range a chart of v needs: from 0 to 10% above the
// highest density sample, or [0, 0.1] when there is nothing to draw.
func YDomain(v Visualization) (lo, hi float64) {
	var top float64
	for _, points := range [][]Point{v.H0Points, v.HaPoints} {
		for _, p := range points {
			top = math.Max(top, p.Y)
		}
	}
	if top <= 0 {
		return 0, emptyYMax
	}
	return 0, yHeadroom * top
}
