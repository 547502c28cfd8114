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

// Package curve samples Normal sampling distributions and the shaded regions
// under them (α, β and power areas) for rendering.
//
// The sampled shapes are for display only: the β and power figures computed
// by package power are the analytically exact values.
package curve

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultDensityPoints is the number of intervals a density curve is split into.
	DefaultDensityPoints = 200
	// DefaultRangeMultiplier is how many standard errors a density curve extends
	// on each side of its mean.
	DefaultRangeMultiplier = 4.0
	// DefaultAreaPoints is the number of intervals a shaded region is split into.
	DefaultAreaPoints = 50

	// Half-width and height of the spike drawn for a distribution without spread.
	spikeHalfWidth = 0.001
	spikeHeight    = 1.0
)

// Point is one sample of a density curve.
type Point struct {
	X, Y float64
}

// Region is a run of density samples, ordered by non-decreasing X, spanning
// the bounds of a shaded area. The area it depicts is closed by the baseline
// y = 0 at its first and last X; see Polygon.
type Region []Point

// Polygon returns the region closed at the baseline: (xMin, 0), the curve
// samples, then (xMax, 0). It returns nil for an empty region.
func (r Region) Polygon() []Point {
	if len(r) == 0 {
		return nil
	}
	poly := make([]Point, 0, len(r)+2)
	poly = append(poly, Point{X: r[0].X, Y: 0})
	poly = append(poly, r...)
	return append(poly, Point{X: r[len(r)-1].X, Y: 0})
}

// DensityOptions contains the options of SampleDensity.
type DensityOptions struct {
	NumPoints       int     // Number of intervals. Defaults to DefaultDensityPoints.
	RangeMultiplier float64 // Standard errors on each side of the mean. Defaults to DefaultRangeMultiplier.
}

func validStdError(se float64) bool {
	return se > 0 && !math.IsInf(se, 0) && !math.IsNaN(se)
}

// SampleDensity returns opt.NumPoints+1 evenly spaced samples of the density
// of N(mean, stdError²) over mean ± opt.RangeMultiplier·stdError. A nil opt
// selects the defaults.
//
// When stdError is zero or not finite, SampleDensity returns a three-point
// spike at the mean instead so that there is still something to draw.
func SampleDensity(mean, stdError float64, opt *DensityOptions) []Point {
	if !validStdError(stdError) {
		return []Point{
			{X: mean - spikeHalfWidth, Y: 0},
			{X: mean, Y: spikeHeight},
			{X: mean + spikeHalfWidth, Y: 0},
		}
	}
	if opt == nil {
		opt = &DensityOptions{}
	}
	numPoints := opt.NumPoints
	if numPoints <= 0 {
		numPoints = DefaultDensityPoints
	}
	multiplier := opt.RangeMultiplier
	if multiplier <= 0 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		multiplier = DefaultRangeMultiplier
	}
	return sample(distuv.Normal{Mu: mean, Sigma: stdError}, mean-multiplier*stdError, mean+multiplier*stdError, numPoints)
}

// SampleAreaUnderCurve returns numPoints+1 evenly spaced density samples of
// N(mean, stdError²) over [xMin, xMax], or an empty Region when xMin ≥ xMax or
// stdError is zero or not finite. A nonpositive numPoints selects
// DefaultAreaPoints.
func SampleAreaUnderCurve(mean, stdError, xMin, xMax float64, numPoints int) Region {
	if !(xMin < xMax) || !validStdError(stdError) {
		return nil
	}
	if numPoints <= 0 {
		numPoints = DefaultAreaPoints
	}
	return sample(distuv.Normal{Mu: mean, Sigma: stdError}, xMin, xMax, numPoints)
}

// sample evaluates dist's density at numPoints+1 evenly spaced points of
// [xMin, xMax]. The last point is placed on xMax exactly.
func sample(dist distuv.Normal, xMin, xMax float64, numPoints int) []Point {
	points := make([]Point, numPoints+1)
	width := xMax - xMin
	for i := 0; i < numPoints; i++ {
		x := xMin + width*float64(i)/float64(numPoints)
		points[i] = Point{X: x, Y: dist.Prob(x)}
	}
	points[numPoints] = Point{X: xMax, Y: dist.Prob(xMax)}
	return points
}
