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

// Package stattestutils provides basic numeric utility functions.
//
// This package is not optimized for performance or speed and is only intended
// to be used in tests.
package stattestutils

import "math"

// TrapezoidArea returns the trapezoidal-rule integral of the piecewise linear
// function through (xs[i], ys[i]). xs must be sorted; extra values in the
// longer slice are ignored.
func TrapezoidArea(xs, ys []float64) float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	var area float64
	for i := 1; i < n; i++ {
		area += (xs[i] - xs[i-1]) * (ys[i] + ys[i-1]) / 2
	}
	return area
}

// BinomialTolerance returns z standard deviations of the empirical frequency
// of an event of probability p over n trials, i.e. z·√(p(1-p)/n).
func BinomialTolerance(p float64, n int, z float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}
	return z * math.Sqrt(p*(1-p)/float64(n))
}

// NearEqual reports whether a and b differ by at most tol.
func NearEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
