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

package power

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/okiyitooo/hyp-tests/checks"
)

// ErrTargetUnreachable is returned by Solve when no admissible value of the
// adjusted parameter yields the requested power.
var ErrTargetUnreachable = errors.New("target power unreachable")

// Adjustable is an enum type. Its values are the parameters Solve can move to
// reach a target power.
type Adjustable int

// Parameters that Solve can adjust.
const (
	AdjustSampleSize Adjustable = iota
	AdjustEffectSize            // Moves ActualParam away from H0Value.
	AdjustAlpha
	AdjustStdDev // Mean tests only.
)

const (
	maxSampleSize int64 = 1e9
	minAlpha            = 0.001
	maxAlpha            = 0.999
	maxOneSidedAlpha    = 0.5
	// Distance kept from 0 and 1 when searching over proportions.
	proportionMargin = 1e-9
	// solveAccuracy is the relative width of the bracket at which bisection stops.
	solveAccuracy = 1e-9
	// maxDoublings bounds the bracket expansion of unbounded parameters.
	maxDoublings  = 64
	maxBisections = 200
)

func (a Adjustable) String() string {
	switch a {
	case AdjustSampleSize:
		return "sampleSize"
	case AdjustEffectSize:
		return "effectSize"
	case AdjustAlpha:
		return "alpha"
	case AdjustStdDev:
		return "stdDev"
	}
	return fmt.Sprintf("Adjustable(%d)", int(a))
}

// ParseAdjustable converts a name such as "sampleSize" or "alpha" into an Adjustable.
func ParseAdjustable(s string) (Adjustable, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "samplesize", "sample_size", "n":
		return AdjustSampleSize, nil
	case "effectsize", "effect_size", "effect":
		return AdjustEffectSize, nil
	case "alpha":
		return AdjustAlpha, nil
	case "stddev", "std_dev", "sigma":
		return AdjustStdDev, nil
	}
	return 0, fmt.Errorf("unknown adjustable parameter %q, please use one of 'sampleSize', 'effectSize', 'alpha', 'stdDev'", s)
}

// Solve returns a copy of p in which the parameter selected by adjust has been
// changed so that the test reaches the target power. p itself is not modified.
//
// For AdjustSampleSize the smallest n with power ≥ target is returned. Alpha is
// searched within [0.001, 0.999], or [0.001, 0.5] for one-sided tests. For the
// continuous parameters the returned value matches the target to within the
// bisection accuracy. AdjustEffectSize keeps ActualParam on the side of
// H0Value the alternative points to (for TwoSided tests, the side it is
// currently on, or above H0Value when they are equal).
func Solve(p *Parameters, target float64, adjust Adjustable) (*Parameters, error) {
	if err := checks.CheckTargetPower(target); err != nil {
		return nil, err
	}
	if _, err := compute(p); err != nil {
		return nil, err
	}
	q := *p
	var err error
	switch adjust {
	case AdjustSampleSize:
		err = solveSampleSize(&q, target)
	case AdjustEffectSize:
		err = solveEffectSize(&q, target)
	case AdjustAlpha:
		err = solveAlpha(&q, target)
	case AdjustStdDev:
		err = solveStdDev(&q, target)
	default:
		err = fmt.Errorf("%w: unknown Adjustable %d", checks.ErrInvalidParameter, adjust)
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// powerGap returns a function of the adjusted value x that sets x on q with
// set and returns power - target.
func powerGap(q *Parameters, target float64, set func(*Parameters, float64)) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		set(q, x)
		r, err := compute(q)
		if err != nil {
			return 0, outOfResolution(err)
		}
		return r.Power - target, nil
	}
}

// outOfResolution reports a search that moved a parameter so far that the
// critical values collapse onto H0Value as ErrTargetUnreachable. Any other
// error is returned unchanged.
func outOfResolution(err error) error {
	if errors.Is(err, checks.ErrInvalidStandardError) {
		return fmt.Errorf("%w: search left the range where power can be computed (%v)", ErrTargetUnreachable, err)
	}
	return err
}

func solveSampleSize(q *Parameters, target float64) error {
	reached := func(n int64) (bool, error) {
		q.SampleSize = n
		r, err := compute(q)
		if err != nil {
			return false, outOfResolution(err)
		}
		return r.Power >= target, nil
	}
	ok, err := reached(1)
	if err != nil || ok {
		return err
	}
	// Invariant: power(lo) < target.
	lo, hi := int64(1), int64(2)
	for {
		ok, err := reached(hi)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		if hi == maxSampleSize {
			return fmt.Errorf("%w: power stays below %f up to SampleSize %d", ErrTargetUnreachable, target, maxSampleSize)
		}
		lo, hi = hi, min(2*hi, maxSampleSize)
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		ok, err := reached(mid)
		if err != nil {
			return err
		}
		if ok {
			hi = mid
		} else {
			lo = mid
		}
	}
	q.SampleSize = hi
	return nil
}

func solveEffectSize(q *Parameters, target float64) error {
	h0 := q.H0Value
	f := powerGap(q, target, func(p *Parameters, x float64) { p.ActualParam = x })
	dir := 1.0
	switch q.Alternative {
	case LessThan:
		dir = -1
	case TwoSided:
		if q.ActualParam < h0 {
			dir = -1
		}
	}

	var lo, hi float64
	switch {
	case q.Family == Proportion && q.Alternative == TwoSided:
		lo, hi = h0, 1-proportionMargin
		if dir < 0 {
			hi = proportionMargin
		}
	case q.Family == Proportion:
		lo, hi = proportionMargin, 1-proportionMargin
	case q.Alternative == TwoSided:
		// Power grows from α at ActualParam = H0Value as ActualParam moves away.
		r, _ := compute(q)
		step := r.StandardErrorH0
		lo, hi = h0, h0+dir*step
		if err := expand(f, &hi, func(x float64) float64 { return h0 + 2*(x-h0) }); err != nil {
			return err
		}
	default:
		r, _ := compute(q)
		step := r.StandardErrorH0
		lo, hi = h0-step, h0+step
		if err := expandBoth(f, &lo, &hi, h0); err != nil {
			return err
		}
	}
	x, err := bisect(f, lo, hi)
	if err != nil {
		return err
	}
	q.ActualParam = x
	return nil
}

func solveAlpha(q *Parameters, target float64) error {
	f := powerGap(q, target, func(p *Parameters, x float64) { p.Alpha = x })
	hi := maxAlpha
	if q.Alternative != TwoSided {
		// zAlpha = |Φ⁻¹(α)| folds back for α > 0.5, so power only grows with α
		// up to there.
		hi = maxOneSidedAlpha
	}
	x, err := bisect(f, minAlpha, hi)
	if err != nil {
		return err
	}
	q.Alpha = x
	return nil
}

func solveStdDev(q *Parameters, target float64) error {
	if q.Family != Mean {
		return fmt.Errorf("%w: StdDev can only be adjusted for mean tests", checks.ErrInvalidParameter)
	}
	f := powerGap(q, target, func(p *Parameters, x float64) { p.StdDev = x })
	// Power decreases with σ: look for lo with power above the target and hi
	// with power below it.
	lo, hi := q.StdDev, q.StdDev
	if err := expand(f, &lo, func(x float64) float64 { return x / 2 }); err != nil {
		return err
	}
	if err := expand(func(x float64) (float64, error) {
		gap, err := f(x)
		return -gap, err
	}, &hi, func(x float64) float64 { return x * 2 }); err != nil {
		return err
	}
	x, err := bisect(f, lo, hi)
	if err != nil {
		return err
	}
	q.StdDev = x
	return nil
}

// expand moves *x with next until f(*x) is nonnegative.
func expand(f func(float64) (float64, error), x *float64, next func(float64) float64) error {
	for i := 0; i < maxDoublings; i++ {
		gap, err := f(*x)
		if err != nil {
			return err
		}
		if gap >= 0 {
			return nil
		}
		*x = next(*x)
	}
	return fmt.Errorf("%w: no bracket found after %d expansions", ErrTargetUnreachable, maxDoublings)
}

// expandBoth widens [lo, hi] symmetrically around centre until f changes sign
// over it.
func expandBoth(f func(float64) (float64, error), lo, hi *float64, centre float64) error {
	for i := 0; i < maxDoublings; i++ {
		flo, err := f(*lo)
		if err != nil {
			return err
		}
		fhi, err := f(*hi)
		if err != nil {
			return err
		}
		if math.Signbit(flo) != math.Signbit(fhi) || flo == 0 || fhi == 0 {
			return nil
		}
		*lo = centre - 2*(centre-*lo)
		*hi = centre + 2*(*hi-centre)
	}
	return fmt.Errorf("%w: no bracket found after %d expansions", ErrTargetUnreachable, maxDoublings)
}

// bisect returns x between a and b with f(x) ≈ 0. f(a) and f(b) must have
// opposite signs, otherwise ErrTargetUnreachable is returned.
func bisect(f func(float64) (float64, error), a, b float64) (float64, error) {
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	if fa == 0 {
		return a, nil
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}
	if fb == 0 {
		return b, nil
	}
	if math.Signbit(fa) == math.Signbit(fb) {
		return 0, fmt.Errorf("%w: power - target has the same sign at %g and %g", ErrTargetUnreachable, a, b)
	}
	for i := 0; i < maxBisections; i++ {
		mid := a + (b-a)/2
		if math.Abs(b-a) <= solveAccuracy*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) {
			return mid, nil
		}
		fm, err := f(mid)
		if err != nil {
			return 0, err
		}
		if fm == 0 {
			return mid, nil
		}
		if math.Signbit(fm) == math.Signbit(fa) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return a + (b-a)/2, nil
}
