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

// Package power computes critical values, Type II error and power of
// one-sample z-tests for a mean or a proportion.
//
// All computations use the Normal approximation: Φ and Φ⁻¹ are gonum's
// distuv.UnitNormal CDF and Quantile. Functions in this package are pure and
// safe for concurrent use.
package power

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"github.com/okiyitooo/hyp-tests/checks"
	"gonum.org/v1/gonum/stat/distuv"
)

// Family is an enum type. Its values are the supported test families.
type Family int

// Test families.
const (
	Mean Family = iota
	Proportion
)

// Alternative is an enum type. Its values are the supported shapes of the
// alternative hypothesis Hₐ.
type Alternative int

// Alternative hypothesis shapes.
const (
	TwoSided    Alternative = iota // Hₐ: θ ≠ θ₀
	GreaterThan                    // Hₐ: θ > θ₀
	LessThan                       // Hₐ: θ < θ₀
)

// Parameters contains the inputs of a single power computation. A fresh
// Parameters value should be passed on every change; Compute never modifies it.
type Parameters struct {
	Family      Family
	H0Value     float64     // Hypothesized parameter μ₀ or p₀.
	Alternative Alternative // Shape of Hₐ. Defaults to TwoSided.
	ActualParam float64     // True parameter μₐ or pₐ, centre of the Hₐ distribution.
	SampleSize  int64       // Required, must be positive.
	StdDev      float64     // Population σ. Required for Mean, ignored for Proportion.
	Alpha       float64     // Significance level, within (0, 1).
}

// Result holds the output of Compute.
//
// CriticalValue2 is only meaningful when HasCriticalValue2 is true, which is
// the case exactly when Alternative is TwoSided.
type Result struct {
	// Copied from the Parameters so that a Result alone describes both
	// sampling distributions.
	Alternative Alternative
	H0Value     float64
	ActualParam float64

	StandardErrorH0   float64
	StandardErrorHa   float64
	ZAlpha            float64 // Magnitude of the critical z-score.
	CriticalValue1    float64
	CriticalValue2    float64
	HasCriticalValue2 bool
	Beta              float64 // Type II error. Always within [0, 1].
	Power             float64 // 1 - Beta.
}

// Compute validates p and returns the standard errors, critical value(s), β
// and power of the test it describes.
//
// Validation fails fast, in this order: sample size, standard deviation (Mean
// only), alpha, proportions (Proportion only), finiteness of h0Value and
// actualParam (Mean only), standard errors, separation of the critical
// value(s) from h0Value. The returned error wraps the
// matching checks.Err* sentinel. On error the Result is the zero value.
func Compute(p *Parameters) (Result, error) {
	r, err := compute(p)
	if err == nil && p.Family == Proportion {
		checks.NormalApproximationHolds(p.SampleSize, p.H0Value, "H0Value")
		checks.NormalApproximationHolds(p.SampleSize, p.ActualParam, "ActualParam")
	}
	return r, err
}

// compute is Compute without the Normal approximation warnings.
func compute(p *Parameters) (Result, error) {
	if p == nil {
		return Result{}, fmt.Errorf("%w: Parameters must not be nil", checks.ErrInvalidParameter)
	}
	if err := checkParameters(p); err != nil {
		return Result{}, err
	}
	seH0, seHa, err := standardErrors(p)
	if err != nil {
		return Result{}, err
	}
	zAlpha, cv1, cv2 := criticalValues(p.Alternative, p.H0Value, seH0, p.Alpha)
	if err := checkSeparated(p.Alternative, p.H0Value, zAlpha, cv1, cv2); err != nil {
		return Result{}, err
	}
	beta := betaForAlternative(p.Alternative, p.ActualParam, seHa, cv1, cv2)
	return Result{
		Alternative:       p.Alternative,
		H0Value:           p.H0Value,
		ActualParam:       p.ActualParam,
		StandardErrorH0:   seH0,
		StandardErrorHa:   seHa,
		ZAlpha:            zAlpha,
		CriticalValue1:    cv1,
		CriticalValue2:    cv2,
		HasCriticalValue2: p.Alternative == TwoSided,
		Beta:              beta,
		Power:             1 - beta,
	}, nil
}

func checkParameters(p *Parameters) error {
	if p.Family != Mean && p.Family != Proportion {
		return fmt.Errorf("%w: unknown Family %d", checks.ErrInvalidParameter, p.Family)
	}
	if p.Alternative != TwoSided && p.Alternative != GreaterThan && p.Alternative != LessThan {
		return fmt.Errorf("%w: unknown Alternative %d", checks.ErrInvalidParameter, p.Alternative)
	}
	if err := checks.CheckSampleSize(p.SampleSize); err != nil {
		return err
	}
	if p.Family == Mean {
		if err := checks.CheckStdDev(p.StdDev); err != nil {
			return err
		}
	}
	if err := checks.CheckAlpha(p.Alpha); err != nil {
		return err
	}
	if p.Family == Proportion {
		if err := checks.CheckProportion(p.H0Value, "H0Value"); err != nil {
			return err
		}
		return checks.CheckProportion(p.ActualParam, "ActualParam")
	}
	if err := checks.CheckFinite(p.H0Value, "H0Value"); err != nil {
		return err
	}
	return checks.CheckFinite(p.ActualParam, "ActualParam")
}

// standardErrors returns the standard deviations of the sampling distribution
// under H₀ and under Hₐ. Only the Hₐ standard error of a proportion test may be
// 0, which happens when n·pₐ(1-pₐ) underflows.
func standardErrors(p *Parameters) (seH0, seHa float64, err error) {
	n := float64(p.SampleSize)
	switch p.Family {
	case Mean:
		seH0 = p.StdDev / math.Sqrt(n)
		seHa = seH0
	case Proportion:
		seH0 = math.Sqrt(p.H0Value * (1 - p.H0Value) / n)
		seHa = math.Sqrt(p.ActualParam * (1 - p.ActualParam) / n)
	}
	if err := checks.CheckStandardError(seH0, "StandardErrorH0"); err != nil {
		return 0, 0, err
	}
	if p.Family == Mean {
		return seH0, seHa, nil
	}
	if err := checks.CheckStandardErrorAllowZero(seHa, "StandardErrorHa"); err != nil {
		return 0, 0, err
	}
	if seHa == 0 {
		log.Warningf("StandardErrorHa underflowed to 0 for ActualParam %e and SampleSize %d, power will be 0 or 1",
			p.ActualParam, p.SampleSize)
	}
	return seH0, seHa, nil
}

// criticalValues returns the magnitude of the critical z-score and the
// critical value(s) on the scale of the statistic. cv2 is 0 unless alt is
// TwoSided.
func criticalValues(alt Alternative, h0, seH0, alpha float64) (zAlpha, cv1, cv2 float64) {
	switch alt {
	case TwoSided:
		zAlpha = math.Abs(distuv.UnitNormal.Quantile(alpha / 2))
		return zAlpha, h0 - zAlpha*seH0, h0 + zAlpha*seH0
	case GreaterThan:
		zAlpha = math.Abs(distuv.UnitNormal.Quantile(alpha))
		return zAlpha, h0 + zAlpha*seH0, 0
	default:
		zAlpha = math.Abs(distuv.UnitNormal.Quantile(alpha))
		return zAlpha, h0 - zAlpha*seH0, 0
	}
}

// checkSeparated returns an error when zα·SE_H0 is below the float resolution
// of h0, so that the critical value(s) collapse onto h0 and the rejection
// region no longer has probability α under H₀. A one-sided test at α = 0.5 has
// zα = 0 and legitimately puts its critical value on h0.
func checkSeparated(alt Alternative, h0, zAlpha, cv1, cv2 float64) error {
	if alt == TwoSided && !(cv1 < cv2) {
		return fmt.Errorf("%w: critical values %g and %g collapse onto H0Value %g, StandardErrorH0 is too small",
			checks.ErrInvalidStandardError, cv1, cv2, h0)
	}
	if alt != TwoSided && zAlpha > 0 && cv1 == h0 {
		return fmt.Errorf("%w: critical value collapses onto H0Value %g, StandardErrorH0 is too small",
			checks.ErrInvalidStandardError, h0)
	}
	return nil
}

// betaForAlternative returns the probability, under Hₐ, of not rejecting H₀,
// clamped to [0, 1].
func betaForAlternative(alt Alternative, actual, seHa, cv1, cv2 float64) float64 {
	if seHa == 0 {
		if rejects(alt, actual, cv1, cv2) {
			return 0
		}
		return 1
	}
	z1 := (cv1 - actual) / seHa
	var beta float64
	switch alt {
	case TwoSided:
		z2 := (cv2 - actual) / seHa
		beta = distuv.UnitNormal.CDF(z2) - distuv.UnitNormal.CDF(z1)
	case GreaterThan:
		beta = distuv.UnitNormal.CDF(z1)
	default:
		beta = 1 - distuv.UnitNormal.CDF(z1)
	}
	return math.Max(0, math.Min(1, beta))
}

// rejects reports whether a statistic equal to x falls in the rejection region.
func rejects(alt Alternative, x, cv1, cv2 float64) bool {
	switch alt {
	case TwoSided:
		return x < cv1 || x > cv2
	case GreaterThan:
		return x > cv1
	default:
		return x < cv1
	}
}

// Rejects reports whether an observed statistic x leads to rejecting H₀ under
// the critical value(s) of r.
func (r Result) Rejects(x float64) bool {
	return rejects(r.Alternative, x, r.CriticalValue1, r.CriticalValue2)
}
