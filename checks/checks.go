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

// Package checks contains parameter checks for hypothesis test computations.
//
// Every check returns an error wrapping one of the sentinel errors below, so
// callers can tell failures apart with errors.Is.
package checks

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

// Sentinel errors, one per kind of invalid input.
var (
	ErrInvalidSampleSize      = errors.New("sample size must be positive")
	ErrInvalidStdDev          = errors.New("standard deviation must be positive")
	ErrInvalidAlpha           = errors.New("alpha out of range")
	ErrInvalidProportion      = errors.New("proportion out of range")
	ErrInvalidStandardError   = errors.New("standard error invalid")
	ErrInvalidParameter       = errors.New("parameter must be finite")
	ErrInvalidTargetPower     = errors.New("target power out of range")
	ErrInvalidConfidenceLevel = errors.New("confidence level out of range")
)

const (
	sampleSizeName    = "SampleSize"
	stdDevName        = "StdDev"
	alphaName         = "Alpha"
	proportionName    = "Proportion"
	standardErrorName = "StandardError"
	parameterName     = "Parameter"

	// Minimum expected count of successes and failures for the Normal
	// approximation to the binomial to be trusted.
	minExpectedCount = 5
)

func verifyName(defaultName string, nameSlice []string) (string, error) {
	var name string
	switch len(nameSlice) {
	case 0:
		name = defaultName
	case 1:
		name = nameSlice[0]
	default:
		return "", fmt.Errorf("There should be 0 or 1 'name' parameter, got %d", len(nameSlice))
	}
	return name, nil
}

// CheckSampleSize returns an error if n is nonpositive.
func CheckSampleSize(n int64) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s is %d", ErrInvalidSampleSize, sampleSizeName, n)
	}
	return nil
}

// CheckStdDev returns an error if σ is nonpositive, NaN or +∞.
func CheckStdDev(stdDev float64) error {
	if stdDev <= 0 || math.IsNaN(stdDev) || math.IsInf(stdDev, 0) {
		return fmt.Errorf("%w: %s is %f, must be strictly positive and finite", ErrInvalidStdDev, stdDevName, stdDev)
	}
	return nil
}

// CheckAlpha returns an error if the supplied alpha is not strictly between 0 and 1.
func CheckAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 || math.IsNaN(alpha) {
		return fmt.Errorf("%w: %s is %f, must be within (0, 1)", ErrInvalidAlpha, alphaName, alpha)
	}
	return nil
}

// CheckProportion returns an error if p is not strictly between 0 and 1.
func CheckProportion(p float64, name ...string) error {
	pName, err := verifyName(proportionName, name)
	if err != nil {
		return err
	}
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return fmt.Errorf("%w: %s is %f, must be within (0, 1)", ErrInvalidProportion, pName, p)
	}
	return nil
}

// CheckFinite returns an error if x is NaN or ±∞.
func CheckFinite(x float64, name ...string) error {
	xName, err := verifyName(parameterName, name)
	if err != nil {
		return err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: %s is %f", ErrInvalidParameter, xName, x)
	}
	return nil
}

// CheckStandardError returns an error if se is nonpositive, NaN or +∞.
func CheckStandardError(se float64, name ...string) error {
	seName, err := verifyName(standardErrorName, name)
	if err != nil {
		return err
	}
	if se <= 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		return fmt.Errorf("%w: %s is %e, must be strictly positive and finite", ErrInvalidStandardError, seName, se)
	}
	return nil
}

// CheckStandardErrorAllowZero is like CheckStandardError but accepts 0.
func CheckStandardErrorAllowZero(se float64, name ...string) error {
	seName, err := verifyName(standardErrorName, name)
	if err != nil {
		return err
	}
	if se < 0 || math.IsNaN(se) || math.IsInf(se, 0) {
		return fmt.Errorf("%w: %s is %e, must be nonnegative and finite", ErrInvalidStandardError, seName, se)
	}
	return nil
}

// CheckTargetPower returns an error if power is not strictly between 0 and 1.
func CheckTargetPower(power float64) error {
	if power <= 0 || power >= 1 || math.IsNaN(power) {
		return fmt.Errorf("%w: TargetPower is %f, must be within (0, 1)", ErrInvalidTargetPower, power)
	}
	return nil
}

// CheckConfidenceLevel returns an error if percent is not strictly between 0 and 100.
func CheckConfidenceLevel(percent float64) error {
	if percent <= 0 || percent >= 100 || math.IsNaN(percent) {
		return fmt.Errorf("%w: ConfidenceLevel is %f%%, must be within (0, 100)", ErrInvalidConfidenceLevel, percent)
	}
	return nil
}

// NormalApproximationHolds reports whether n·p and n·(1-p) are both at least 5,
// the usual rule of thumb for approximating a binomial proportion with a Normal
// distribution. It logs a warning when the rule is not met; it never fails.
func NormalApproximationHolds(n int64, p float64, name ...string) bool {
	pName, err := verifyName(proportionName, name)
	if err != nil {
		pName = proportionName
	}
	successes, failures := float64(n)*p, float64(n)*(1-p)
	if successes < minExpectedCount || failures < minExpectedCount {
		log.Warningf("Normality assumption for %s might not be met: n·p = %.2f, n·(1-p) = %.2f, both should be at least %d",
			pName, successes, failures, minExpectedCount)
		return false
	}
	return true
}
