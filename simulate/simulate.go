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

// Package simulate estimates the Type I error rate and the power of a test by
// repeatedly drawing its test statistic and applying its rejection rule.
//
// Mean statistics are drawn from their Normal sampling distribution.
// Proportion statistics are drawn as Binomial(n, p)/n, so the empirical rates
// also show where the Normal approximation used by package power is loose.
package simulate

import (
	"errors"
	"fmt"

	"github.com/okiyitooo/hyp-tests/power"
	"github.com/okiyitooo/hyp-tests/rand"
)

// MaxTrials bounds the number of trials of a single Simulate call.
const MaxTrials = 10_000_000

// ErrInvalidTrials is returned when the number of trials is not in [1, MaxTrials].
var ErrInvalidTrials = errors.New("number of trials out of range")

// Outcome holds the empirical rejection rates of a simulated test.
type Outcome struct {
	Trials int
	// Alpha is the fraction of statistics drawn under H₀ that were rejected.
	Alpha float64
	// Power is the fraction of statistics drawn under Hₐ that were rejected.
	Power float64
}

// Beta returns the empirical Type II error rate, 1 - Power.
func (o Outcome) Beta() float64 { return 1 - o.Power }

// Simulate draws trials test statistics under H₀ and trials under Hₐ and
// rejects them with the critical values of r, which must be the Result of
// power.Compute(p).
func Simulate(p *power.Parameters, r power.Result, trials int) (Outcome, error) {
	if trials < 1 || trials > MaxTrials {
		return Outcome{}, fmt.Errorf("%w: got %d, want a value in [1, %d]", ErrInvalidTrials, trials, MaxTrials)
	}
	if p == nil {
		return Outcome{}, errors.New("simulate: Parameters must not be nil")
	}
	drawH0, drawHa, err := samplers(p, r)
	if err != nil {
		return Outcome{}, err
	}
	var rejectedH0, rejectedHa int
	for i := 0; i < trials; i++ {
		if r.Rejects(drawH0()) {
			rejectedH0++
		}
		if r.Rejects(drawHa()) {
			rejectedHa++
		}
	}
	return Outcome{
		Trials: trials,
		Alpha:  float64(rejectedH0) / float64(trials),
		Power:  float64(rejectedHa) / float64(trials),
	}, nil
}

// samplers returns functions drawing the test statistic under H₀ and Hₐ.
func samplers(p *power.Parameters, r power.Result) (h0, ha func() float64, err error) {
	switch p.Family {
	case power.Mean:
		h0 = func() float64 { return rand.NormalWith(p.H0Value, r.StandardErrorH0) }
		ha = func() float64 { return rand.NormalWith(p.ActualParam, r.StandardErrorHa) }
	case power.Proportion:
		n := float64(p.SampleSize)
		h0 = func() float64 { return float64(rand.Binomial(p.SampleSize, p.H0Value)) / n }
		ha = func() float64 { return float64(rand.Binomial(p.SampleSize, p.ActualParam)) / n }
	default:
		return nil, nil, fmt.Errorf("simulate: unknown Family %d", p.Family)
	}
	return h0, ha, nil
}
