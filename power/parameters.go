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
	"fmt"
	"strings"

	"github.com/okiyitooo/hyp-tests/checks"
)

func (f Family) String() string {
	switch f {
	case Mean:
		return "mean"
	case Proportion:
		return "proportion"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

func (a Alternative) String() string {
	switch a {
	case TwoSided:
		return "two-sided"
	case GreaterThan:
		return "greater"
	case LessThan:
		return "less"
	}
	return fmt.Sprintf("Alternative(%d)", int(a))
}

// Symbol returns the relation Hₐ states between the parameter and its
// hypothesized value: "≠", ">" or "<".
func (a Alternative) Symbol() string {
	switch a {
	case TwoSided:
		return "≠"
	case GreaterThan:
		return ">"
	case LessThan:
		return "<"
	}
	return "?"
}

// ParseFamily converts a name such as "mean" or "one-sample-proportion" into a Family.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "one-sample-mean":
		return Mean, nil
	case "proportion", "one-sample-proportion":
		return Proportion, nil
	}
	return 0, fmt.Errorf("unknown test family %q, please use one of 'mean', 'proportion'", s)
}

// ParseAlternative converts a name or symbol such as "two-sided", "≠" or ">"
// into an Alternative.
func ParseAlternative(s string) (Alternative, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "two-sided", "two-tailed", "≠", "!=", "ne":
		return TwoSided, nil
	case "greater", "right-tailed", ">", "gt":
		return GreaterThan, nil
	case "less", "left-tailed", "<", "lt":
		return LessThan, nil
	}
	return 0, fmt.Errorf("unknown alternative %q, please use one of 'two-sided', 'greater', 'less'", s)
}

// DefaultParameters returns the parameters a new exploration starts from for
// the given family: a two-sided test at α = 0.05 with n = 30.
func DefaultParameters(f Family) *Parameters {
	if f == Proportion {
		return &Parameters{
			Family:      Proportion,
			H0Value:     0.5,
			Alternative: TwoSided,
			ActualParam: 0.6,
			SampleSize:  30,
			Alpha:       0.05,
		}
	}
	return &Parameters{
		Family:      Mean,
		H0Value:     100,
		Alternative: TwoSided,
		ActualParam: 105,
		SampleSize:  30,
		StdDev:      15,
		Alpha:       0.05,
	}
}

// AlphaFromConfidenceLevel returns the significance level 1 - percent/100 for
// a confidence level given in percent.
func AlphaFromConfidenceLevel(percent float64) (float64, error) {
	if err := checks.CheckConfidenceLevel(percent); err != nil {
		return 0, err
	}
	return 1 - percent/100, nil
}
