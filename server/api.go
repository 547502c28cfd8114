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

package server

import (
	"errors"
	"strings"

	"github.com/okiyitooo/hyp-tests/checks"
	"github.com/okiyitooo/hyp-tests/curve"
	"github.com/okiyitooo/hyp-tests/power"
)

// CalculateRequest is the body of POST /api/calculate-power. TestType and
// HaType accept the names understood by power.ParseFamily and
// power.ParseAlternative; an empty HaType means two-sided.
type CalculateRequest struct {
	TestType    string  `json:"testType"`
	H0Value     float64 `json:"h0Value"`
	HaType      string  `json:"haType"`
	ActualParam float64 `json:"actualParam"`
	SampleSize  int64   `json:"sampleSize"`
	StdDev      float64 `json:"stdDev"`
	Alpha       float64 `json:"alpha"`
}

// SolveRequest is the body of POST /api/solve-power.
type SolveRequest struct {
	Params      CalculateRequest `json:"params"`
	TargetPower float64          `json:"targetPower"`
	Adjust      string           `json:"adjust"`
}

// Point is a sample of a density curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Area is a shaded area. Shape is "empty", "one" or "two" and tells how many
// entries Regions holds; a region of a two-region area may be empty.
type Area struct {
	Shape   string    `json:"shape"`
	Regions [][]Point `json:"regions"`
}

// CalculateResponse is the body of a successful POST /api/calculate-power.
// CriticalValue2 is null for one-sided tests.
type CalculateResponse struct {
	TestType        string   `json:"testType"`
	HaType          string   `json:"haType"`
	StandardErrorH0 float64  `json:"standardErrorH0"`
	StandardErrorHa float64  `json:"standardErrorHa"`
	ZAlpha          float64  `json:"zAlpha"`
	CriticalValue1  float64  `json:"criticalValue1"`
	CriticalValue2  *float64 `json:"criticalValue2"`
	Beta            float64  `json:"beta"`
	Power           float64  `json:"power"`
	H0DistPoints    []Point  `json:"h0DistPoints"`
	HaDistPoints    []Point  `json:"haDistPoints"`
	Type1Area       Area     `json:"type1AreaCoords"`
	Type2Area       Area     `json:"type2AreaCoords"`
	PowerArea       Area     `json:"powerAreaCoords"`
}

// SolveResponse is the body of a successful POST /api/solve-power: the
// adjusted parameters, in canonical names, and their results.
type SolveResponse struct {
	Params CalculateRequest  `json:"params"`
	Result CalculateResponse `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error kinds reported in ErrorResponse.Kind.
const (
	kindBadRequest = "BadRequest"
	kindUnknown    = "Unknown"
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{checks.ErrInvalidSampleSize, "InvalidSampleSize"},
	{checks.ErrInvalidStdDev, "InvalidStdDev"},
	{checks.ErrInvalidAlpha, "InvalidAlpha"},
	{checks.ErrInvalidProportion, "InvalidProportion"},
	{checks.ErrInvalidStandardError, "InvalidStandardError"},
	{checks.ErrInvalidParameter, "InvalidParameter"},
	{checks.ErrInvalidTargetPower, "InvalidTargetPower"},
	{power.ErrTargetUnreachable, "TargetUnreachable"},
	{errParse, "InvalidParameter"},
}

// errParse marks unknown test, alternative or adjustable names.
var errParse = errors.New("invalid name")

// errorKind returns the kind of a validation error.
func errorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return kindUnknown
}

type parseError struct{ err error }

func (e parseError) Error() string { return e.err.Error() }
func (e parseError) Unwrap() []error { return []error{e.err, errParse} }

func (req CalculateRequest) parameters() (*power.Parameters, error) {
	f, err := power.ParseFamily(req.TestType)
	if err != nil {
		return nil, parseError{err}
	}
	alt := power.TwoSided
	if strings.TrimSpace(req.HaType) != "" {
		if alt, err = power.ParseAlternative(req.HaType); err != nil {
			return nil, parseError{err}
		}
	}
	return &power.Parameters{
		Family:      f,
		H0Value:     req.H0Value,
		Alternative: alt,
		ActualParam: req.ActualParam,
		SampleSize:  req.SampleSize,
		StdDev:      req.StdDev,
		Alpha:       req.Alpha,
	}, nil
}

func requestOf(p *power.Parameters) CalculateRequest {
	return CalculateRequest{
		TestType:    p.Family.String(),
		H0Value:     p.H0Value,
		HaType:      p.Alternative.String(),
		ActualParam: p.ActualParam,
		SampleSize:  p.SampleSize,
		StdDev:      p.StdDev,
		Alpha:       p.Alpha,
	}
}

func toPoints(points []curve.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

func toArea(a curve.Area) Area {
	regions := make([][]Point, 0, 2)
	for _, r := range a.Regions() {
		regions = append(regions, toPoints(r))
	}
	return Area{Shape: a.Shape().String(), Regions: regions}
}

func responseOf(p *power.Parameters, r power.Result, v curve.Visualization) CalculateResponse {
	resp := CalculateResponse{
		TestType:        p.Family.String(),
		HaType:          p.Alternative.String(),
		StandardErrorH0: r.StandardErrorH0,
		StandardErrorHa: r.StandardErrorHa,
		ZAlpha:          r.ZAlpha,
		CriticalValue1:  r.CriticalValue1,
		Beta:            r.Beta,
		Power:           r.Power,
		H0DistPoints:    toPoints(v.H0Points),
		HaDistPoints:    toPoints(v.HaPoints),
		Type1Area:       toArea(v.Alpha),
		Type2Area:       toArea(v.Beta),
		PowerArea:       toArea(v.Power),
	}
	if r.HasCriticalValue2 {
		cv2 := r.CriticalValue2
		resp.CriticalValue2 = &cv2
	}
	return resp
}
