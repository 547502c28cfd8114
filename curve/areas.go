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
	"fmt"
	"math"

	"github.com/okiyitooo/hyp-tests/power"
)

// rangeStdErrors is how many standard errors on each side of each mean the
// shaded areas may extend to.
const rangeStdErrors = 5

// Shape is an enum type. Its values tell how many regions an Area holds.
type Shape int

// Area shapes.
const (
	Empty Shape = iota
	OneRegion
	TwoRegions
)

func (s Shape) String() string {
	switch s {
	case Empty:
		return "empty"
	case OneRegion:
		return "one"
	case TwoRegions:
		return "two"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Area is a shaded area under a density curve: nothing, a single region, or
// the left and right regions of a two-tailed test. The zero value is Empty.
//
// Either region of a TwoRegions area may itself be empty when its bounds
// collapse; the shape still tells a two-tailed area from a one-tailed one.
type Area struct {
	shape       Shape
	left, right Region
}

// NewOneRegion returns a OneRegion area, or an Empty one if r is empty.
func NewOneRegion(r Region) Area {
	if len(r) == 0 {
		return Area{}
	}
	return Area{shape: OneRegion, left: r}
}

// NewTwoRegions returns a TwoRegions area, or an Empty one if both left and
// right are empty.
func NewTwoRegions(left, right Region) Area {
	if len(left) == 0 && len(right) == 0 {
		return Area{}
	}
	return Area{shape: TwoRegions, left: left, right: right}
}

// Shape returns the variant tag of a.
func (a Area) Shape() Shape { return a.shape }

// Regions returns the regions of a in left-to-right order: none for Empty,
// one for OneRegion and two for TwoRegions.
func (a Area) Regions() []Region {
	switch a.shape {
	case OneRegion:
		return []Region{a.left}
	case TwoRegions:
		return []Region{a.left, a.right}
	}
	return nil
}

// Single returns the region of a OneRegion area. ok is false for other shapes.
func (a Area) Single() (r Region, ok bool) {
	if a.shape != OneRegion {
		return nil, false
	}
	return a.left, true
}

// Pair returns the left and right regions of a TwoRegions area. ok is false
// for other shapes.
func (a Area) Pair() (left, right Region, ok bool) {
	if a.shape != TwoRegions {
		return nil, nil, false
	}
	return a.left, a.right, true
}

// AreaSets holds the three shaded areas of a test.
type AreaSets struct {
	Alpha Area // Under the H₀ density, over the rejection region.
	Beta  Area // Under the Hₐ density, over the acceptance region.
	Power Area // Under the Hₐ density, over the rejection region.
}

// BuildAreaSets returns the α, β and power areas of the test described by r.
//
// The areas are bounded by the union of h0Value ± 5·SE_H0, actualParam ±
// 5·SE_Ha and the x-extents of h0Points and haPoints. areaPoints is passed to
// SampleAreaUnderCurve for every region. Regions whose bounds collapse are
// empty.
func BuildAreaSets(r power.Result, h0Points, haPoints []Point, areaPoints int) AreaSets {
	lo, hi := overallRange(r, h0Points, haPoints)
	h0 := func(xMin, xMax float64) Region {
		return SampleAreaUnderCurve(r.H0Value, r.StandardErrorH0, xMin, xMax, areaPoints)
	}
	ha := func(xMin, xMax float64) Region {
		return SampleAreaUnderCurve(r.ActualParam, r.StandardErrorHa, xMin, xMax, areaPoints)
	}
	cv1, cv2 := r.CriticalValue1, r.CriticalValue2
	switch r.Alternative {
	case power.TwoSided:
		return AreaSets{
			Alpha: NewTwoRegions(h0(lo, cv1), h0(cv2, hi)),
			Beta:  NewOneRegion(ha(cv1, cv2)),
			Power: NewTwoRegions(ha(lo, cv1), ha(cv2, hi)),
		}
	case power.GreaterThan:
		return AreaSets{
			Alpha: NewOneRegion(h0(cv1, hi)),
			Beta:  NewOneRegion(ha(lo, cv1)),
			Power: NewOneRegion(ha(cv1, hi)),
		}
	default:
		return AreaSets{
			Alpha: NewOneRegion(h0(lo, cv1)),
			Beta:  NewOneRegion(ha(cv1, hi)),
			Power: NewOneRegion(ha(lo, cv1)),
		}
	}
}

// overallRange returns the x-range the shaded areas are clipped to.
func overallRange(r power.Result, curves ...[]Point) (lo, hi float64) {
	lo = math.Min(r.H0Value-rangeStdErrors*r.StandardErrorH0, r.ActualParam-rangeStdErrors*r.StandardErrorHa)
	hi = math.Max(r.H0Value+rangeStdErrors*r.StandardErrorH0, r.ActualParam+rangeStdErrors*r.StandardErrorHa)
	for _, points := range curves {
		for _, p := range points {
			lo = math.Min(lo, p.X)
			hi = math.Max(hi, p.X)
		}
	}
	return lo, hi
}
