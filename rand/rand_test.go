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

package rand

import (
	"bufio"
	"bytes"
	cryptorand "crypto/rand"
	"math"
	"testing"

	"github.com/grd/stat"
)

func TestU64ReadsLittleEndian(t *testing.T) {
	buf = bytes.NewReader([]byte{
		0x01, 0, 0, 0, 0, 0, 0, 0,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0, 0, 0, 0, 0, 0, 0, 0x80,
	})
	defer func() { buf = bufio.NewReaderSize(cryptorand.Reader, 65536) }()
	for i, want := range []uint64{1, math.MaxUint64, 1 << 63} {
		if got := U64(); got != want {
			t.Errorf("U64: got %#x, want %#x in %v-th iteration", got, want, i)
		}
	}
}

func TestSourceInt63IsNonNegative(t *testing.T) {
	buf = bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	defer func() { buf = bufio.NewReaderSize(cryptorand.Reader, 65536) }()
	if got := (source{}).Int63(); got != math.MaxInt64 {
		t.Errorf("Int63: got %d, want %d", got, int64(math.MaxInt64))
	}
}

func TestBernoulliRate(t *testing.T) {
	const draws = 20000
	for _, p := range []float64{0.05, 0.3, 0.5, 0.9} {
		samples := make(stat.Float64Slice, draws)
		for i := range samples {
			if Bernoulli(p) {
				samples[i] = 1
			}
		}
		// 5 standard errors of the sample mean.
		if mean := stat.Mean(samples); math.Abs(mean-p) > 5*math.Sqrt(p*(1-p)/draws) {
			t.Errorf("Bernoulli(%f): got rate %f, want %f", p, mean, p)
		}
	}
}

func TestBernoulliBounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		if Bernoulli(0) || Bernoulli(-1) {
			t.Fatalf("Bernoulli: got true for p ≤ 0")
		}
		if !Bernoulli(1) || !Bernoulli(2) {
			t.Fatalf("Bernoulli: got false for p ≥ 1")
		}
	}
}

func TestBinomialMoments(t *testing.T) {
	const draws = 20000
	for _, tc := range []struct {
		n int64
		p float64
	}{
		{n: 30, p: 0.5},
		{n: 100, p: 0.2},
		{n: 5000, p: 0.6},
	} {
		samples := make(stat.Float64Slice, draws)
		for i := range samples {
			k := Binomial(tc.n, tc.p)
			if k < 0 || k > tc.n {
				t.Fatalf("Binomial(%d, %f): got %d, want a value in [0, %d]", tc.n, tc.p, k, tc.n)
			}
			samples[i] = float64(k)
		}
		wantMean := float64(tc.n) * tc.p
		wantVariance := wantMean * (1 - tc.p)
		// 5 standard errors of the sample mean.
		if mean := stat.Mean(samples); math.Abs(mean-wantMean) > 5*math.Sqrt(wantVariance/draws) {
			t.Errorf("Binomial(%d, %f): got mean %f, want %f", tc.n, tc.p, mean, wantMean)
		}
		if variance := stat.Variance(samples); math.Abs(variance-wantVariance) > 0.05*wantVariance {
			t.Errorf("Binomial(%d, %f): got variance %f, want %f", tc.n, tc.p, variance, wantVariance)
		}
	}
}

func TestBinomialDegenerate(t *testing.T) {
	for _, tc := range []struct {
		n    int64
		p    float64
		want int64
	}{
		{n: 0, p: 0.5, want: 0},
		{n: -3, p: 0.5, want: 0},
		{n: 10, p: 0, want: 0},
		{n: 10, p: 1, want: 10},
		{n: 1000, p: 1, want: 1000},
	} {
		if got := Binomial(tc.n, tc.p); got != tc.want {
			t.Errorf("Binomial(%d, %f) = %d, want %d", tc.n, tc.p, got, tc.want)
		}
	}
}

func TestNormalWithMoments(t *testing.T) {
	const draws = 20000
	samples := make(stat.Float64Slice, draws)
	for i := range samples {
		samples[i] = NormalWith(10, 2)
	}
	if mean := stat.Mean(samples); math.Abs(mean-10) > 5*2/math.Sqrt(draws) {
		t.Errorf("NormalWith(10, 2): got mean %f, want 10", mean)
	}
	if variance := stat.Variance(samples); math.Abs(variance-4) > 0.2 {
		t.Errorf("NormalWith(10, 2): got variance %f, want 4", variance)
	}
	if got := NormalWith(3, 0); got != 3 {
		t.Errorf("NormalWith(3, 0) = %f, want 3", got)
	}
}
