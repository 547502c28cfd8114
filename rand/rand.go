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

// Package rand provides methods for drawing the random test statistics used to
// simulate hypothesis tests.
//
// All functions are safe for concurrent use. Randomness comes from a buffered
// crypto/rand reader, exposed to math/rand as a Source.
package rand

import (
	"bufio"
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math"
	mathrand "math/rand"
	"sync"

	log "github.com/golang/glog"
)

// Binomial draws with more trials than this use the Normal approximation.
const exactBinomialLimit = 200

var (
	bufLock sync.Mutex
	buf     io.Reader = bufio.NewReaderSize(cryptorand.Reader, 65536)
)

// U64 returns a uniformly random uint64.
func U64() uint64 {
	var b [8]byte
	bufLock.Lock()
	_, err := io.ReadFull(buf, b[:])
	bufLock.Unlock()
	if err != nil {
		log.Fatalf("out of randomness, should never happen: %v", err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// source is a math/rand.Source64 drawing from the crypto buffer. It has no
// state, so Seed is a no-op.
type source struct{}

func (source) Int63() int64   { return int64(U64() & math.MaxInt64) }
func (source) Uint64() uint64 { return U64() }
func (source) Seed(int64)     {}

// newRand returns a generator over source. A *mathrand.Rand is not safe for
// concurrent use, so every call site takes its own.
func newRand() *mathrand.Rand {
	return mathrand.New(source{})
}

// Bernoulli returns true with probability p. p is clamped to [0, 1].
func Bernoulli(p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	}
	return newRand().Float64() < p
}

// Binomial returns the number of successes in n independent trials of
// probability p. Up to 200 trials are drawn one by one; above that the count
// is drawn from the Normal approximation N(np, np(1-p)), rounded and clamped
// to [0, n]. Binomial returns 0 for n ≤ 0.
func Binomial(n int64, p float64) int64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	r := newRand()
	if n <= exactBinomialLimit {
		var k int64
		for i := int64(0); i < n; i++ {
			if r.Float64() < p {
				k++
			}
		}
		return k
	}
	mean := float64(n) * p
	x := math.Round(mean + math.Sqrt(mean*(1-p))*r.NormFloat64())
	return int64(math.Max(0, math.Min(float64(n), x)))
}

// Normal returns a normally distributed float with mean 0 and standard deviation 1.
func Normal() float64 {
	return newRand().NormFloat64()
}

// NormalWith returns a normally distributed float with the given mean and
// standard deviation. A zero standard deviation returns mean.
func NormalWith(mean, stdDev float64) float64 {
	if stdDev == 0 {
		return mean
	}
	return mean + stdDev*Normal()
}
