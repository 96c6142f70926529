// Copyright © 2024 The ECPP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arith

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"sync"
)

// RandSource is a threaded source of randomness with deterministic
// seeding for tests, used sequentially; the library is single-threaded
// and synchronous throughout.
type RandSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewRandSource creates a deterministic RandSource from a fixed seed. Tests
// inject one of these so re-running a proof is reproducible
// line for line.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: mrand.New(mrand.NewSource(seed))}
}

var (
	defaultOnce sync.Once
	defaultSrc  *RandSource
)

// DefaultSource returns the process-global RandSource, lazily seeded from
// crypto/rand on first use. This is the library's one piece of module-level
// mutable state.
func DefaultSource() *RandSource {
	defaultOnce.Do(func() {
		seedBytes := make([]byte, 8)
		if _, err := rand.Read(seedBytes); err != nil {
			defaultSrc = NewRandSource(1)
			return
		}
		seed := new(big.Int).SetBytes(seedBytes).Int64()
		defaultSrc = NewRandSource(seed)
	})
	return defaultSrc
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
func (s *RandSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Int63()
}

// Uint32 returns a pseudo-random 32-bit value, used for the curve
// builder's small-x point search.
func (s *RandSource) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint32()
}

// BigInt returns a pseudo-random value in [0, n).
func (s *RandSource) BigInt(n *big.Int) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.Sign() <= 0 {
		return big.NewInt(0)
	}
	bits := n.BitLen()
	for {
		buf := make([]byte, (bits+7)/8)
		for i := range buf {
			buf[i] = byte(s.rng.Intn(256))
		}
		v := new(big.Int).SetBytes(buf)
		v.Mod(v, n)
		return v
	}
}

// RandomPositiveInt returns a pseudo-random value in [1, n).
func (s *RandSource) RandomPositiveInt(n *big.Int) *big.Int {
	nMinus1 := new(big.Int).Sub(n, big1)
	v := s.BigInt(nMinus1)
	return v.Add(v, big1)
}
