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

// Package primality implements the BPSW probable-primality gate (strong
// Miller-Rabin base 2 + strong Lucas-Selfridge) used both to terminate the
// ECPP recursion early and to validate candidate q factors.
package primality

import (
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// Result is the three-valued outcome of IsProbablePrime.
type Result int

const (
	// Composite means n is definitely not prime.
	Composite Result = iota
	// Likely means n passed BPSW but was not small enough to be proven
	// deterministically.
	Likely
	// Proven means n is small enough (<= 64 bits) that BPSW is a
	// deterministic primality test.
	Proven
)

func (r Result) String() string {
	switch r {
	case Composite:
		return "composite"
	case Likely:
		return "likely"
	case Proven:
		return "proven"
	default:
		return "unknown"
	}
}

// provenBitBound is the bit length at or below which no known BPSW
// pseudoprime exists, so a passing n is proven rather than likely.
const provenBitBound = 64

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// smallPrimes is the fixed trial-division stage (primes <= 1009), implemented as a single gcd against their product
// rather than 169 individual divisions (one per prime up to 1009).
var smallPrimes = sieveSmallPrimes(1009)

var smallPrimorial = func() *big.Int {
	p := big.NewInt(1)
	for _, sp := range smallPrimes {
		p.Mul(p, big.NewInt(int64(sp)))
	}
	return p
}()

func sieveSmallPrimes(limit int) []int {
	sieve := make([]bool, limit+1)
	var primes []int
	for i := 2; i <= limit; i++ {
		if sieve[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= limit; j += i {
			sieve[j] = true
		}
	}
	return primes
}

// IsProbablePrime runs the full BPSW gate: trial division against a fixed
// small-prime product, strong Miller-Rabin base 2, strong Lucas-Selfridge,
// and a deterministic shortcut for n with at most 64 bits.
func IsProbablePrime(n *big.Int) Result {
	if n.Sign() <= 0 {
		return Composite
	}
	if n.Cmp(big2) < 0 {
		return Composite
	}
	if n.Cmp(big2) == 0 {
		return Proven
	}
	if n.Bit(0) == 0 {
		return Composite
	}
	if n.Cmp(big.NewInt(int64(smallPrimes[len(smallPrimes)-1]))) <= 0 {
		for _, p := range smallPrimes {
			if n.Cmp(big.NewInt(int64(p))) == 0 {
				return Proven
			}
		}
	}

	// Stage 1: trial division via a single gcd with the small-prime
	// primorial.
	if n.Cmp(smallPrimorial) > 0 {
		g := new(big.Int).GCD(nil, nil, n, smallPrimorial)
		if g.Cmp(big1) != 0 {
			return Composite
		}
	} else {
		for _, p := range smallPrimes {
			pb := big.NewInt(int64(p))
			if pb.Cmp(n) >= 0 {
				break
			}
			if new(big.Int).Mod(n, pb).Sign() == 0 {
				return Composite
			}
		}
	}

	if _, _, isPower := arith.IsPerfectPower(n); isPower {
		return Composite
	}

	// Stage 2: strong Miller-Rabin, base 2.
	if !strongMillerRabin(n, big2) {
		return Composite
	}

	// Stage 3: strong Lucas-Selfridge.
	if !StrongLucasSelfridge(n) {
		return Composite
	}

	// Stage 4: deterministic shortcut below 2^64 (no known BPSW
	// pseudoprime exists there).
	if n.BitLen() <= provenBitBound {
		return Proven
	}
	return Likely
}

// MillerRabinRandom runs rounds strong Miller-Rabin tests with uniformly
// random bases in [2, n-2]. Callers use it as extra assurance beyond BPSW
// before committing to an expensive proof attempt, where a composite
// slipping through costs hours rather than a wrong answer.
func MillerRabinRandom(n *big.Int, rounds int, src *arith.RandSource) bool {
	if src == nil {
		src = arith.DefaultSource()
	}
	if n.Cmp(big2) < 0 {
		return false
	}
	if n.Cmp(big.NewInt(3)) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}
	span := new(big.Int).Sub(n, big.NewInt(3))
	for i := 0; i < rounds; i++ {
		a := new(big.Int).Add(src.BigInt(span), big2)
		if !strongMillerRabin(n, a) {
			return false
		}
	}
	return true
}

// strongMillerRabin implements the strong Miller-Rabin test for one base.
func strongMillerRabin(n, base *big.Int) bool {
	nMinus1 := new(big.Int).Sub(n, big1)
	d := new(big.Int).Set(nMinus1)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	x := new(big.Int).Exp(base, d, n)
	if x.Cmp(big1) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for i := 0; i < s-1; i++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
		if x.Cmp(big1) == 0 {
			return false
		}
	}
	return false
}
