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

package factor

import (
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// maxStage2Gap bounds the even prime gap the stage-2 step table amortizes,
// to amortize gap multiplications between consecutive stage-2 primes.
const maxStage2Gap = 222

// PollardPMinus1 implements two-stage Pollard p-1. Stage 1 accumulates
// t = prod p^floor(log_p B1) over primes p <= B1 one prime at a time,
// checkpointing before each prime so that an over-factored gcd (== n) can
// be isolated by replaying just the offending prime's contribution at
// reduced exponent. Stage 2 extends the search to B2 using a precomputed
// table of even-gap powers to avoid a fresh exponentiation per prime.
func PollardPMinus1(n *big.Int, b1, b2 int64, rs *arith.RandSource) *big.Int {
	if rs == nil {
		rs = arith.DefaultSource()
	}
	a := rs.RandomPositiveInt(n)
	if a.Cmp(big2) < 0 {
		a = big2
	}

	primesB1 := sieveUpTo(int(b1))
	checkpoint := new(big.Int).Set(a)
	for _, p := range primesB1 {
		pb := big.NewInt(p)
		k := 0
		for pw := p; pw <= b1; pw *= p {
			k++
		}
		checkpoint.Set(a)
		a = arith.PowMod(a, new(big.Int).Exp(pb, big.NewInt(int64(k)), nil), n)

		g := gcd(new(big.Int).Sub(a, big1), n)
		if g.Cmp(n) == 0 {
			// Over-factored: replay this prime's exponent one power of p
			// at a time from the checkpoint to isolate a non-trivial gcd.
			return backtrackPMinus1(checkpoint, pb, k, n)
		}
		if validFactor(g, n) {
			return g
		}
	}

	g := gcd(new(big.Int).Sub(a, big1), n)
	if validFactor(g, n) {
		return g
	}

	if b2 <= b1 {
		return nil
	}
	return pMinus1Stage2(a, n, b1, b2)
}

func backtrackPMinus1(base, p *big.Int, k int, n *big.Int) *big.Int {
	a := new(big.Int).Set(base)
	for i := 0; i < k; i++ {
		a = arith.PowMod(a, p, n)
		g := gcd(new(big.Int).Sub(a, big1), n)
		if validFactor(g, n) {
			return g
		}
		if g.Cmp(n) == 0 {
			break
		}
	}
	return nil
}

// pMinus1Stage2 extends a (the post-stage-1 accumulator a^t mod n) through
// primes in (b1, b2] using a table of a^(2j) mod n for even gaps.
func pMinus1Stage2(a, n *big.Int, b1, b2 int64) *big.Int {
	table := make([]*big.Int, maxStage2Gap/2+1)
	asq := arith.MulMod(a, a, n)
	table[1] = asq
	for j := 2; j <= maxStage2Gap/2; j++ {
		table[j] = arith.MulMod(table[j-1], asq, n)
	}

	primes := sieveUpTo(int(b2))
	var prev int64 = b1
	prevPower := new(big.Int).Set(a)
	// Find the accumulator power at the first prime above b1.
	started := false
	r := big1
	count := 0
	for _, p := range primes {
		if p <= b1 {
			continue
		}
		if !started {
			prevPower = arith.PowMod(a, big.NewInt(p), n)
			prev = p
			started = true
			r = arith.MulMod(r, new(big.Int).Sub(prevPower, big1), n)
			continue
		}
		gap := p - prev
		if gap <= 0 || gap > maxStage2Gap {
			prevPower = arith.PowMod(a, big.NewInt(p), n)
		} else {
			prevPower = arith.MulMod(prevPower, table[gap/2], n)
		}
		prev = p
		r = arith.MulMod(r, new(big.Int).Sub(prevPower, big1), n)

		count++
		if count%256 == 0 {
			g := gcd(r, n)
			if validFactor(g, n) {
				return g
			}
			if g.Cmp(n) == 0 {
				return nil
			}
		}
	}
	g := gcd(r, n)
	if validFactor(g, n) {
		return g
	}
	return nil
}
