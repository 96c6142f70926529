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

package primality

import (
	"errors"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// ErrFactoredPortionTooSmall means the caller-supplied factorization of
// N-1 does not cover enough of N-1 for BLS75 to apply (the factored part F
// must satisfy F > sqrt(N)).
var ErrFactoredPortionTooSmall = errors.New("primality: factored portion of N-1 does not exceed sqrt(N)")

// BLS75Certificate records the witnesses (one base per distinct prime
// factor of the factored portion F of N-1) that prove N prime under the
// Brillhart-Lehmer-Selfridge N-1 test.
type BLS75Certificate struct {
	N       *big.Int
	Factors []*big.Int // distinct prime factors of F, the factored part of N-1
	Bases   []*big.Int // Bases[i] witnesses Factors[i]
	F       *big.Int   // product of Factors (with multiplicity)
	R       *big.Int   // (N-1)/F, the unfactored remainder
}

// BLS75NMinus1 implements the bls75_nm1(N, effort, emit_cert) interface:
// given a caller-supplied partial factorization of N-1 (distinct prime
// factors, already verified prime by the caller), it looks for a witness
// base per factor and certifies N prime via Pocklington's theorem when the
// factored portion F exceeds sqrt(N). effort bounds how many candidate
// bases are tried per factor before giving up on that factor.
//
// The caller does the factoring (this package sits below factor in the
// import graph and cannot factor N-1 itself); ecpp.IsProvablePrime is
// expected to run the factor toolbox against N-1 up to some bound and pass
// the result here.
func BLS75NMinus1(n *big.Int, primeFactors []*big.Int, effort int, emitCert bool) (*BLS75Certificate, bool, error) {
	if n.Cmp(big2) <= 0 {
		return nil, false, nil
	}
	nMinus1 := new(big.Int).Sub(n, big1)

	f := big.NewInt(1)
	remaining := new(big.Int).Set(nMinus1)
	distinct := make([]*big.Int, 0, len(primeFactors))
	seen := make(map[string]bool)
	for _, p := range primeFactors {
		if p.Cmp(big1) <= 0 {
			continue
		}
		key := p.String()
		for new(big.Int).Mod(remaining, p).Sign() == 0 {
			remaining.Div(remaining, p)
			f.Mul(f, p)
		}
		if !seen[key] {
			seen[key] = true
			distinct = append(distinct, p)
		}
	}

	sqrtN := arith.IntroRoot(n, 2)
	if f.Cmp(sqrtN) <= 0 {
		return nil, false, ErrFactoredPortionTooSmall
	}

	bases := make([]*big.Int, len(distinct))
	rs := arith.DefaultSource()
	for i, p := range distinct {
		exp := new(big.Int).Div(nMinus1, p)
		found := false
		for attempt := 0; attempt < effort; attempt++ {
			a := rs.RandomPositiveInt(n)
			if a.Cmp(big2) < 0 {
				a = big2
			}
			if new(big.Int).Exp(a, nMinus1, n).Cmp(big1) != 0 {
				continue
			}
			g := new(big.Int).GCD(nil, nil, new(big.Int).Sub(new(big.Int).Exp(a, exp, n), big1), n)
			if g.Cmp(big1) == 0 {
				bases[i] = a
				found = true
				break
			}
		}
		if !found {
			return nil, false, nil
		}
	}

	var cert *BLS75Certificate
	if emitCert {
		cert = &BLS75Certificate{
			N:       new(big.Int).Set(n),
			Factors: distinct,
			Bases:   bases,
			F:       f,
			R:       remaining,
		}
	}
	return cert, true, nil
}

// Verify re-checks a BLS75Certificate independently of the process that
// produced it, so that certificates stay
// verifiable without re-running the search that found them.
func (c *BLS75Certificate) Verify() bool {
	nMinus1 := new(big.Int).Sub(c.N, big1)
	sqrtN := arith.IntroRoot(c.N, 2)
	if c.F.Cmp(sqrtN) <= 0 {
		return false
	}
	f := big.NewInt(1)
	remaining := new(big.Int).Set(nMinus1)
	for i, p := range c.Factors {
		for new(big.Int).Mod(remaining, p).Sign() == 0 {
			remaining.Div(remaining, p)
			f.Mul(f, p)
		}
		a := c.Bases[i]
		if new(big.Int).Exp(a, nMinus1, c.N).Cmp(big1) != 0 {
			return false
		}
		exp := new(big.Int).Div(nMinus1, p)
		g := new(big.Int).GCD(nil, nil, new(big.Int).Sub(new(big.Int).Exp(a, exp, c.N), big1), c.N)
		if g.Cmp(big1) != 0 {
			return false
		}
	}
	return f.Cmp(c.F) == 0
}
