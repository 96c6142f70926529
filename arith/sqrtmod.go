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

import "math/big"

// SqrtMod returns y such that y² ≡ q (mod n) via Tonelli-Shanks, assuming
// n is prime (or behaves like one) and jacobi(q,n) == 1. On composite n
// the result may be garbage rather than a real square root; this is
// caught downstream (the curve builder rejects bogus witnesses via the
// order check, not here).
func SqrtMod(q, n *big.Int) *big.Int {
	q = new(big.Int).Mod(q, n)
	if IsZero(q) {
		return big.NewInt(0)
	}

	// n ≡ 3 (mod 4): y = q^((n+1)/4) mod n.
	if new(big.Int).And(n, big3).Cmp(big3) == 0 {
		e := new(big.Int).Add(n, big1)
		e.Rsh(e, 2)
		return PowMod(q, e, n)
	}

	// General Tonelli-Shanks.
	// n-1 = s * 2^e, s odd.
	nMinus1 := new(big.Int).Sub(n, big1)
	s := new(big.Int).Set(nMinus1)
	e := 0
	for s.Bit(0) == 0 {
		s.Rsh(s, 1)
		e++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	for Jacobi(z, n) != -1 {
		z.Add(z, big1)
	}

	m := e
	c := PowMod(z, s, n)
	t := PowMod(q, s, n)
	sPlus1Over2 := new(big.Int).Add(s, big1)
	sPlus1Over2.Rsh(sPlus1Over2, 1)
	r := PowMod(q, sPlus1Over2, n)

	for {
		if IsOne(t) {
			return r
		}
		// Find least i, 0 < i < m, such that t^(2^i) == 1.
		i := 1
		t2i := MulMod(t, t, n)
		for !IsOne(t2i) {
			t2i = MulMod(t2i, t2i, n)
			i++
			if i >= m {
				// Should not happen if jacobi(q,n) == 1 and n is prime;
				// on composite n this loop exits via the caller's later
				// order check instead of here.
				return big.NewInt(0)
			}
		}
		b := new(big.Int).Set(c)
		for j := 0; j < m-i-1; j++ {
			b = MulMod(b, b, n)
		}
		m = i
		c = MulMod(b, b, n)
		t = MulMod(t, c, n)
		r = MulMod(r, b, n)
	}
}
