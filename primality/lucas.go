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
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// StrongLucasSelfridge implements the strong Lucas-Selfridge test: pick
// (D,P,Q) via Selfridge's rule (the first D in 5,-7,9,-11,... with
// jacobi(D,n) == -1), Q = (1-D)/4, P = 1; accept if U_d ≡ 0 (mod n), or
// V_{d·2^r} ≡ 0 (mod n) for some 0 <= r < s, where n+1 = d·2^s, d odd.
func StrongLucasSelfridge(n *big.Int) bool {
	d, p, q, ok := selfridgeParameters(n)
	if !ok {
		// jacobi(D,n) == 0 for some D tried: a factor of n was found
		// directly, so n is composite.
		return false
	}
	return strongLucasTest(n, d, p, q)
}

// ExtraStrongLucas implements the Grantham extra-strong Lucas variant:
// Q = 1, P the smallest integer >= 3 with jacobi(P²-4, n) == -1.
func ExtraStrongLucas(n *big.Int) bool {
	p := big.NewInt(3)
	var d *big.Int
	for {
		d = new(big.Int).Mul(p, p)
		d.Sub(d, big.NewInt(4))
		j := bigJacobi(d, n)
		if j == -1 {
			break
		}
		if j == 0 {
			// gcd(D,n) > 1: a factor of n fell out directly.
			return false
		}
		p.Add(p, big1)
	}
	q := big1
	return extraStrongLucasTest(n, d, p, q)
}

func bigJacobi(a, n *big.Int) int {
	return big.Jacobi(a, n)
}

// selfridgeParameters returns (D, P, Q) per Selfridge's rule, or ok=false
// if a zero-Jacobi D exposed a factor of n along the way.
func selfridgeParameters(n *big.Int) (d, p, q *big.Int, ok bool) {
	dAbs := int64(5)
	sign := int64(1)
	for {
		dCandidate := big.NewInt(sign * dAbs)
		j := bigJacobi(dCandidate, n)
		if j == 0 {
			return nil, nil, nil, false
		}
		if j == -1 {
			q = new(big.Int).Sub(big1, dCandidate)
			q.Rsh(q, 2)
			return dCandidate, big.NewInt(1), q, true
		}
		dAbs += 2
		sign = -sign
	}
}

// lucasLadder computes (U_k, V_k, Q^k mod n) via the standard
// double-and-add recurrence for Lucas sequences with parameters (P,Q),
// discriminant D = P²-4Q.
func lucasLadder(n, p, q, k *big.Int) (u, v, qk *big.Int) {
	if k.Sign() == 0 {
		return big.NewInt(0), big.NewInt(2), big.NewInt(1)
	}
	inv2, _ := arith.ModInverse(big.NewInt(2), n)
	d := new(big.Int).Mul(p, p)
	d.Sub(d, new(big.Int).Lsh(q, 2))

	u = big.NewInt(1)
	v = new(big.Int).Mod(p, n)
	qk = new(big.Int).Mod(q, n)

	for i := k.BitLen() - 2; i >= 0; i-- {
		u = arith.MulMod(u, v, n)
		v2 := arith.MulMod(v, v, n)
		v = arith.SubMod(v2, new(big.Int).Lsh(qk, 1), n)
		qk = arith.MulMod(qk, qk, n)
		if k.Bit(i) == 1 {
			newU := arith.AddMod(arith.MulMod(p, u, n), v, n)
			newU = arith.MulMod(newU, inv2, n)
			newV := arith.AddMod(arith.MulMod(d, u, n), arith.MulMod(p, v, n), n)
			newV = arith.MulMod(newV, inv2, n)
			u, v = newU, newV
			qk = arith.MulMod(qk, q, n)
		}
	}
	return u, v, qk
}

func strongLucasTest(n, d, p, q *big.Int) bool {
	dExp := new(big.Int).Add(n, big1)
	s := 0
	for dExp.Bit(0) == 0 {
		dExp.Rsh(dExp, 1)
		s++
	}
	u, v, qk := lucasLadder(n, p, q, dExp)
	if u.Sign() == 0 {
		return true
	}
	for r := 0; r < s; r++ {
		if v.Sign() == 0 {
			return true
		}
		if r < s-1 {
			v = arith.SubMod(arith.MulMod(v, v, n), new(big.Int).Lsh(qk, 1), n)
			qk = arith.MulMod(qk, qk, n)
		}
	}
	return false
}

func extraStrongLucasTest(n, d, p, q *big.Int) bool {
	dExp := new(big.Int).Add(n, big1)
	s := 0
	for dExp.Bit(0) == 0 {
		dExp.Rsh(dExp, 1)
		s++
	}
	u, v, qk := lucasLadder(n, p, q, dExp)
	nMinus2 := new(big.Int).Sub(n, big2)
	if u.Sign() == 0 && (v.Cmp(big2) == 0 || v.Cmp(nMinus2) == 0) {
		return true
	}
	for r := 0; r < s-1; r++ {
		if v.Sign() == 0 {
			return true
		}
		v = arith.SubMod(arith.MulMod(v, v, n), new(big.Int).Lsh(qk, 1), n)
		qk = arith.MulMod(qk, qk, n)
	}
	return false
}
