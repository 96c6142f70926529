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

import "math/big"

// gowerWagstaffMultipliers is the standard SQUFOF multiplier list from
// Gower & Wagstaff, "Square Form Factorization" (2008), ordered to
// maximize the chance of an early cycle.
var gowerWagstaffMultipliers = []int64{
	1, 3, 5, 7, 11,
	3 * 5, 3 * 7, 3 * 11,
	5 * 7, 5 * 11, 7 * 11,
	3 * 5 * 7, 3 * 5 * 11, 3 * 7 * 11, 5 * 7 * 11,
	3 * 5 * 7 * 11,
}

// squfofMaxIterations bounds the symmetry (reverse-phase) loop. A much
// smaller bound than the classical 10^9 abort threshold works here since
// the candidate pipeline already escalates through other algorithms on
// failure.
const squfofMaxIterations = 1_000_000

// SQUFOF implements Shanks' square form factorization: for each multiplier
// m in the Gower-Wagstaff list (skipping any with 64*m^3 >= n),
// run the forward cycle to find a square Q, then the reverse cycle to
// recover a factor from the closing Pprev.
func SQUFOF(n *big.Int) *big.Int {
	for _, m := range gowerWagstaffMultipliers {
		bound := new(big.Int).Mul(big.NewInt(64), new(big.Int).Exp(big.NewInt(m), big.NewInt(3), nil))
		if bound.Cmp(n) >= 0 {
			break
		}
		if f := squfofMultiplier(n, m); f != nil {
			return f
		}
	}
	return nil
}

func squfofMultiplier(n *big.Int, m int64) *big.Int {
	n1 := new(big.Int).Mul(n, big.NewInt(m))
	s := new(big.Int).Sqrt(n1)
	if new(big.Int).Mul(s, s).Cmp(n1) == 0 {
		return nil
	}

	pPrev := new(big.Int).Set(s)
	qPrev := big.NewInt(1)
	q := new(big.Int).Sub(n1, new(big.Int).Mul(s, s))

	var p *big.Int
	var qSqrt *big.Int

	for i := int64(1); i <= squfofMaxIterations; i++ {
		b := new(big.Int).Div(new(big.Int).Add(s, pPrev), q)
		p = new(big.Int).Sub(new(big.Int).Mul(b, q), pPrev)

		if i%2 == 0 && q.Cmp(big1) != 0 {
			r := new(big.Int).Sqrt(q)
			if new(big.Int).Mul(r, r).Cmp(q) == 0 {
				qSqrt = r
				break
			}
		}

		newQ := new(big.Int).Add(qPrev, new(big.Int).Mul(b, new(big.Int).Sub(pPrev, p)))
		qPrev = q
		q = newQ
		pPrev = p
	}
	if qSqrt == nil {
		return nil
	}

	b0 := new(big.Int).Div(new(big.Int).Sub(s, p), qSqrt)
	pPrev = new(big.Int).Add(new(big.Int).Mul(b0, qSqrt), p)
	qPrev = qSqrt
	q = new(big.Int).Div(new(big.Int).Sub(n1, new(big.Int).Mul(pPrev, pPrev)), qSqrt)

	for i := int64(0); i < squfofMaxIterations; i++ {
		b := new(big.Int).Div(new(big.Int).Add(s, pPrev), q)
		p = new(big.Int).Sub(new(big.Int).Mul(b, q), pPrev)

		if p.Cmp(pPrev) == 0 {
			break
		}

		newQ := new(big.Int).Add(qPrev, new(big.Int).Mul(b, new(big.Int).Sub(pPrev, p)))
		qPrev = q
		q = newQ
		pPrev = p
	}

	f := gcd(n, pPrev)
	if validFactor(f, n) {
		return f
	}
	return nil
}
