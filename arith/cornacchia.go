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

// ModifiedCornacchia solves u² + |D|v² = 4N for a fundamental discriminant
// D < 0 and N > 0, returning (u, v) with u, v > 0, or ok=false if no
// solution exists. Classical Euclidean-algorithm variant: find a square
// root of D mod 4N, then run the gcd descent until the remainder drops
// below sqrt(4N) and read the solution off the norm equation.
func ModifiedCornacchia(d, n *big.Int) (u, v *big.Int, ok bool) {
	if n.Sign() <= 0 {
		return nil, nil, false
	}
	absD := new(big.Int).Abs(d)
	fourN := new(big.Int).Lsh(n, 2)

	// Find t with t² ≡ D (mod 4N), 0 <= t < 2N, t ≡ D (mod 2).
	// We search via sqrtmod(D mod N, N) and Hensel-style parity fixups,
	// which is sufficient because N will always be the odd prime
	// candidate the driver is testing (trial-divided for small factors
	// before Cornacchia is ever called).
	if Jacobi(d, n) == -1 {
		return nil, nil, false
	}
	dModN := new(big.Int).Mod(d, n)
	t := SqrtMod(dModN, n)
	// Lift t to mod 2N with the correct parity (t ≡ D (mod 2)).
	twoN := new(big.Int).Lsh(n, 1)
	if new(big.Int).And(t, big1).Cmp(new(big.Int).And(absD, big1)) != 0 {
		t = new(big.Int).Add(t, n)
	}
	t.Mod(t, twoN)

	// Run the Euclidean algorithm on (2N, t) until the remainder drops
	// below sqrt(4N).
	a := new(big.Int).Set(twoN)
	b := new(big.Int).Set(t)
	bound := new(big.Int).Sqrt(fourN)
	for b.Cmp(bound) > 0 {
		a, b = b, new(big.Int).Mod(a, b)
	}

	// u² = 4N - |D|v² with u = b; recover v from (4N - b²)/|D|.
	bSq := new(big.Int).Mul(b, b)
	rem := new(big.Int).Sub(fourN, bSq)
	if rem.Sign() < 0 {
		return nil, nil, false
	}
	remainder := new(big.Int).Mod(rem, absD)
	if remainder.Sign() != 0 {
		return nil, nil, false
	}
	vSq := new(big.Int).Div(rem, absD)
	vCandidate := new(big.Int).Sqrt(vSq)
	if new(big.Int).Mul(vCandidate, vCandidate).Cmp(vSq) != 0 {
		return nil, nil, false
	}
	u = new(big.Int).Abs(b)
	v = vCandidate
	if IsZero(u) || IsZero(v) {
		return nil, nil, false
	}
	// Verify: u² + |D|v² == 4N.
	check := new(big.Int).Mul(u, u)
	dv2 := new(big.Int).Mul(absD, v)
	dv2.Mul(dv2, v)
	check.Add(check, dv2)
	if check.Cmp(fourN) != 0 {
		return nil, nil, false
	}
	return u, v, true
}
