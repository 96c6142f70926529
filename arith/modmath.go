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

// MulMod returns a*b mod m.
func MulMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, m)
}

// AddMod returns a+b mod m.
func AddMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, m)
}

// SubMod returns a-b mod m, normalized into [0, m).
func SubMod(a, b, m *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, m)
}

// PowMod returns base^exp mod m. Delegates to math/big; kept as a wrapper
// so callers never import math/big's Exp signature directly, matching the
// rest of this package's surface.
func PowMod(base, exp, m *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, m)
}

// ModInverse returns a^-1 mod m, or ErrNotInvertible if gcd(a,m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, m)
	if inv == nil {
		return nil, ErrNotInvertible
	}
	return inv, nil
}

// DivMod returns a * b^-1 mod m, or ErrNotInvertible if b has no inverse.
// A non-invertible denominator during curve-order verification is exactly
// the Fermat-style witness the proof driver treats as
// proof that N is composite.
func DivMod(a, b, m *big.Int) (*big.Int, error) {
	inv, err := ModInverse(b, m)
	if err != nil {
		return nil, err
	}
	return MulMod(a, inv, m), nil
}

// IntroRoot returns floor(n^(1/k)) for n >= 0, k >= 1.
func IntroRoot(n *big.Int, k uint) *big.Int {
	if k == 1 {
		return new(big.Int).Set(n)
	}
	if n.Sign() == 0 {
		return big.NewInt(0)
	}
	if k == 2 {
		return new(big.Int).Sqrt(n)
	}
	// Newton's method on x^k - n, matching the precision math/big.Sqrt uses
	// for k=2.
	x := new(big.Int).Lsh(big1, uint((n.BitLen()+int(k)-1)/int(k))+1)
	kBig := new(big.Int).SetUint64(uint64(k))
	kMinus1 := new(big.Int).SetUint64(uint64(k - 1))
	for {
		// x_{i+1} = ((k-1)*x_i + n/x_i^(k-1)) / k
		xkm1 := new(big.Int).Exp(x, kMinus1, nil)
		t := new(big.Int).Div(n, xkm1)
		t.Add(t, new(big.Int).Mul(kMinus1, x))
		t.Div(t, kBig)
		if t.Cmp(x) >= 0 {
			break
		}
		x = t
	}
	// x now satisfies x^k <= n < (x+1)^k modulo the usual off-by-one fixups.
	for new(big.Int).Exp(x, kBig, nil).Cmp(n) > 0 {
		x.Sub(x, big1)
	}
	next := new(big.Int).Add(x, big1)
	for new(big.Int).Exp(next, kBig, nil).Cmp(n) <= 0 {
		x.Set(next)
		next.Add(next, big1)
	}
	return x
}

// IsPerfectPower reports whether n = b^k for some b > 1, k > 1, and if so
// returns b and k (the largest such k, i.e. the smallest such b).
func IsPerfectPower(n *big.Int) (base *big.Int, exp int, ok bool) {
	if n.Cmp(big3) <= 0 {
		return nil, 0, false
	}
	for k := n.BitLen(); k >= 2; k-- {
		root := IntroRoot(n, uint(k))
		if root.Cmp(big1) <= 0 {
			continue
		}
		if new(big.Int).Exp(root, big.NewInt(int64(k)), nil).Cmp(n) == 0 {
			return root, k, true
		}
	}
	return nil, 0, false
}

// MinFactor returns (floor(n^(1/4))+1)^2, the Atkin-Morain lower bound a
// large prime factor q of an m-candidate must exceed.
func MinFactor(n *big.Int) *big.Int {
	r := IntroRoot(n, 4)
	r.Add(r, big1)
	return r.Mul(r, r)
}
