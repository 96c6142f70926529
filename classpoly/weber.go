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

package classpoly

import (
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

var (
	big16 = big.NewInt(16)
	big64 = big.NewInt(64)
)

// WeberToHilbert transforms a Weber class polynomial root r into its
// Hilbert j-invariant, selected by |D|/gcd(D,4) mod 8. ok is
// false when D is rejected outright (any residue other than 1, 2, 5, 6
// or 7, i.e. 0, 3 or 4) or when a required modular
// inverse does not exist mod n — both are treated as "skip this root," not
// an error: a non-invertible denominator just means this root is skipped.
func WeberToHilbert(d int64, r, n *big.Int) (j *big.Int, ok bool) {
	absD := d
	if absD < 0 {
		absD = -absD
	}
	g4 := gcdInt64(absD, 4)
	m := (absD / g4) % 8

	switch m {
	case 1:
		return weberCase(r, n, 12, false)
	case 2, 6:
		return weberCase(r, n, 12, true)
	case 5:
		return weberCase(r, n, 6, false)
	case 7:
		return weberCase7(r, n)
	default: // 0, 3 or 4 mod 8
		return nil, false
	}
}

// weberCase handles the `(64*r^k +/- 16)^3 / (64*r^k)` shape shared by the
// |D|/gcd(D,4) mod 8 in {1,2,5,6} cases.
func weberCase(r, n *big.Int, k int64, add bool) (*big.Int, bool) {
	rk := arith.PowMod(r, big.NewInt(k), n)
	den := arith.MulMod(big64, rk, n)
	if den.Sign() == 0 {
		return nil, false
	}
	var num *big.Int
	if add {
		num = arith.AddMod(den, big16, n)
	} else {
		num = arith.SubMod(den, big16, n)
	}
	num = arith.PowMod(num, big3, n)

	j, err := arith.DivMod(num, den, n)
	if err != nil {
		return nil, false
	}
	return j, true
}

// weberCase7 handles `(r^-24 - 16)^3 / r^-24`.
func weberCase7(r, n *big.Int) (*big.Int, bool) {
	rInv, err := arith.ModInverse(r, n)
	if err != nil {
		return nil, false
	}
	den := arith.PowMod(rInv, big.NewInt(24), n)
	if den.Sign() == 0 {
		return nil, false
	}
	num := arith.PowMod(arith.SubMod(den, big16, n), big3, n)
	j, err := arith.DivMod(num, den, n)
	if err != nil {
		return nil, false
	}
	return j, true
}

func gcdInt64(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

var big3 = big.NewInt(3)
