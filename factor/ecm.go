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
	"math"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// ecPoint is a point on a Weierstrass curve y^2 = x^3 + a*x + b over Z/n,
// where n need not be prime. Addition that hits a non-invertible
// denominator either reveals a factor of n (the point used here) or, if
// the denominator is a multiple of n itself, the point at infinity.
type ecPoint struct {
	x, y       *big.Int
	isInfinity bool
}

var ecInfinity = ecPoint{isInfinity: true}

// ecAdd adds p1 and p2 on the curve with parameter a modulo n. It returns
// the sum and, if a non-trivial factor of n fell out of a failed modular
// inverse, that factor.
func ecAdd(p1, p2 ecPoint, a, n *big.Int) (ecPoint, *big.Int) {
	if p1.isInfinity {
		return p2, nil
	}
	if p2.isInfinity {
		return p1, nil
	}

	var num, den *big.Int
	if p1.x.Cmp(p2.x) == 0 {
		if new(big.Int).Mod(new(big.Int).Add(p1.y, p2.y), n).Sign() == 0 {
			return ecInfinity, nil
		}
		// doubling
		num = arith.AddMod(arith.MulMod(big.NewInt(3), arith.MulMod(p1.x, p1.x, n), n), a, n)
		den = arith.MulMod(big.NewInt(2), p1.y, n)
	} else {
		num = arith.SubMod(p2.y, p1.y, n)
		den = arith.SubMod(p2.x, p1.x, n)
	}

	lambda, err := arith.ModInverse(den, n)
	if err != nil {
		g := gcd(den, n)
		if g.Cmp(n) == 0 {
			return ecInfinity, nil
		}
		return ecPoint{}, g
	}
	lambda = arith.MulMod(num, lambda, n)

	x3 := arith.SubMod(arith.SubMod(arith.MulMod(lambda, lambda, n), p1.x, n), p2.x, n)
	y3 := arith.SubMod(arith.MulMod(lambda, arith.SubMod(p1.x, x3, n), n), p1.y, n)
	return ecPoint{x: x3, y: y3}, nil
}

// ecScalarMul computes k*p via double-and-add, propagating any factor
// revealed along the way.
func ecScalarMul(k *big.Int, p ecPoint, a, n *big.Int) (ecPoint, *big.Int) {
	result := ecInfinity
	base := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			var f *big.Int
			result, f = ecAdd(result, base, a, n)
			if f != nil {
				return ecPoint{}, f
			}
		}
		var f *big.Int
		base, f = ecAdd(base, base, a, n)
		if f != nil {
			return ecPoint{}, f
		}
	}
	return result, nil
}

// ecmStageExponent returns e = prod_{p<=b1} p^floor(log_p(b1)), the
// stage-1 scalar ECM multiplies the base point by.
func ecmStageExponent(b1 int64) *big.Int {
	e := big.NewInt(1)
	for _, p := range sieveUpTo(int(b1)) {
		k := 0
		for pw := p; pw <= b1; pw *= p {
			k++
		}
		e.Mul(e, new(big.Int).Exp(big.NewInt(p), big.NewInt(int64(k)), nil))
	}
	return e
}

// ECM runs Lenstra's elliptic curve method against n: up to curves random
// curves, each stage-1 scalar-multiplied by the B1-smooth exponent.
func ECM(n *big.Int, b1 int64, curves int, rs *arith.RandSource) *big.Int {
	if rs == nil {
		rs = arith.DefaultSource()
	}
	e := ecmStageExponent(b1)

	for c := 0; c < curves; c++ {
		x1 := rs.RandomPositiveInt(n)
		y1 := rs.RandomPositiveInt(n)
		aParam := rs.RandomPositiveInt(n)

		// b = y1^2 - x1^3 - a*x1 mod n makes (x1,y1) lie on the curve by
		// construction; b itself never appears in the add/double
		// formulas, only a does.
		p := ecPoint{x: x1, y: y1}
		_, factor := ecScalarMul(e, p, aParam, n)
		if factor != nil && validFactor(factor, n) {
			return factor
		}
	}
	return nil
}

// ecmParamsForDigits mirrors the Lenstra_ECM smoothness-bound table (B1,
// curve count) indexed by the decimal digit length of n, used by
// candidate.go's stage >= 5 escalation as a ceiling on its B1.
var ecmParamsForDigits = [][3]int64{
	{15, 2000, 25},
	{20, 11000, 90},
	{25, 50000, 300},
	{30, 250000, 700},
	{35, 1000000, 1800},
	{40, 3000000, 5100},
	{45, 11000000, 10600},
	{50, 43000000, 19300},
	{55, 110000000, 49000},
	{60, 260000000, 124000},
	{65, 850000000, 210000},
	{70, 2100000000, 340000},
}

// ecmParamsFor returns a (B1, curves) pair scaled to n's size, following
// the table above. The candidate pipeline's stage >= 5 schedule switches
// to this pair whenever its own B1 would exceed the pair's B1.
func ecmParamsFor(n *big.Int) (b1 int64, curves int) {
	digits := int(math.Ceil(float64(n.BitLen()) * math.Log10(2)))
	last := ecmParamsForDigits[len(ecmParamsForDigits)-1]
	b1, curves = last[1], int(last[2])
	for _, row := range ecmParamsForDigits {
		if int64(digits) <= row[0] {
			return row[1], int(row[2])
		}
	}
	return b1, curves
}
