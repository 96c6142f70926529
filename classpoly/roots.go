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
	"errors"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// ErrZeroPolynomial means every coefficient reduced to 0 mod N.
var ErrZeroPolynomial = errors.New("classpoly: polynomial is identically zero mod N")

// poly is a dense coefficient slice, low degree first, always trimmed (no
// trailing zero high-degree term) by every function that returns one.
type poly []*big.Int

func polyTrim(p poly) poly {
	d := len(p)
	for d > 1 && p[d-1].Sign() == 0 {
		d--
	}
	return p[:d]
}

func polyMod(p poly, n *big.Int) poly {
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = new(big.Int).Mod(c, n)
	}
	return polyTrim(out)
}

func polyDegree(p poly) int {
	return len(p) - 1
}

func polyIsZero(p poly) bool {
	return len(p) == 1 && p[0].Sign() == 0
}

func polyAdd(a, b poly, n *big.Int) poly {
	size := len(a)
	if len(b) > size {
		size = len(b)
	}
	out := make(poly, size)
	for i := 0; i < size; i++ {
		out[i] = big.NewInt(0)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
		out[i].Mod(out[i], n)
	}
	return polyTrim(out)
}

func polySub(a, b poly, n *big.Int) poly {
	neg := make(poly, len(b))
	for i, c := range b {
		neg[i] = new(big.Int).Neg(c)
	}
	return polyAdd(a, neg, n)
}

func polyMul(a, b poly, n *big.Int) poly {
	if polyIsZero(a) || polyIsZero(b) {
		return poly{big.NewInt(0)}
	}
	out := make(poly, len(a)+len(b)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, ac := range a {
		if ac.Sign() == 0 {
			continue
		}
		for j, bc := range b {
			t := new(big.Int).Mul(ac, bc)
			out[i+j].Add(out[i+j], t)
		}
	}
	for i := range out {
		out[i].Mod(out[i], n)
	}
	return polyTrim(out)
}

// polyDivMod performs polynomial long division of a by b modulo n,
// returning quotient and remainder. Fails with the non-invertible error if
// b's leading coefficient shares a factor with n — for a composite
// modulus that is itself the witness of compositeness; callers expect N to
// already be probable-prime by the time class-polynomial work starts.
func polyDivMod(a, b poly, n *big.Int) (q, r poly, err error) {
	b = polyTrim(b)
	if polyIsZero(b) {
		return nil, nil, ErrZeroPolynomial
	}
	leadInv, err := arith.ModInverse(b[len(b)-1], n)
	if err != nil {
		return nil, nil, err
	}

	rem := make(poly, len(a))
	for i, c := range a {
		rem[i] = new(big.Int).Mod(c, n)
	}
	rem = polyTrim(rem)

	degB := polyDegree(b)
	qc := make([]*big.Int, 0)
	for polyDegree(rem) >= degB && !polyIsZero(rem) {
		shift := polyDegree(rem) - degB
		coeff := arith.MulMod(rem[len(rem)-1], leadInv, n)
		for len(qc) <= shift {
			qc = append(qc, big.NewInt(0))
		}
		qc[shift] = coeff

		sub := make(poly, shift+len(b))
		for i := range sub {
			sub[i] = big.NewInt(0)
		}
		for i, bc := range b {
			sub[shift+i] = arith.MulMod(coeff, bc, n)
		}
		rem = polySub(rem, sub, n)
	}
	if len(qc) == 0 {
		qc = []*big.Int{big.NewInt(0)}
	}
	return polyTrim(poly(qc)), rem, nil
}

// polyMulModF computes (a*b) mod f, mod n.
func polyMulModF(a, b, f poly, n *big.Int) (poly, error) {
	product := polyMul(a, b, n)
	_, r, err := polyDivMod(product, f, n)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// polyPowModF computes base^exp mod f, mod n, via square-and-multiply.
func polyPowModF(base poly, exp *big.Int, f poly, n *big.Int) (poly, error) {
	result := poly{big.NewInt(1)}
	b := base
	var err error
	for i := 0; i < exp.BitLen(); i++ {
		if exp.Bit(i) == 1 {
			result, err = polyMulModF(result, b, f, n)
			if err != nil {
				return nil, err
			}
		}
		b, err = polyMulModF(b, b, f, n)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// polyGCD computes gcd(a,b) mod n via the Euclidean algorithm, normalized
// to a monic polynomial.
func polyGCD(a, b poly, n *big.Int) (poly, error) {
	a = polyTrim(polyMod(a, n))
	b = polyTrim(polyMod(b, n))
	for !polyIsZero(b) {
		_, r, err := polyDivMod(a, b, n)
		if err != nil {
			return nil, err
		}
		a, b = b, r
	}
	if polyIsZero(a) {
		return a, nil
	}
	inv, err := arith.ModInverse(a[len(a)-1], n)
	if err != nil {
		return nil, err
	}
	out := make(poly, len(a))
	for i, c := range a {
		out[i] = arith.MulMod(c, inv, n)
	}
	return out, nil
}

// RootsModN finds every root in [0,n) of the polynomial with the given
// coefficients (low-to-high) modulo n, via the standard two-stage
// approach: gcd(x^n - x, f) isolates f's simple roots as a product of
// linear factors (valid when n is prime, which every caller here has
// already established via BPSW before reaching class-polynomial work),
// then Cantor-Zassenhaus-style equal-degree-1 splitting by random
// (x+a)^((n-1)/2) extracts them one at a time.
func RootsModN(coeffs []*big.Int, n *big.Int) ([]*big.Int, error) {
	f := polyMod(poly(coeffs), n)
	if polyDegree(f) <= 0 {
		return nil, nil
	}

	xPoly := poly{big.NewInt(0), big.NewInt(1)}
	hx, err := polyPowModF(xPoly, n, f, n)
	if err != nil {
		return nil, err
	}
	diff := polySub(hx, xPoly, n)
	g, err := polyGCD(f, diff, n)
	if err != nil {
		return nil, err
	}
	if polyIsZero(g) || polyDegree(g) <= 0 {
		return nil, nil
	}

	var roots []*big.Int
	if err := splitRoots(g, n, &roots); err != nil {
		return nil, err
	}
	return roots, nil
}

func splitRoots(g poly, n *big.Int, roots *[]*big.Int) error {
	g = polyTrim(g)
	deg := polyDegree(g)
	if deg <= 0 {
		return nil
	}
	if deg == 1 {
		inv, err := arith.ModInverse(g[1], n)
		if err != nil {
			return err
		}
		root := arith.MulMod(new(big.Int).Neg(g[0]), inv, n)
		root.Mod(root, n)
		*roots = append(*roots, root)
		return nil
	}

	rs := arith.DefaultSource()
	half := new(big.Int).Rsh(new(big.Int).Sub(n, big.NewInt(1)), 1)
	for attempt := 0; attempt < 200; attempt++ {
		a := rs.BigInt(n)
		base := poly{a, big.NewInt(1)} // x + a
		t, err := polyPowModF(base, half, g, n)
		if err != nil {
			return err
		}
		t1 := polySub(t, poly{big.NewInt(1)}, n)
		h, err := polyGCD(g, t1, n)
		if err != nil {
			return err
		}
		hDeg := polyDegree(h)
		if hDeg > 0 && hDeg < deg {
			rest, _, err := polyDivMod(g, h, n)
			if err != nil {
				return err
			}
			if err := splitRoots(h, n, roots); err != nil {
				return err
			}
			return splitRoots(rest, n, roots)
		}
	}
	return nil
}
