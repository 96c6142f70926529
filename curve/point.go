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

// Package curve implements affine point arithmetic on y^2 = x^3 + ax + b
// over Z/NZ for arbitrary N (not necessarily prime), plus the Atkin-Morain
// curve-construction step that picks (a,b) and a witness point for a given
// CM discriminant.
package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

var (
	// ErrInvalidPoint is returned if the point does not lie on the curve.
	ErrInvalidPoint = errors.New("curve: invalid point")
	// ErrDifferentCurve is returned for an operation between points with
	// different (a, b, N).
	ErrDifferentCurve = errors.New("curve: different curves")
	// ErrNonInvertibleDenominator is returned when a point operation hits a
	// denominator sharing a nontrivial factor with N — a Fermat-like
	// witness that N is composite.
	ErrNonInvertibleDenominator = errors.New("curve: non-invertible denominator")
)

// Curve is the Weierstrass curve y^2 = x^3 + a*x + b over Z/NZ.
type Curve struct {
	A, B, N *big.Int
}

// NewCurve builds a curve, verifying the discriminant is nonzero mod N.
func NewCurve(a, b, n *big.Int) (*Curve, error) {
	disc := Discriminant(a, b, n)
	if disc.Sign() == 0 {
		return nil, ErrInvalidPoint
	}
	return &Curve{A: new(big.Int).Mod(a, n), B: new(big.Int).Mod(b, n), N: new(big.Int).Set(n)}, nil
}

// Discriminant returns -16*(4a^3 + 27b^2) mod N; a zero value means the curve is singular.
func Discriminant(a, b, n *big.Int) *big.Int {
	a3 := arith.MulMod(arith.MulMod(a, a, n), a, n)
	four3 := arith.MulMod(big.NewInt(4), a3, n)
	b2 := arith.MulMod(b, b, n)
	twentySeven := arith.MulMod(big.NewInt(27), b2, n)
	sum := arith.AddMod(four3, twentySeven, n)
	neg16 := new(big.Int).Mod(big.NewInt(-16), n)
	return arith.MulMod(neg16, sum, n)
}

// Point is an affine point on a Curve. The identity element is represented
// as the overloaded coordinate (0,1), following this library's point-at-infinity
// convention, but also carries an internal isIdentity bit so operations
// never confuse it with a genuine affine root at (0,1) mod N.
type Point struct {
	curve      *Curve
	x, y       *big.Int
	isIdentity bool
}

// Identity returns the point at infinity on c.
func Identity(c *Curve) *Point {
	return &Point{curve: c, isIdentity: true}
}

// NewPoint builds a point and verifies it lies on c.
func NewPoint(c *Curve, x, y *big.Int) (*Point, error) {
	x = new(big.Int).Mod(x, c.N)
	y = new(big.Int).Mod(y, c.N)
	if !c.isOn(x, y) {
		return nil, ErrInvalidPoint
	}
	return &Point{curve: c, x: x, y: y}, nil
}

func (c *Curve) isOn(x, y *big.Int) bool {
	rhs := arith.AddMod(arith.AddMod(arith.MulMod(arith.MulMod(x, x, c.N), x, c.N), arith.MulMod(c.A, x, c.N), c.N), c.B, c.N)
	lhs := arith.MulMod(y, y, c.N)
	return lhs.Cmp(rhs) == 0
}

// IsIdentity reports whether p is the point at infinity.
func (p *Point) IsIdentity() bool {
	return p.isIdentity
}

// X returns the affine x-coordinate, or nil at infinity.
func (p *Point) X() *big.Int {
	if p.isIdentity {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns the affine y-coordinate, or nil at infinity.
func (p *Point) Y() *big.Int {
	if p.isIdentity {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// String renders the wire-format coordinate pair "(Px:Py)", using
// the (0:1) convention for the point at infinity.
func (p *Point) String() string {
	if p.isIdentity {
		return "(0:1)"
	}
	return fmt.Sprintf("(%s:%s)", p.x, p.y)
}

func (p *Point) sameCurve(q *Point) bool {
	return p.curve.A.Cmp(q.curve.A) == 0 && p.curve.B.Cmp(q.curve.B) == 0 && p.curve.N.Cmp(q.curve.N) == 0
}

// Add computes p+q, returning ErrNonInvertibleDenominator (a composite
// witness for N) if the slope's denominator is not invertible mod N.
func (p *Point) Add(q *Point) (*Point, error) {
	if !p.sameCurve(q) {
		return nil, ErrDifferentCurve
	}
	c := p.curve
	if p.isIdentity {
		return q.copy(), nil
	}
	if q.isIdentity {
		return p.copy(), nil
	}

	if p.x.Cmp(q.x) == 0 {
		sum := arith.AddMod(p.y, q.y, c.N)
		if sum.Sign() == 0 {
			return Identity(c), nil
		}
		return p.double()
	}

	num := arith.SubMod(q.y, p.y, c.N)
	den := arith.SubMod(q.x, p.x, c.N)
	lambda, err := arith.DivMod(num, den, c.N)
	if err != nil {
		return nil, ErrNonInvertibleDenominator
	}
	return c.pointFromSlope(lambda, p.x, q.x, p.y)
}

func (p *Point) double() (*Point, error) {
	c := p.curve
	if p.isIdentity {
		return Identity(c), nil
	}
	if p.y.Sign() == 0 {
		return Identity(c), nil
	}
	num := arith.AddMod(arith.MulMod(big.NewInt(3), arith.MulMod(p.x, p.x, c.N), c.N), c.A, c.N)
	den := arith.MulMod(big.NewInt(2), p.y, c.N)
	lambda, err := arith.DivMod(num, den, c.N)
	if err != nil {
		return nil, ErrNonInvertibleDenominator
	}
	return c.pointFromSlope(lambda, p.x, p.x, p.y)
}

func (c *Curve) pointFromSlope(lambda, x1, x2, y1 *big.Int) (*Point, error) {
	x3 := arith.SubMod(arith.SubMod(arith.MulMod(lambda, lambda, c.N), x1, c.N), x2, c.N)
	y3 := arith.SubMod(arith.MulMod(lambda, arith.SubMod(x1, x3, c.N), c.N), y1, c.N)
	return &Point{curve: c, x: x3, y: y3}, nil
}

// ScalarMult computes [k]P via double-and-add, stopping early with
// ErrNonInvertibleDenominator if any intermediate addition hits a
// non-invertible slope denominator — the Fermat-like compositeness witness
// the proof driver relies on.
func (p *Point) ScalarMult(k *big.Int) (*Point, error) {
	if k.Sign() == 0 || p.isIdentity {
		return Identity(p.curve), nil
	}
	kAbs := new(big.Int).Abs(k)
	result := Identity(p.curve)
	base := p.copy()
	if k.Sign() < 0 {
		neg, err := base.Neg()
		if err != nil {
			return nil, err
		}
		base = neg
	}
	for i := 0; i < kAbs.BitLen(); i++ {
		if kAbs.Bit(i) == 1 {
			sum, err := result.Add(base)
			if err != nil {
				return nil, err
			}
			result = sum
		}
		d, err := base.double()
		if err != nil {
			return nil, err
		}
		base = d
	}
	return result, nil
}

// Neg returns -P.
func (p *Point) Neg() (*Point, error) {
	if p.isIdentity {
		return Identity(p.curve), nil
	}
	negY := new(big.Int).Neg(p.y)
	negY.Mod(negY, p.curve.N)
	return &Point{curve: p.curve, x: new(big.Int).Set(p.x), y: negY}, nil
}

func (p *Point) copy() *Point {
	if p.isIdentity {
		return Identity(p.curve)
	}
	return &Point{curve: p.curve, x: new(big.Int).Set(p.x), y: new(big.Int).Set(p.y)}
}

// Equal reports whether p and q are the same point on the same curve.
func (p *Point) Equal(q *Point) bool {
	if !p.sameCurve(q) {
		return false
	}
	if p.isIdentity != q.isIdentity {
		return false
	}
	if p.isIdentity {
		return true
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}
