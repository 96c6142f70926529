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

package curve

import (
	"errors"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

var (
	// ErrCompositeWitness is returned when the builder itself proves N
	// composite: no valid non-residue g exists, or a point operation hit a
	// non-invertible denominator.
	ErrCompositeWitness = errors.New("curve: N is composite")
	// ErrPointsExhausted is returned when the attempt budget (50 tries
	// per class-polynomial root) runs out without producing an accepted
	// witness point. This is a soft failure: the caller marks the
	// discriminant skipped and moves on, it does not mean N is composite.
	ErrPointsExhausted = errors.New("curve: exhausted point attempts")
)

const nonResidueSearchAttempts = 10000

// attemptsPerRoot scales the point-search budget by root count, expressed as a
// per-root constant; the caller multiplies by the number of roots found
// for a given discriminant.
const attemptsPerRoot = 50

// MaxAttempts returns the point-search attempt budget for a
// discriminant whose class polynomial produced nroots roots.
func MaxAttempts(nroots int) int {
	return attemptsPerRoot * nroots
}

// SelectCurveParams computes (a,b) mod N from a class-polynomial root j
// for discriminant d. D=-3 and D=-4 have fixed special cases; every other
// D derives (a,b) from j via c = j*(j-1728)^-1.
func SelectCurveParams(d int64, j, n *big.Int) (a, b *big.Int, err error) {
	switch d {
	case -3:
		return big.NewInt(0), new(big.Int).Mod(big.NewInt(-1), n), nil
	case -4:
		return new(big.Int).Mod(big.NewInt(-1), n), big.NewInt(0), nil
	}
	denom := arith.SubMod(j, big.NewInt(1728), n)
	c, err := arith.DivMod(j, denom, n)
	if err != nil {
		return nil, nil, ErrCompositeWitness
	}
	a = arith.MulMod(big.NewInt(-3), c, n)
	b = arith.MulMod(big.NewInt(2), c, n)
	return a, b, nil
}

// FindNonResidue searches for g with jacobi(g,N)=-1 satisfying the extra
// conditions specific discriminants impose. Returns
// ErrCompositeWitness if no such g turns up within the search budget;
// for prime N a valid g always exists, so its absence proves N composite.
func FindNonResidue(d int64, n *big.Int, rs *arith.RandSource) (*big.Int, error) {
	nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
	third := new(big.Int).Div(nMinus1, big.NewInt(3))
	nMod3 := new(big.Int).Mod(n, big.NewInt(3)).Int64()

	for attempt := 0; attempt < nonResidueSearchAttempts; attempt++ {
		g := rs.RandomPositiveInt(n)
		if g.Sign() == 0 {
			continue
		}
		if arith.Jacobi(g, n) != -1 {
			continue
		}
		if nMod3 != 1 {
			if arith.PowMod(g, third, n).Cmp(big.NewInt(1)) == 0 {
				continue
			}
		}
		if d == -3 {
			cubed := arith.MulMod(arith.MulMod(g, g, n), g, n)
			if arith.PowMod(cubed, nMinus1, n).Cmp(big.NewInt(1)) != 0 {
				continue
			}
		}
		return g, nil
	}
	return nil, ErrCompositeWitness
}

// unityCount is the number of twist classes the automorphism group of E
// distinguishes: 6 for D=-3, 4 for D=-4, 2 otherwise.
func unityCount(d int64) int {
	switch d {
	case -3:
		return 6
	case -4:
		return 4
	default:
		return 2
	}
}

// twist applies one g-twist step to (a,b): D=-3 twists b, D=-4 twists a,
// and every other discriminant scales a by g^2 and b by g^3.
func twist(d int64, a, b, g, n *big.Int) (*big.Int, *big.Int) {
	switch d {
	case -3:
		return a, arith.MulMod(b, g, n)
	case -4:
		return arith.MulMod(a, g, n), b
	default:
		g2 := arith.MulMod(g, g, n)
		g3 := arith.MulMod(g2, g, n)
		return arith.MulMod(a, g2, n), arith.MulMod(b, g3, n)
	}
}

// SelectPoint picks a random small-x point on y^2 = x^3 + ax + b mod N,
// retrying on non-residue Q or on y=0.
func SelectPoint(c *Curve, rs *arith.RandSource) (*Point, error) {
	for {
		x := new(big.Int).SetUint64(uint64(rs.Uint32()))
		x.Mod(x, c.N)
		q := arith.AddMod(arith.AddMod(arith.MulMod(arith.MulMod(x, x, c.N), x, c.N), arith.MulMod(c.A, x, c.N), c.N), c.B, c.N)
		if arith.Jacobi(q, c.N) != 1 {
			continue
		}
		y := arith.SqrtMod(q, c.N)
		if y == nil || y.Sign() == 0 {
			continue
		}
		return &Point{curve: c, x: x, y: y}, nil
	}
}

// CheckPoint verifies the curve-order split: with P=(x,y), compute
// P2 = [m/q]P; a non-invertible denominator proves N composite. If
// P2 is the identity the point is useless (caller should retry with a
// fresh point). Otherwise P1 = [q]P2 must be the identity for P to be
// accepted as the witness.
func CheckPoint(p *Point, m, q *big.Int) (accepted bool, err error) {
	mOverQ := new(big.Int).Div(m, q)
	p2, err := p.ScalarMult(mOverQ)
	if err != nil {
		return false, ErrCompositeWitness
	}
	if p2.IsIdentity() {
		return false, nil
	}
	p1, err := p2.ScalarMult(q)
	if err != nil {
		return false, ErrCompositeWitness
	}
	return p1.IsIdentity(), nil
}

// Builder drives the full witness-construction pipeline: curve-parameter selection,
// non-residue search, unity twisting, and point search/check, for one
// class-polynomial root of one discriminant.
type Builder struct {
	RandSource *arith.RandSource
}

// NewBuilder returns a Builder using the given PRNG, or the package-level
// default if rs is nil.
func NewBuilder(rs *arith.RandSource) *Builder {
	if rs == nil {
		rs = arith.DefaultSource()
	}
	return &Builder{RandSource: rs}
}

// TryRoot attempts to build a witness curve and point for discriminant d's
// class-polynomial root j, modulus n, order candidate m and its prime
// factor q, spending at most maxAttempts total point selections across all
// unity twists. Returns the accepted curve, point, and a,b used for the
// certificate line, or ErrCompositeWitness / ErrPointsExhausted.
func (bld *Builder) TryRoot(d int64, j, n, m, q *big.Int, maxAttempts int) (*Curve, *Point, error) {
	a, b, err := SelectCurveParams(d, j, n)
	if err != nil {
		return nil, nil, err
	}
	g, err := FindNonResidue(d, n, bld.RandSource)
	if err != nil {
		return nil, nil, err
	}

	unity := unityCount(d)
	attemptsPerTwist := maxAttempts / unity
	if attemptsPerTwist < 1 {
		attemptsPerTwist = 1
	}

	spent := 0
	for i := 0; i < unity && spent < maxAttempts; i++ {
		if i > 0 {
			a, b = twist(d, a, b, g, n)
		}
		curve, err := NewCurve(a, b, n)
		if err != nil {
			return nil, nil, ErrCompositeWitness
		}
		for attempt := 0; attempt < attemptsPerTwist && spent < maxAttempts; attempt++ {
			spent++
			p, err := SelectPoint(curve, bld.RandSource)
			if err != nil {
				return nil, nil, err
			}
			accepted, err := CheckPoint(p, m, q)
			if err != nil {
				return nil, nil, err
			}
			if accepted {
				return curve, p, nil
			}
		}
	}
	return nil, nil, ErrPointsExhausted
}
