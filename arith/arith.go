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

// Package arith wraps math/big with the modular-arithmetic, square-root,
// and quadratic-form primitives the ECPP recursion needs: mulmod, modular
// inverse, Jacobi symbol, integer roots, and Cornacchia's algorithm for
// u² + |D|v² = 4N.
package arith

import (
	"errors"
	"math/big"
)

var (
	// ErrNotInvertible is returned if a value has no inverse modulo m.
	ErrNotInvertible = errors.New("arith: value is not invertible modulo m")
	// ErrNegativeModulus is returned if a modulus is not positive.
	ErrNegativeModulus = errors.New("arith: modulus must be positive")
	// ErrNoSquareRoot is returned if sqrtmod's preconditions are violated.
	ErrNoSquareRoot = errors.New("arith: jacobi(a,n) != 1")
	// ErrNotFundamentalDiscriminant is returned if D does not satisfy the
	// congruence conditions a fundamental discriminant must satisfy.
	ErrNotFundamentalDiscriminant = errors.New("arith: D is not a valid discriminant")

	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big3 = big.NewInt(3)
	big4 = big.NewInt(4)
)

// Gcd returns the greatest common divisor of a and b via math/big's
// Euclidean-algorithm implementation.
func Gcd(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// IsOne reports whether x == 1.
func IsOne(x *big.Int) bool {
	return x.Cmp(big1) == 0
}

// IsZero reports whether x == 0.
func IsZero(x *big.Int) bool {
	return x.Sign() == 0
}
