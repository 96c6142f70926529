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

// Package factor implements the factoring toolbox the ECPP candidate
// finder escalates through: trial division, two-stage Pollard p-1,
// Pollard rho/Brent, ECM (affine coordinates, not projective), SQUFOF,
// and HOLF. Every entry point
// takes n and returns either a non-trivial factor (1 < f < n) or failure
// — none of them ever hand back f in {1, n}.
package factor

import (
	"errors"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
	"github.com/atkin-morain/ecpp/primality"
)

// ErrTrivialFactor signals an algorithm produced f in {1, n}: a bug in
// that algorithm, not a property of n, since every algorithm here must
// retry internally rather than surface a trivial split.
var ErrTrivialFactor = errors.New("factor: algorithm returned a trivial factor")

var (
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
)

// isProbablePrime is the single BPSW call every algorithm in this package
// uses to recognize when it can stop early.
func isProbablePrime(n *big.Int) bool {
	r := primality.IsProbablePrime(n)
	return r == primality.Proven || r == primality.Likely
}

// validFactor reports whether f is a non-trivial factor of n.
func validFactor(f, n *big.Int) bool {
	if f == nil {
		return false
	}
	if f.Cmp(big1) <= 0 || f.Cmp(n) >= 0 {
		return false
	}
	return new(big.Int).Mod(n, f).Sign() == 0
}

func gcd(a, b *big.Int) *big.Int {
	return arith.Gcd(a, b)
}
