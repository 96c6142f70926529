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
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
)

// rhoBlockSize is the batched-gcd block size for Brent's variant of
// Pollard rho.
const rhoBlockSize = 256

// PollardRhoBrent implements Pollard rho with Brent's cycle-finding
// improvement: x <- x^2+a mod n, with gcds batched over blocks of
// rhoBlockSize iterations and saved-state rollback when a batch's gcd
// equals n (meaning the block stepped over more than one cycle boundary).
func PollardRhoBrent(n *big.Int, maxIterations int, rs *arith.RandSource) *big.Int {
	if rs == nil {
		rs = arith.DefaultSource()
	}
	a := rs.RandomPositiveInt(n)
	x0 := rs.RandomPositiveInt(n)

	f := func(x *big.Int) *big.Int {
		return arith.AddMod(arith.MulMod(x, x, n), a, n)
	}

	y := new(big.Int).Set(x0)
	r := int64(1)
	q := big.NewInt(1)

	iterations := 0
	for maxIterations <= 0 || iterations < maxIterations {
		x := new(big.Int).Set(y)
		for i := int64(0); i < r; i++ {
			y = f(y)
		}

		var k int64
		for k < r && (maxIterations <= 0 || iterations < maxIterations) {
			ys := new(big.Int).Set(y)
			blockEnd := k + rhoBlockSize
			if blockEnd > r {
				blockEnd = r
			}
			for ; k < blockEnd; k++ {
				y = f(y)
				diff := new(big.Int).Sub(x, y)
				diff.Abs(diff)
				q = arith.MulMod(q, diff, n)
				iterations++
			}
			g := gcd(q, n)
			if g.Cmp(big1) != 0 {
				if validFactor(g, n) {
					return g
				}
				// g == n: the block jumped past the cycle; roll back to ys
				// and search one step at a time.
				return rhoRollback(x, ys, f, n)
			}
		}
		r *= 2
	}
	return nil
}

func rhoRollback(x, start *big.Int, f func(*big.Int) *big.Int, n *big.Int) *big.Int {
	y := new(big.Int).Set(start)
	for i := 0; i < rhoBlockSize; i++ {
		y = f(y)
		diff := new(big.Int).Sub(x, y)
		diff.Abs(diff)
		if diff.Sign() == 0 {
			return nil
		}
		g := gcd(diff, n)
		if validFactor(g, n) {
			return g
		}
	}
	return nil
}
