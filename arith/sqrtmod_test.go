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

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSqrtModPrimes(t *testing.T) {
	primes := []int64{13, 17, 97, 10007, 1000003}
	for _, p := range primes {
		n := big.NewInt(p)
		for q := int64(2); q < 50; q++ {
			qb := big.NewInt(q)
			if Jacobi(qb, n) != 1 {
				continue
			}
			y := SqrtMod(qb, n)
			y2 := MulMod(y, y, n)
			assert.Equal(t, new(big.Int).Mod(qb, n), y2, "sqrtmod(%d,%d)", q, p)
		}
	}
}

func TestCornacchiaKnownSolution(t *testing.T) {
	// D = -3, N = 7: 4N = 28 = u^2 + 3v^2 => u=5, v=1 (25+3=28) or u=1,v=3 (1+27=28).
	d := big.NewInt(-3)
	n := big.NewInt(7)
	u, v, ok := ModifiedCornacchia(d, n)
	if assert.True(t, ok) {
		check := new(big.Int).Mul(u, u)
		dv2 := new(big.Int).Mul(v, v)
		dv2.Mul(dv2, big.NewInt(3))
		check.Add(check, dv2)
		assert.Equal(t, big.NewInt(28), check)
	}
}

func TestCornacchiaNoSolution(t *testing.T) {
	// jacobi(-3,5) = jacobi(2,5) = -1, so 4*5 = u^2 + 3v^2 has no solution.
	d := big.NewInt(-3)
	n := big.NewInt(5)
	_, _, ok := ModifiedCornacchia(d, n)
	assert.False(t, ok)
}
