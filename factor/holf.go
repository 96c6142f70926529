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

import "math/big"

// HOLF implements Hart's "one-line factorization" auxiliary: for
// increasing multipliers k, test whether k*n is close enough to a perfect
// square that ceil(sqrt(k*n))^2 - k*n is itself a perfect square, giving
// n = gcd(s-r, n) * gcd(s+r, n) via Fermat's difference-of-squares
// identity. Effective against factors close in magnitude, a case the
// other algorithms in this package converge on slowly.
func HOLF(n *big.Int, maxK int64) *big.Int {
	for k := int64(1); k <= maxK; k++ {
		kn := new(big.Int).Mul(n, big.NewInt(k))
		s := new(big.Int).Sqrt(kn)
		if new(big.Int).Mul(s, s).Cmp(kn) != 0 {
			s.Add(s, big1)
		}
		s2 := new(big.Int).Mul(s, s)
		rSq := new(big.Int).Sub(s2, kn)
		r := new(big.Int).Sqrt(rSq)
		if new(big.Int).Mul(r, r).Cmp(rSq) != 0 {
			continue
		}
		f := gcd(new(big.Int).Sub(s, r), n)
		if validFactor(f, n) {
			return f
		}
	}
	return nil
}
