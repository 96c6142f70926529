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

import "math/big"

// Jacobi returns the Jacobi symbol (a/n). n must be odd and positive; a
// may be any integer. Panics on an even or non-positive n: that is a
// caller bug, not a property of the number under test.
func Jacobi(a, n *big.Int) int {
	if n.Sign() <= 0 || n.Bit(0) == 0 {
		panic("arith: Jacobi requires an odd, positive modulus")
	}
	return big.Jacobi(a, n)
}
