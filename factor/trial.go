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

// DefaultTrialBound is stage 0's trial-division bound.
const DefaultTrialBound = 3000

var trialPrimes = sieveUpTo(DefaultTrialBound)

func sieveUpTo(limit int) []int64 {
	sieve := make([]bool, limit+1)
	var primes []int64
	for i := 2; i <= limit; i++ {
		if sieve[i] {
			continue
		}
		primes = append(primes, int64(i))
		for j := i * i; j <= limit; j += i {
			sieve[j] = true
		}
	}
	return primes
}

// TrialDivide trial-divides n by every prime up to bound and returns the
// first factor found. bound <= 0 means DefaultTrialBound.
func TrialDivide(n *big.Int, bound int) *big.Int {
	if bound <= 0 {
		bound = DefaultTrialBound
	}
	for _, p := range trialPrimes {
		if p > int64(bound) {
			break
		}
		pb := big.NewInt(p)
		if pb.Cmp(n) >= 0 {
			break
		}
		if new(big.Int).Mod(n, pb).Sign() == 0 {
			return pb
		}
	}
	return nil
}

// TrialDivideAll strips every prime factor up to bound from n, returning
// the stripped factors (with multiplicity) and the reduced remainder. A
// remainder that has shrunk to a single prime up to bound is left as the
// remainder rather than stripped to 1.
func TrialDivideAll(n *big.Int, bound int) (factors []*big.Int, remainder *big.Int) {
	if bound <= 0 {
		bound = DefaultTrialBound
	}
	remainder = new(big.Int).Set(n)
	for _, p := range trialPrimes {
		if p > int64(bound) {
			break
		}
		pb := big.NewInt(p)
		for remainder.Cmp(pb) > 0 && new(big.Int).Mod(remainder, pb).Sign() == 0 {
			remainder.Div(remainder, pb)
			factors = append(factors, pb)
		}
	}
	return factors, remainder
}
