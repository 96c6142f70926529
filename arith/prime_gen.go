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
	"errors"
	"math/big"
)

// ErrSmallPrimeBits is returned if the requested prime has fewer than 3 bits.
var ErrSmallPrimeBits = errors.New("arith: prime must have at least 3 bits")

// Batches of small primes whose products each fit a uint64, so one big
// division per batch replaces a division per prime when sieving a
// candidate.
var (
	sievePrimes = [][]uint64{
		{
			3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
		},
		{
			59, 61, 67, 71, 73, 79, 83, 89, 97,
		},
		{
			101, 103, 107, 109, 113, 127, 131, 137, 139,
		},
		{
			149, 151, 157, 163, 167, 173, 179, 181,
		},
		{
			191, 193, 197, 199, 211, 223, 227, 229,
		},
		{
			233, 239, 241, 251, 257, 263, 269,
		},
		{
			271, 277, 281, 283, 293, 307, 311,
		},
	}

	sieveProducts = []*big.Int{
		new(big.Int).SetUint64(16294579238595022365),
		new(big.Int).SetUint64(70746471270782959),
		new(big.Int).SetUint64(4343678784233766587),
		new(big.Int).SetUint64(538945254996352681),
		new(big.Int).SetUint64(3534749459194562711),
		new(big.Int).SetUint64(61247129307885343),
		new(big.Int).SetUint64(166996819598798201),
	}
)

// RandomPrime returns a random probable prime with exactly bits bits,
// drawn from src. It sieves candidates in steps of 2 against batched
// small-prime products before paying for a full BPSW-grade check, the
// usual combined-sieve trick for prime generation. Deterministic given a
// seeded src, which is what the tests that build fixed prime moduli rely
// on.
func RandomPrime(src *RandSource, bits int) (*big.Int, error) {
	if bits < 3 {
		return nil, ErrSmallPrimeBits
	}
	const stepBound = 1024
	for {
		p := new(big.Int).SetBit(big0, bits-1, 1)
		p.Add(p, src.BigInt(new(big.Int).SetBit(big0, bits-1, 1)))
		p.SetBit(p, 0, 1)

	NextDelta:
		for delta := uint64(0); delta < stepBound; delta += 2 {
			candidate := new(big.Int).Add(p, new(big.Int).SetUint64(delta))
			if candidate.BitLen() != bits {
				break
			}
			for i := range sieveProducts {
				if !coprimeToBatch(candidate, sieveProducts[i], sievePrimes[i]) {
					continue NextDelta
				}
			}
			if candidate.ProbablyPrime(20) {
				return candidate, nil
			}
		}
	}
}

// coprimeToBatch reports whether m shares no factor with the given batch
// of small primes, using a single big division against their product.
func coprimeToBatch(m *big.Int, product *big.Int, primes []uint64) bool {
	mm := new(big.Int).Mod(m, product).Uint64()
	for _, prime := range primes {
		if mm%prime == 0 {
			// m may be the sieve prime itself when bits is tiny.
			return m.Cmp(new(big.Int).SetUint64(prime)) == 0
		}
	}
	return true
}
