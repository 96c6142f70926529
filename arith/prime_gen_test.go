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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPrimeBitLengthAndPrimality(t *testing.T) {
	src := NewRandSource(1)
	for _, bits := range []int{16, 64, 128} {
		p, err := RandomPrime(src, bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))
	}
}

func TestRandomPrimeDeterministicForFixedSeed(t *testing.T) {
	p1, err := RandomPrime(NewRandSource(42), 96)
	require.NoError(t, err)
	p2, err := RandomPrime(NewRandSource(42), 96)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestRandomPrimeRejectsTinyBitCount(t *testing.T) {
	_, err := RandomPrime(NewRandSource(1), 2)
	assert.ErrorIs(t, err, ErrSmallPrimeBits)
}
