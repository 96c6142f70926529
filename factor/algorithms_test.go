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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atkin-morain/ecpp/arith"
)

// n8051 = 83 * 97: small enough to exercise every algorithm quickly, with
// a 3-smooth (97-1 = 96 = 2^5*3) and moderately smooth (83-1 = 82 = 2*41)
// p-1, so Pollard p-1 at a modest B1/B2 is expected to split it.
var n8051 = big.NewInt(8051)

func assertValidFactorOf(t *testing.T, f, n *big.Int) {
	t.Helper()
	require.NotNil(t, f)
	assert.True(t, f.Cmp(big.NewInt(1)) > 0 && f.Cmp(n) < 0)
	assert.Equal(t, int64(0), new(big.Int).Mod(n, f).Int64())
}

func TestPollardPMinus1FindsSmoothFactor(t *testing.T) {
	f := PollardPMinus1(n8051, 100, 1000, arith.NewRandSource(1))
	assertValidFactorOf(t, f, n8051)
}

func TestPollardRhoBrentFindsFactor(t *testing.T) {
	var f *big.Int
	for seed := int64(1); seed <= 20 && f == nil; seed++ {
		f = PollardRhoBrent(n8051, 1<<16, arith.NewRandSource(seed))
	}
	assertValidFactorOf(t, f, n8051)
}

func TestECMFindsFactor(t *testing.T) {
	var f *big.Int
	for seed := int64(1); seed <= 10 && f == nil; seed++ {
		f = ECM(n8051, 200, 40, arith.NewRandSource(seed))
	}
	assertValidFactorOf(t, f, n8051)
}

func TestSQUFOFFindsFactor(t *testing.T) {
	f := SQUFOF(n8051)
	assertValidFactorOf(t, f, n8051)
}

func TestHOLFFindsFactor(t *testing.T) {
	// 8051 = 83*97; sqrt(8051) ~ 89.7, ceil^2 - n = 90^2-8051 = 49 = 7^2,
	// so k=1 already yields a Fermat-style difference of squares.
	f := HOLF(n8051, 1000)
	assertValidFactorOf(t, f, n8051)
}
