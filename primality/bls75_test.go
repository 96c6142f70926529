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

package primality

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBLS75NMinus1(t *testing.T) {
	// N = 65537, the Fermat prime F4: N-1 = 65536 = 2^16, fully factored
	// and far larger than sqrt(N) ~= 256.
	n := big.NewInt(65537)
	factors := []*big.Int{big.NewInt(2)}

	cert, ok, err := BLS75NMinus1(n, factors, 64, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, cert)
	assert.True(t, cert.Verify())
}

func TestBLS75NMinus1InsufficientFactorization(t *testing.T) {
	// N = 1000000007, N-1 = 1000000006 = 2 * 500000003; supplying only the
	// factor 2 leaves F = 2, far short of sqrt(N).
	n := big.NewInt(1000000007)
	factors := []*big.Int{big.NewInt(2)}

	_, ok, err := BLS75NMinus1(n, factors, 64, false)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrFactoredPortionTooSmall)
}
