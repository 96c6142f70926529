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

package classpoly

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toI64(xs []*big.Int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = x.Int64()
	}
	return out
}

func TestRootsModNQuadratic(t *testing.T) {
	// (x-2)(x-5) = x^2 - 7x + 10, roots {2,5} mod 13.
	coeffs := []*big.Int{big.NewInt(10), big.NewInt(-7), big.NewInt(1)}
	roots, err := RootsModN(coeffs, big.NewInt(13))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{2, 5}, toI64(roots))
}

func TestRootsModNCubic(t *testing.T) {
	// (x-1)(x-2)(x-3) = x^3 - 6x^2 + 11x - 6, roots {1,2,3} mod 7.
	coeffs := []*big.Int{big.NewInt(-6), big.NewInt(11), big.NewInt(-6), big.NewInt(1)}
	roots, err := RootsModN(coeffs, big.NewInt(7))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2, 3}, toI64(roots))
}

func TestRootsModNLinear(t *testing.T) {
	// x - 5, root {5} mod 97.
	coeffs := []*big.Int{big.NewInt(-5), big.NewInt(1)}
	roots, err := RootsModN(coeffs, big.NewInt(97))
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, toI64(roots))
}
