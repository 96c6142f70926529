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
)

func TestTrialDivide(t *testing.T) {
	f := TrialDivide(big.NewInt(91), 0) // 91 = 7 * 13
	assert.NotNil(t, f)
	assert.Equal(t, int64(7), f.Int64())

	assert.Nil(t, TrialDivide(big.NewInt(104729), 0)) // prime, no small factor
}

func TestTrialDivideAll(t *testing.T) {
	n := big.NewInt(2 * 2 * 3 * 5 * 104729)
	factors, remainder := TrialDivideAll(n, 0)
	assert.ElementsMatch(t, []int64{2, 2, 3, 5}, toInt64s(factors))
	assert.Equal(t, big.NewInt(104729), remainder)
}

func toInt64s(xs []*big.Int) []int64 {
	out := make([]int64, len(xs))
	for i, x := range xs {
		out[i] = x.Int64()
	}
	return out
}
