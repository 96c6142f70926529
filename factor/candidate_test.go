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
)

func TestFindLargeFactorReturnsNoneBelowMinfactor(t *testing.T) {
	m := big.NewInt(97)
	minfactor := big.NewInt(1000)
	res := FindLargeFactor(m, minfactor, 1, nil, nil)
	assert.Equal(t, None, res.Outcome)
}

func TestFindLargeFactorFindsPrimeDirectly(t *testing.T) {
	m := big.NewInt(104729) // prime
	minfactor := big.NewInt(100)
	res := FindLargeFactor(m, minfactor, 1, nil, nil)
	require.Equal(t, Found, res.Outcome)
	assert.Equal(t, m, res.Q)
}

func TestFindLargeFactorSplitsComposite(t *testing.T) {
	// 8051 = 83*97, both well above minfactor=10.
	m := big.NewInt(8051)
	minfactor := big.NewInt(10)
	res := FindLargeFactor(m, minfactor, 1, NewCache(10), nil)
	require.NotEqual(t, None, res.Outcome)
	if res.Outcome == Found {
		assert.True(t, res.Q.Cmp(minfactor) > 0)
	}
}
