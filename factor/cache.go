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

// DefaultCacheCap is the default maximum memoized-factor count.
const DefaultCacheCap = 1000

// Cache is the bounded, memoized set of factors found while escalating
// through FindLargeFactor across stages. Once full, adding a new factor
// evicts the oldest one rather than growing without bound.
type Cache struct {
	cap     int
	order   []string
	factors map[string]*big.Int
}

// NewCache creates a Cache bounded at capacity entries. capacity <= 0
// means DefaultCacheCap.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCap
	}
	return &Cache{
		cap:     capacity,
		factors: make(map[string]*big.Int, capacity),
	}
}

// Add records f as a known factor, evicting the oldest entry if the cache
// is full. No-op if f is already present.
func (c *Cache) Add(f *big.Int) {
	key := f.String()
	if _, ok := c.factors[key]; ok {
		return
	}
	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.factors, oldest)
	}
	c.factors[key] = new(big.Int).Set(f)
	c.order = append(c.order, key)
}

// TryDivides scans the cache for an entry that divides m and returns it,
// or nil if none does. This is the "retry the memoized factor cache
// first" step the pipeline takes at every non-stage-1 entry.
func (c *Cache) TryDivides(m *big.Int) *big.Int {
	for _, key := range c.order {
		f := c.factors[key]
		if f.Cmp(m) >= 0 {
			continue
		}
		if new(big.Int).Mod(m, f).Sign() == 0 {
			return f
		}
	}
	return nil
}

// Len returns the number of factors currently memoized.
func (c *Cache) Len() int {
	return len(c.order)
}
