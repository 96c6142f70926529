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

	"github.com/atkin-morain/ecpp/arith"
)

// Outcome is FindLargeFactor's three-valued result.
type Outcome int

const (
	// None means m <= minfactor: no large factor can exist, the
	// recursion should abandon this m.
	None Outcome = iota
	// Found means q > minfactor, prime, was isolated.
	Found
	// Partial means m is still composite and > minfactor; the caller
	// should retry at stage+1 with the returned reduced m.
	Partial
	// Bug means a factoring algorithm violated its contract and handed
	// back f in {1, m}. The caller must halt the proof: this signals a
	// defect in this package, not a property of m.
	Bug
)

// Result carries FindLargeFactor's output.
type Result struct {
	Outcome Outcome
	Q       *big.Int // valid when Outcome == Found
	M       *big.Int // reduced m, valid when Outcome == Partial
}

// FindLargeFactor implements the escalating candidate-factor pipeline:
// trial-divide, then gate increasingly expensive algorithms by
// stage, retrying the memoized cache first at every non-stage-1 entry.
// rs feeds the randomized algorithms (rho bases, ECM curve parameters);
// nil falls back to the shared default source.
func FindLargeFactor(m, minfactor *big.Int, stage int, cache *Cache, rs *arith.RandSource) Result {
	if cache == nil {
		cache = NewCache(DefaultCacheCap)
	}
	if rs == nil {
		rs = arith.DefaultSource()
	}

	mCur := new(big.Int).Set(m)

	_, mCur = TrialDivideAll(mCur, DefaultTrialBound)

	for {
		if mCur.Cmp(minfactor) <= 0 {
			return Result{Outcome: None}
		}
		if isProbablePrime(mCur) {
			return Result{Outcome: Found, Q: mCur}
		}

		var f *big.Int
		if stage > 1 {
			f = cache.TryDivides(mCur)
		}
		if f == nil {
			f = findFactorAtStage(mCur, stage, rs)
		}

		if f == nil {
			return Result{Outcome: Partial, M: mCur}
		}
		if !validFactor(f, mCur) {
			return Result{Outcome: Bug}
		}

		if stage > 1 {
			cache.Add(f)
		}

		if isProbablePrime(f) && f.Cmp(minfactor) > 0 {
			return Result{Outcome: Found, Q: f}
		}

		mCur = new(big.Int).Div(mCur, f)
	}
}

// findFactorAtStage runs the algorithms this stage unlocks, in order, returning the first factor any of them finds.
func findFactorAtStage(m *big.Int, stage int, rs *arith.RandSource) *big.Int {
	bits := int64(m.BitLen())
	baseB1 := 300 + 3*bits

	// Small m is cheap enough to also try the auxiliaries (HOLF, SQUFOF)
	// alongside the staged p-1/ECM schedule; Pollard rho runs for every m.
	// They shine on factors close in size or reachable by a short walk,
	// cases the smoothness-bound algorithms converge on slowly.
	if m.BitLen() <= 256 {
		if f := HOLF(m, 1<<20); f != nil {
			return f
		}
		if f := SQUFOF(m); f != nil {
			return f
		}
	}
	if f := PollardRhoBrent(m, 1<<22, rs); f != nil {
		return f
	}

	switch {
	case stage <= 1:
		if f := PollardPMinus1(m, baseB1, 10*baseB1, rs); f != nil {
			return f
		}
	case stage == 2:
		if f := PollardPMinus1(m, 5*baseB1, 100*baseB1, rs); f != nil {
			return f
		}
		if f := ECM(m, 250, 4, rs); f != nil {
			return f
		}
	case stage == 3:
		if f := PollardPMinus1(m, 25*baseB1, 500*baseB1, rs); f != nil {
			return f
		}
		if f := ECM(m, 500, 4, rs); f != nil {
			return f
		}
	case stage == 4:
		if f := PollardPMinus1(m, 200*baseB1, 4000*baseB1, rs); f != nil {
			return f
		}
		if f := ECM(m, 1000, 10, rs); f != nil {
			return f
		}
	default:
		gap := int64(stage - 4)
		b1 := 8000 * gap * gap * gap
		curves := 5 + stage
		// No point escalating past the smoothness bound the literature
		// recommends for numbers of m's size.
		if recB1, recCurves := ecmParamsFor(m); b1 > recB1 {
			b1, curves = recB1, recCurves
		}
		if f := ECM(m, b1, curves, rs); f != nil {
			return f
		}
	}
	return nil
}
