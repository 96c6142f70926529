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

package ecpp

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/atkin-morain/ecpp/arith"
	"github.com/atkin-morain/ecpp/classpoly"
	"github.com/atkin-morain/ecpp/curve"
	"github.com/atkin-morain/ecpp/factor"
	"github.com/atkin-morain/ecpp/logger"
	"github.com/atkin-morain/ecpp/primality"
)

// Result is the three-valued outcome of a proof attempt.
type Result int

const (
	// Composite means N was proven composite (a witness was found).
	Composite Result = iota
	// Unresolved means every discriminant at every stage was exhausted
	// without a decision; N is "likely prime" but not certified.
	Unresolved
	// Proven means a full certificate chain was built.
	Proven
)

// String renders the result the way diagnostic output names it.
func (r Result) String() string {
	switch r {
	case Composite:
		return "composite"
	case Unresolved:
		return "unresolved"
	case Proven:
		return "proven"
	default:
		return "invalid"
	}
}

// ErrInvariantBroken is returned when an internal routine violates its
// own contract: a factor routine handing back f in {1, n}, a certified q
// outside its admissible range, or a table-supported class polynomial
// reducing to zero roots mod N. It indicates a bug in this library (or
// its table data), not a property of N, and any partial certificate must
// be discarded.
var ErrInvariantBroken = errors.New("ecpp: fatal invariant break")

// Prove runs the ECPP recursion on N and returns the result plus, when
// Proven, the full certificate chain. ctx is checked once per recursion
// level for cancellation between otherwise-uninterruptible proof steps;
// no operation suspends mid-step. A non-nil error is always
// ErrInvariantBroken (possibly wrapped) and voids the other two values.
func Prove(ctx context.Context, n *big.Int, cfg *ProofConfig) (Result, *Certificate, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.withDefaults()
	cache := factor.NewCache(cfg.MaxMemoFactors)

	result, lines, err := proveLevel(ctx, n, true, cfg, cache)
	if err != nil {
		return Unresolved, nil, err
	}
	if result != Proven {
		return result, nil, nil
	}
	cert := &Certificate{Lines: lines}
	if cfg.Verbosity >= 1 && len(lines) > 0 {
		logger.Logger().Info("ecpp: proof complete", "N", n, "lines", len(lines), "fingerprint", cert.Fingerprint())
	}
	return Proven, cert, nil
}

// IsProvablePrime runs the probable-primality gate, a couple of extra
// random-base Miller-Rabin rounds, then a cheap BLS75 N-1 attempt
// (worthwhile when N-1 happens to be smooth enough that trial division
// alone factors most of it), and finally falls back to the full ECPP
// recursion.
func IsProvablePrime(ctx context.Context, n *big.Int, cfg *ProofConfig) (Result, *Certificate, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg = cfg.withDefaults()
	gate := primality.IsProbablePrime(n)
	if gate == primality.Composite {
		return Composite, nil, nil
	}
	if gate == primality.Proven {
		return Proven, nil, nil
	}
	// The proving machinery is far slower on a composite than on a prime,
	// so buy extra assurance with a couple of random-base MR rounds first.
	if !primality.MillerRabinRandom(n, 2, cfg.RandSource) {
		return Composite, nil, nil
	}
	if tryBLS75(n) {
		return Proven, nil, nil
	}
	return Prove(ctx, n, cfg)
}

// tryBLS75 attempts the Brillhart-Lehmer-Selfridge N-1 proof using only
// factors of N-1 that trial division surfaces, plus the leftover cofactor
// when the BPSW gate proves it prime. Most N fail the
// factored-portion bound immediately; the attempt costs one pass of small
// divisions, which is cheap next to a single curve construction.
func tryBLS75(n *big.Int) bool {
	nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
	factors, remainder := factor.TrialDivideAll(nMinus1, factor.DefaultTrialBound)
	if remainder.Cmp(big.NewInt(1)) != 0 && primality.IsProbablePrime(remainder) == primality.Proven {
		factors = append(factors, remainder)
	}
	_, ok, err := primality.BLS75NMinus1(n, factors, blsEffort, false)
	return err == nil && ok
}

// blsEffort is the per-factor witness-base budget of the N-1 fallback.
const blsEffort = 20

// discriminantState is the per-D state that lets stage escalation resume
// partially factored candidates instead of restarting them: the
// m-set for a discriminant is built once and its slots are mutated in
// place as FindLargeFactor reports Partial progress, so a stage+1 retry
// resumes from the already-reduced value rather than the original m. The
// certificate line still carries the original m, the curve order.
type discriminantState struct {
	d       int64
	mSet    []*big.Int
	skipped bool
}

func proveLevel(ctx context.Context, n *big.Int, topLevel bool, cfg *ProofConfig, cache *factor.Cache) (Result, []CertificateLine, error) {
	if err := ctx.Err(); err != nil {
		return Unresolved, nil, nil
	}

	gate := primality.IsProbablePrime(n)
	if gate == primality.Composite {
		return Composite, nil, nil
	}
	if gate == primality.Proven {
		return Proven, nil, nil
	}

	stageMax := 1
	if topLevel {
		stageMax = cfg.MaxStage
	}

	minfactor := arith.MinFactor(n)
	degrees := cfg.Table.Degrees()
	states := make([]*discriminantState, 0, len(degrees))
	// origM keeps each discriminant's unreduced m-set: the curve orders
	// that certificate lines carry.
	origM := make([][]*big.Int, 0, len(degrees))

	for stage := 1; stage <= stageMax; stage++ {
		for i, d := range degrees {
			if i >= len(states) {
				st, ok := buildDiscriminantState(d, n)
				if !ok {
					states = append(states, nil)
					origM = append(origM, nil)
					continue
				}
				states = append(states, st)
				origM = append(origM, append([]*big.Int(nil), st.mSet...))
			}
			st := states[i]
			if st == nil || st.skipped {
				continue
			}

			for slot, m := range st.mSet {
				if m == nil || m.Sign() == 0 {
					continue
				}
				res := factor.FindLargeFactor(m, minfactor, stage, cache, cfg.RandSource)
				switch res.Outcome {
				case factor.Bug:
					return Unresolved, nil, fmt.Errorf("%w: %v for m=%v", ErrInvariantBroken, factor.ErrTrivialFactor, m)
				case factor.None:
					st.mSet[slot] = nil
				case factor.Partial:
					st.mSet[slot] = res.M
				case factor.Found:
					st.mSet[slot] = nil
					q := res.Q
					m = origM[i][slot]
					if q.Cmp(minfactor) <= 0 || q.Cmp(m) >= 0 {
						return Unresolved, nil, fmt.Errorf("%w: q=%v outside (minfactor, m)", ErrInvariantBroken, q)
					}

					subResult, subLines, err := proveLevel(ctx, q, false, cfg, cache)
					if err != nil {
						return Unresolved, nil, err
					}
					switch subResult {
					case Composite:
						return Composite, nil, nil
					case Unresolved:
						continue
					case Proven:
						line, ok, err := buildCertificateLine(st.d, n, m, q, cfg)
						if errors.Is(err, ErrInvariantBroken) {
							return Unresolved, nil, err
						}
						if err != nil {
							return Composite, nil, nil
						}
						if !ok {
							if cfg.Verbosity >= 2 {
								logger.Logger().Debug("ecpp: discriminant invalidated", "N", n, "D", st.d)
							}
							st.skipped = true
							continue
						}
						if cfg.Verbosity >= 2 {
							logger.Logger().Debug("ecpp: proved level", "N", n, "D", st.d, "q", q)
						}
						return Proven, append([]CertificateLine{line}, subLines...), nil
					}
				}
			}
		}
		if topLevel && cfg.Verbosity >= 1 && stage < stageMax {
			logger.Logger().Info("ecpp: escalating factoring stage", "N", n, "stage", stage+1)
		}
	}
	return Unresolved, nil, nil
}

// buildDiscriminantState evaluates the jacobi/Cornacchia preconditions for
// D and, if they hold, builds its m-set.
func buildDiscriminantState(d int64, n *big.Int) (*discriminantState, bool) {
	if arith.Jacobi(big.NewInt(d), n) != 1 {
		return nil, false
	}
	u, v, ok := arith.ModifiedCornacchia(big.NewInt(d), n)
	if !ok {
		return nil, false
	}
	return &discriminantState{d: d, mSet: buildMSet(d, n, u, v)}, true
}

// buildMSet constructs the candidate curve orders for (D, N, u, v): the
// two base values N+1±u always present, plus D-specific extras for D=-3
// and D=-4. A candidate that is itself probable-prime is useless here (it
// leaves no room for a smaller certified factor) and its slot is zeroed.
func buildMSet(d int64, n, u, v *big.Int) []*big.Int {
	np1 := new(big.Int).Add(n, big.NewInt(1))
	candidates := []*big.Int{
		new(big.Int).Add(np1, u),
		new(big.Int).Sub(np1, u),
	}

	switch d {
	case -3:
		threeV := new(big.Int).Mul(big.NewInt(3), v)
		for _, sign := range []*big.Int{new(big.Int).Add(u, threeV), new(big.Int).Sub(u, threeV)} {
			if sign.Bit(0) != 0 {
				continue // not divisible by 2
			}
			half := new(big.Int).Rsh(new(big.Int).Abs(sign), 1)
			if sign.Sign() < 0 {
				half.Neg(half)
			}
			candidates = append(candidates, new(big.Int).Add(np1, half), new(big.Int).Sub(np1, half))
		}
	case -4:
		twoV := new(big.Int).Mul(big.NewInt(2), v)
		candidates = append(candidates, new(big.Int).Add(np1, twoV), new(big.Int).Sub(np1, twoV))
	}

	out := make([]*big.Int, len(candidates))
	for i, m := range candidates {
		if m.Sign() <= 0 {
			continue
		}
		if primality.IsProbablePrime(m) != primality.Composite {
			continue // zeroed: primes are not retained in the m-set
		}
		out[i] = m
	}
	return out
}

// buildCertificateLine runs the full curve-construction step for
// discriminant d's class polynomial. It returns (line, true, nil) on
// success, (_, false, nil) if every root's point-search budget is
// exhausted (a soft skip: the caller marks D permanently skipped and
// tries the next one), or (_, false, curve.ErrCompositeWitness) when the
// builder itself proves N composite, which the caller must propagate as
// an abort of the whole proof rather than a per-D skip. A zero-root
// reduction mod N of a table-supported polynomial is neither: the driver
// only reaches this step with jacobi(D,N)=1 already established, where CM
// theory guarantees a root for any behaving modulus, so zero roots means
// the table data or the root finder is defective and the proof must halt
// on ErrInvariantBroken rather than render a verdict about N.
func buildCertificateLine(d int64, n, m, q *big.Int, cfg *ProofConfig) (CertificateLine, bool, error) {
	entry, ok := cfg.Table.Lookup(d)
	if !ok {
		return CertificateLine{}, false, nil
	}
	roots, err := classpoly.RootsModN(entry.Coeffs, n)
	if err != nil {
		return CertificateLine{}, false, nil
	}
	if len(roots) == 0 {
		return CertificateLine{}, false, fmt.Errorf("%w: zero roots mod N for D=%d", ErrInvariantBroken, d)
	}

	maxAttempts := curve.MaxAttempts(len(roots))
	bld := curve.NewBuilder(cfg.RandSource)
	for _, r := range roots {
		j := r
		if entry.Kind == classpoly.Weber {
			jj, ok := classpoly.WeberToHilbert(d, r, n)
			if !ok {
				continue
			}
			j = jj
		}
		c, p, err := bld.TryRoot(d, j, n, m, q, maxAttempts)
		if errors.Is(err, curve.ErrPointsExhausted) {
			continue
		}
		if err != nil {
			return CertificateLine{}, false, curve.ErrCompositeWitness
		}
		return CertificateLine{N: n, A: c.A, B: c.B, M: m, Q: q, Px: p.X(), Py: p.Y()}, true, nil
	}
	return CertificateLine{}, false, nil
}
