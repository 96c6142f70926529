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

// Package ecpp implements the Atkin-Morain elliptic curve primality
// proving recursion: the top-level entry points Prove and
// IsProvablePrime, the certificate type and its wire format, and the
// state machine that descends through discriminants and candidate
// factors down to a base case the probable-primality gate decides
// outright.
package ecpp

import (
	"github.com/atkin-morain/ecpp/arith"
	"github.com/atkin-morain/ecpp/classpoly"
)

const (
	// DefaultMaxStage is the top-level factoring-stage ceiling.
	DefaultMaxStage = 20
	// DefaultMaxMemoFactors bounds the per-proof factor cache.
	DefaultMaxMemoFactors = 1000
)

// ProofConfig threads every piece of configurable state through the
// recursion explicitly; the library keeps no module-level mutable state
// beyond the default PRNG.
type ProofConfig struct {
	// Verbosity is 0..3; it only affects diagnostic logging.
	Verbosity int
	// MaxStage bounds the top-level stage-escalation loop.
	MaxStage int
	// MaxMemoFactors bounds the factor cache's capacity.
	MaxMemoFactors int
	// RandSource is the PRNG threaded to the driver's randomized steps
	// (random-base MR rounds, curve non-residue search, point selection,
	// p-1/ECM/rho parameters). Class-polynomial root splitting and the
	// BLS75 witness bases draw from arith.DefaultSource instead.
	RandSource *arith.RandSource
	// Table supplies class polynomials by discriminant.
	Table classpoly.Table
}

// DefaultConfig returns a ProofConfig with the default bounds, the
// package-level default PRNG (randomly seeded on first use), and the built-in
// class-polynomial table.
func DefaultConfig() *ProofConfig {
	return &ProofConfig{
		Verbosity:      0,
		MaxStage:       DefaultMaxStage,
		MaxMemoFactors: DefaultMaxMemoFactors,
		RandSource:     arith.DefaultSource(),
		Table:          classpoly.NewBuiltinTable(),
	}
}

func (cfg *ProofConfig) withDefaults() *ProofConfig {
	out := *cfg
	if out.MaxStage <= 0 {
		out.MaxStage = DefaultMaxStage
	}
	if out.MaxMemoFactors <= 0 {
		out.MaxMemoFactors = DefaultMaxMemoFactors
	}
	if out.RandSource == nil {
		out.RandSource = arith.DefaultSource()
	}
	if out.Table == nil {
		out.Table = classpoly.NewBuiltinTable()
	}
	return &out
}
