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

// Package classpoly looks up the Hilbert/Weber class polynomial for a
// fundamental discriminant D, reduces it modulo a candidate N, and
// extracts its roots — the j-invariant candidates the curve builder turns
// into (a,b) curve parameters.
package classpoly

import "math/big"

// Kind distinguishes a Hilbert class polynomial (roots are j-invariants
// directly) from a Weber class polynomial (roots need WeberToHilbert).
type Kind int

const (
	Hilbert Kind = iota
	Weber
)

// Entry is one discriminant's class polynomial: degree, coefficients
// (low-to-high, length degree+1), and kind.
type Entry struct {
	D      int64
	Degree int
	Coeffs []*big.Int
	Kind   Kind
}

// Table is the class-polynomial source the driver consumes: a lookup
// from |D| to its class polynomial, plus the ordered sequence of
// supported |D| the driver walks.
type Table interface {
	// Lookup returns the Entry for discriminant D, or ok=false if D is
	// unsupported.
	Lookup(d int64) (Entry, bool)
	// Degrees returns the supported discriminants (negative), ordered
	// ascending by class-polynomial degree with ties broken by |D|.
	Degrees() []int64
}

// BuiltinTable carries the thirteen class-number-1 discriminants (nine
// fundamental, plus the non-fundamental -12, -16, -27 and -28) as linear
// Hilbert polynomials x - j(D), using the
// well-known integer j-invariants of those thirteen imaginary quadratic
// orders (the largest, D=-163, is the source of the famous
// almost-integer e^(pi*sqrt(163))).
type BuiltinTable struct {
	entries map[int64]Entry
	order   []int64
}

// NewBuiltinTable constructs the thirteen-discriminant table.
func NewBuiltinTable() *BuiltinTable {
	data := []struct {
		d int64
		j string
	}{
		{-3, "0"},
		{-4, "1728"},
		{-7, "-3375"},
		{-8, "8000"},
		{-11, "-32768"},
		{-12, "54000"},
		{-16, "287496"},
		{-19, "-884736"},
		{-27, "-12288000"},
		{-28, "16581375"},
		{-43, "-884736000"},
		{-67, "-147197952000"},
		{-163, "-262537412640768000"},
	}
	t := &BuiltinTable{entries: make(map[int64]Entry, len(data))}
	for _, row := range data {
		j, ok := new(big.Int).SetString(row.j, 10)
		if !ok {
			panic("classpoly: malformed built-in j-invariant literal")
		}
		t.entries[row.d] = Entry{
			D:      row.d,
			Degree: 1,
			Coeffs: []*big.Int{new(big.Int).Neg(j), big.NewInt(1)}, // x - j
			Kind:   Hilbert,
		}
		t.order = append(t.order, row.d)
	}
	return t
}

func (t *BuiltinTable) Lookup(d int64) (Entry, bool) {
	e, ok := t.entries[d]
	return e, ok
}

func (t *BuiltinTable) Degrees() []int64 {
	abs := func(x int64) int64 {
		if x < 0 {
			return -x
		}
		return x
	}
	out := make([]int64, len(t.order))
	copy(out, t.order)
	// insertion sort by |D| ascending: the table is tiny, clarity over
	// pulling in sort.Slice for thirteen elements.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && abs(out[j]) < abs(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
