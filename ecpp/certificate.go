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
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/atkin-morain/ecpp/curve"
)

// ErrMalformedCertificate is returned by ParseCertificate when a line does
// not match the certificate wire format.
var ErrMalformedCertificate = errors.New("ecpp: malformed certificate")

// CertificateLine is one line of the certificate chain: `(N) : ECPP : (a) (b)
// (m) (q) (Px:Py)`. The i-th line proves N assuming the (i+1)-th line's N
// (equal to this line's q) is prime.
type CertificateLine struct {
	N, A, B, M, Q, Px, Py *big.Int
}

// String renders one line in the exact wire format.
func (l CertificateLine) String() string {
	return fmt.Sprintf("%s : ECPP : %s %s %s %s (%s:%s)", l.N, l.A, l.B, l.M, l.Q, l.Px, l.Py)
}

// Verify independently re-checks one certificate line against the
// verifier contract: m ≡ 0 (mod q), the curve is non-singular mod N, the
// point lies on the curve, [q]([m/q]P) = O, and [m/q]P != O.
func (l CertificateLine) Verify() error {
	if new(big.Int).Mod(l.M, l.Q).Sign() != 0 {
		return fmt.Errorf("ecpp: m not divisible by q")
	}
	if curve.Discriminant(l.A, l.B, l.N).Sign() == 0 {
		return fmt.Errorf("ecpp: singular curve (discriminant zero mod N)")
	}
	c, err := curve.NewCurve(l.A, l.B, l.N)
	if err != nil {
		return err
	}
	p, err := curve.NewPoint(c, l.Px, l.Py)
	if err != nil {
		return err
	}
	accepted, err := curve.CheckPoint(p, l.M, l.Q)
	if err != nil {
		return err
	}
	if !accepted {
		return fmt.Errorf("ecpp: point check failed")
	}
	return nil
}

// Certificate is the full ordered chain, outermost N first.
type Certificate struct {
	Lines []CertificateLine
}

// String concatenates every line, one per line of output.
func (c *Certificate) String() string {
	if c == nil {
		return ""
	}
	lines := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// Fingerprint returns a short hex digest of the certificate's canonical
// text, used in log lines to identify a chain without printing every
// multi-hundred-digit integer in it.
func (c *Certificate) Fingerprint() string {
	sum := blake2b.Sum256([]byte(c.String()))
	return hex.EncodeToString(sum[:8])
}

// ParseCertificate parses the certificate wire format back into a Certificate.
func ParseCertificate(text string) (*Certificate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Certificate{}, nil
	}
	var lines []CertificateLine
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		l, err := parseCertificateLine(raw)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return &Certificate{Lines: lines}, nil
}

func parseCertificateLine(raw string) (CertificateLine, error) {
	parts := strings.SplitN(raw, " : ECPP : ", 2)
	if len(parts) != 2 {
		return CertificateLine{}, ErrMalformedCertificate
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(parts[0]), 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	fields := strings.Fields(parts[1])
	if len(fields) != 5 {
		return CertificateLine{}, ErrMalformedCertificate
	}
	a, ok := new(big.Int).SetString(fields[0], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	b, ok := new(big.Int).SetString(fields[1], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	m, ok := new(big.Int).SetString(fields[2], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	q, ok := new(big.Int).SetString(fields[3], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	point := strings.TrimSuffix(strings.TrimPrefix(fields[4], "("), ")")
	coords := strings.SplitN(point, ":", 2)
	if len(coords) != 2 {
		return CertificateLine{}, ErrMalformedCertificate
	}
	px, ok := new(big.Int).SetString(coords[0], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	py, ok := new(big.Int).SetString(coords[1], 10)
	if !ok {
		return CertificateLine{}, ErrMalformedCertificate
	}
	return CertificateLine{N: n, A: a, B: b, M: m, Q: q, Px: px, Py: py}, nil
}

// Verify checks every line in the chain against the verifier
// contract and that consecutive lines actually chain (line i's Q equals
// line i+1's N), returning the first failure found.
func (c *Certificate) Verify(n *big.Int) error {
	if c == nil || len(c.Lines) == 0 {
		return fmt.Errorf("ecpp: empty certificate")
	}
	if c.Lines[0].N.Cmp(n) != 0 {
		return fmt.Errorf("ecpp: certificate does not start at N")
	}
	for i, l := range c.Lines {
		if err := l.Verify(); err != nil {
			return fmt.Errorf("ecpp: line %d: %w", i, err)
		}
		if i+1 < len(c.Lines) && l.Q.Cmp(c.Lines[i+1].N) != 0 {
			return fmt.Errorf("ecpp: line %d does not chain to line %d", i, i+1)
		}
	}
	return nil
}
