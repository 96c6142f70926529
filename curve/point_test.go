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

package curve

import (
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// The fixture curve y^2 = x^3 + 2x + 2 mod 17 with two hand-verified
// affine points: (0,6) and (3,1). Their sum and doubling were computed
// by hand via the standard slope formulas and cross-checked against the
// curve equation.
func fixtureCurve17() *Curve {
	c, err := NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(17))
	Expect(err).NotTo(HaveOccurred())
	return c
}

var _ = Describe("Point", func() {
	var c *Curve

	BeforeEach(func() {
		c = fixtureCurve17()
	})

	Context("NewCurve()", func() {
		It("rejects a singular curve (zero discriminant)", func() {
			_, err := NewCurve(big.NewInt(0), big.NewInt(0), big.NewInt(17))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("NewPoint()", func() {
		It("accepts a point on the curve", func() {
			p, err := NewPoint(c, big.NewInt(0), big.NewInt(6))
			Expect(err).NotTo(HaveOccurred())
			Expect(p.X()).To(Equal(big.NewInt(0)))
			Expect(p.Y()).To(Equal(big.NewInt(6)))
		})

		It("rejects a point not on the curve", func() {
			_, err := NewPoint(c, big.NewInt(1), big.NewInt(1))
			Expect(err).To(Equal(ErrInvalidPoint))
		})
	})

	Context("Add()", func() {
		It("matches the hand-computed sum (0,6)+(3,1) = (13,10)", func() {
			p1, _ := NewPoint(c, big.NewInt(0), big.NewInt(6))
			p2, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			sum, err := p1.Add(p2)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.X()).To(Equal(big.NewInt(13)))
			Expect(sum.Y()).To(Equal(big.NewInt(10)))
		})

		It("returns its argument when adding the identity", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			id := Identity(c)
			sum, err := p.Add(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.Equal(p)).To(BeTrue())
		})

		It("returns the identity when adding a point to its negation", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			neg, err := p.Neg()
			Expect(err).NotTo(HaveOccurred())
			sum, err := p.Add(neg)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.IsIdentity()).To(BeTrue())
		})

		It("surfaces a non-invertible denominator over a composite modulus", func() {
			composite, err := NewCurve(big.NewInt(1), big.NewInt(0), big.NewInt(15))
			Expect(err).NotTo(HaveOccurred())
			p1, err := NewPoint(composite, big.NewInt(2), big.NewInt(5))
			Expect(err).NotTo(HaveOccurred())
			p2, err := NewPoint(composite, big.NewInt(5), big.NewInt(5))
			Expect(err).NotTo(HaveOccurred())

			_, err = p1.Add(p2)
			Expect(err).To(Equal(ErrNonInvertibleDenominator))
		})
	})

	Context("ScalarMult()", func() {
		It("matches hand-computed doubling: [2](3,1) = (13,7)", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			doubled, err := p.ScalarMult(big.NewInt(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(doubled.X()).To(Equal(big.NewInt(13)))
			Expect(doubled.Y()).To(Equal(big.NewInt(7)))
		})

		It("returns the identity for k=0", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			zero, err := p.ScalarMult(big.NewInt(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(zero.IsIdentity()).To(BeTrue())
		})
	})

	Context("Neg()", func() {
		It("matches the hand-computed negation (3,1) -> (3,16)", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			neg, err := p.Neg()
			Expect(err).NotTo(HaveOccurred())
			Expect(neg.X()).To(Equal(big.NewInt(3)))
			Expect(neg.Y()).To(Equal(big.NewInt(16)))
		})
	})

	Context("String()", func() {
		It("renders the (0:1) convention for the identity", func() {
			Expect(Identity(c).String()).To(Equal("(0:1)"))
		})

		It("renders affine coordinates", func() {
			p, _ := NewPoint(c, big.NewInt(3), big.NewInt(1))
			Expect(p.String()).To(Equal("(3:1)"))
		})
	})
})
