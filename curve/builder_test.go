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

	"github.com/atkin-morain/ecpp/arith"
)

var _ = Describe("Builder", func() {
	Context("SelectCurveParams()", func() {
		n := big.NewInt(10007)

		It("uses the fixed D=-3 special case", func() {
			a, b, err := SelectCurveParams(-3, big.NewInt(0), n)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(big.NewInt(0)))
			Expect(b).To(Equal(new(big.Int).Mod(big.NewInt(-1), n)))
		})

		It("uses the fixed D=-4 special case", func() {
			a, b, err := SelectCurveParams(-4, big.NewInt(1728), n)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(new(big.Int).Mod(big.NewInt(-1), n)))
			Expect(b).To(Equal(big.NewInt(0)))
		})

		It("derives (a,b) from c = j*(j-1728)^-1 for a generic D", func() {
			j := big.NewInt(5000)
			a, b, err := SelectCurveParams(-7, j, n)
			Expect(err).NotTo(HaveOccurred())

			denom := arith.SubMod(j, big.NewInt(1728), n)
			c, err := arith.DivMod(j, denom, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(arith.MulMod(big.NewInt(-3), c, n)))
			Expect(b).To(Equal(arith.MulMod(big.NewInt(2), c, n)))
		})

		It("reports a composite witness when j=1728 (zero denominator)", func() {
			_, _, err := SelectCurveParams(-7, big.NewInt(1728), n)
			Expect(err).To(Equal(ErrCompositeWitness))
		})
	})

	Context("unityCount()", func() {
		It("is 6 for D=-3, 4 for D=-4, 2 otherwise", func() {
			Expect(unityCount(-3)).To(Equal(6))
			Expect(unityCount(-4)).To(Equal(4))
			Expect(unityCount(-7)).To(Equal(2))
			Expect(unityCount(-163)).To(Equal(2))
		})
	})

	Context("twist()", func() {
		n := big.NewInt(97)
		g := big.NewInt(5)

		It("twists only b for D=-3", func() {
			a, b := twist(-3, big.NewInt(0), big.NewInt(10), g, n)
			Expect(a).To(Equal(big.NewInt(0)))
			Expect(b).To(Equal(arith.MulMod(big.NewInt(10), g, n)))
		})

		It("twists only a for D=-4", func() {
			a, b := twist(-4, big.NewInt(10), big.NewInt(0), g, n)
			Expect(a).To(Equal(arith.MulMod(big.NewInt(10), g, n)))
			Expect(b).To(Equal(big.NewInt(0)))
		})

		It("twists a by g^2 and b by g^3 otherwise", func() {
			a, b := twist(-7, big.NewInt(3), big.NewInt(4), g, n)
			g2 := arith.MulMod(g, g, n)
			g3 := arith.MulMod(g2, g, n)
			Expect(a).To(Equal(arith.MulMod(big.NewInt(3), g2, n)))
			Expect(b).To(Equal(arith.MulMod(big.NewInt(4), g3, n)))
		})
	})

	Context("FindNonResidue()", func() {
		It("returns a genuine quadratic non-residue", func() {
			n := big.NewInt(10007) // prime
			g, err := FindNonResidue(-7, n, arith.NewRandSource(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(arith.Jacobi(g, n)).To(Equal(-1))
		})
	})

	Context("SelectPoint()", func() {
		It("returns a point that lies on the curve", func() {
			c, err := NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(10007))
			Expect(err).NotTo(HaveOccurred())
			p, err := SelectPoint(c, arith.NewRandSource(2))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.isOn(p.x, p.y)).To(BeTrue())
			Expect(p.y.Sign()).NotTo(BeZero())
		})
	})

	Context("CheckPoint()", func() {
		It("rejects the identity as not useful, without error", func() {
			c, err := NewCurve(big.NewInt(2), big.NewInt(2), big.NewInt(17))
			Expect(err).NotTo(HaveOccurred())
			accepted, err := CheckPoint(Identity(c), big.NewInt(20), big.NewInt(5))
			Expect(err).NotTo(HaveOccurred())
			Expect(accepted).To(BeFalse())
		})
	})

	Context("MaxAttempts()", func() {
		It("scales linearly with nroots", func() {
			Expect(MaxAttempts(1)).To(Equal(50))
			Expect(MaxAttempts(3)).To(Equal(150))
		})
	})
})
