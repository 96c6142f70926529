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

package primality

import (
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/atkin-morain/ecpp/arith"
)

var _ = Describe("IsProbablePrime", func() {
	DescribeTable("known primes are proven or likely prime",
		func(n int64) {
			r := IsProbablePrime(big.NewInt(n))
			Expect(r).Should(Or(Equal(Proven), Equal(Likely)))
		},
		Entry("2", int64(2)),
		Entry("3", int64(3)),
		Entry("5", int64(5)),
		Entry("7", int64(7)),
		Entry("11", int64(11)),
		Entry("101", int64(101)),
		Entry("1009", int64(1009)),
		Entry("104729", int64(104729)),
		Entry("1000000007", int64(1000000007)),
	)

	DescribeTable("known composites are rejected",
		func(n int64) {
			Expect(IsProbablePrime(big.NewInt(n))).Should(Equal(Composite))
		},
		Entry("4", int64(4)),
		Entry("9", int64(9)),
		Entry("341 (base-2 Fermat pseudoprime)", int64(341)),
		Entry("561 (Carmichael)", int64(561)),
		Entry("1105 (Carmichael)", int64(1105)),
		Entry("2047 (base-2 SPSP)", int64(2047)),
		Entry("1729 (Carmichael)", int64(1729)),
		Entry("2465 (Carmichael)", int64(2465)),
		Entry("1000003 * 1000033", int64(1000003)*int64(1000033)),
	)

	It("rejects non-positive and negative inputs", func() {
		Expect(IsProbablePrime(big.NewInt(0))).Should(Equal(Composite))
		Expect(IsProbablePrime(big.NewInt(-7))).Should(Equal(Composite))
		Expect(IsProbablePrime(big.NewInt(1))).Should(Equal(Composite))
	})

	It("rejects perfect powers", func() {
		n := new(big.Int).Exp(big.NewInt(17), big.NewInt(5), nil)
		Expect(IsProbablePrime(n)).Should(Equal(Composite))
	})

	It("proves everything at or below 2^64 deterministically", func() {
		// 2^61 - 1 is the Mersenne prime M61, well under the 64-bit bound.
		n := new(big.Int).Lsh(big.NewInt(1), 61)
		n.Sub(n, big.NewInt(1))
		Expect(IsProbablePrime(n)).Should(Equal(Proven))
	})

	It("marks a large probable prime as Likely, not Proven", func() {
		// 2^521 - 1 is the Mersenne prime M521, far beyond the 64-bit
		// deterministic bound, so BPSW can only call it Likely.
		n := new(big.Int).Lsh(big.NewInt(1), 521)
		n.Sub(n, big.NewInt(1))
		Expect(IsProbablePrime(n)).Should(Equal(Likely))
	})
})

var _ = Describe("MillerRabinRandom", func() {
	It("accepts primes and rejects composites with random bases", func() {
		src := arith.NewRandSource(7)
		Expect(MillerRabinRandom(big.NewInt(104729), 5, src)).Should(BeTrue())
		Expect(MillerRabinRandom(big.NewInt(104731), 5, src)).Should(BeFalse())
	})
})

var _ = Describe("StrongLucasSelfridge", func() {
	DescribeTable("agrees with known primes",
		func(n int64) {
			Expect(StrongLucasSelfridge(big.NewInt(n))).Should(BeTrue())
		},
		Entry("13", int64(13)),
		Entry("97", int64(97)),
		Entry("10007", int64(10007)),
	)

	It("rejects a composite", func() {
		// 5461 = 43 * 127.
		Expect(StrongLucasSelfridge(big.NewInt(5461))).Should(BeFalse())
	})
})

var _ = Describe("ExtraStrongLucas", func() {
	It("accepts small primes", func() {
		for _, p := range []int64{13, 17, 29, 97, 1009} {
			Expect(ExtraStrongLucas(big.NewInt(p))).Should(BeTrue())
		}
	})
})
