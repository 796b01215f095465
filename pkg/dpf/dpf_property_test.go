package dpf_test

import (
	"math/rand"
	"testing/quick"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/privrec/pkg/dpf"
)

var _ = Describe("DPF Property-Based Tests", func() {
	Describe("the point-function invariant (spec §8 invariant 1)", func() {
		It("agrees at every non-target leaf and diverges at the target for any domain/target pair", func() {
			rng := rand.New(rand.NewSource(1))

			property := func(nRaw uint8, jRaw uint16) bool {
				n := uint64(nRaw)%63 + 1 // n in [1,63]
				j := uint64(jRaw) % n

				k0, k1, err := dpf.GenerateDPF(j, n, rng)
				if err != nil {
					return false
				}
				for x := uint64(0); x < n; x++ {
					f0 := dpf.EvalFlagAt(k0, x, n)
					f1 := dpf.EvalFlagAt(k1, x, n)
					if x == j {
						if f0 == f1 {
							return false
						}
					} else if f0 != f1 {
						return false
					}
				}
				return true
			}

			Expect(quick.Check(property, &quick.Config{MaxCount: 200})).To(Succeed())
		})
	})

	Describe("sign-vector summation (spec §8 invariant 2)", func() {
		It("sums to 0 off-target and +2 on-target once the dealer aligns the negate bit", func() {
			rng := rand.New(rand.NewSource(2))

			property := func(nRaw uint8, jRaw uint16) bool {
				n := uint64(nRaw)%63 + 1
				j := uint64(jRaw) % n

				k0, k1, err := dpf.GenerateDPF(j, n, rng)
				if err != nil {
					return false
				}

				negateP0 := dpf.ChooseNegateP0(k0, k1, j, n)

				signs0 := dpf.EvalSigns(k0, n, negateP0)
				signs1 := dpf.EvalSigns(k1, n, !negateP0)
				for x := uint64(0); x < n; x++ {
					sum := signs0[x] + signs1[x]
					if x == j {
						if sum != 2 {
							return false
						}
					} else if sum != 0 {
						return false
					}
				}
				return true
			}

			Expect(quick.Check(property, &quick.Config{MaxCount: 200})).To(Succeed())
		})
	})
})
