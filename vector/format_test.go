package vector_test

import (
	"fmt"
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/numfmt"
	"github.com/CK6170/vectorkit/vector"
)

var _ = Describe("Formatting", func() {
	DescribeTable("FormatSpec",
		func(v *vector.Vector, spec, want string) {
			got, err := v.FormatSpec(spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("cartesian default", vector.New(3, 4), "", "(3.0, 4.0)"),
		Entry("cartesian fixed", vector.New(3, 4), ".2f", "(3.00, 4.00)"),
		Entry("cartesian exponent", vector.New(3, 4), ".3e", "(3.000e+00, 4.000e+00)"),
		Entry("hyperspherical", vector.New(1, 1), "h", "<1.4142135623730951, 0.7853981633974483>"),
		Entry("hyperspherical fixed", vector.New(1, 1), ".3fh", "<1.414, 0.785>"),
		Entry("hyperspherical 3d", vector.New(1, 1, 1), ".5fh", "<1.73205, 0.95532, 0.78540>"),
		Entry("last angle of a negative tail", vector.New(0, 0, -1), ".5fh", "<1.00000, 1.57080, 4.71239>"),
		Entry("empty hyperspherical", vector.New(), "h", "<0.0>"),
		Entry("empty cartesian", vector.New(), ".2f", "()"),
	)

	It("rejects invalid per-number specs", func() {
		_, err := vector.New(1).FormatSpec("q")
		Expect(err).To(BeAssignableToTypeOf(&numfmt.SpecError{}))
		_, err = vector.New(1).FormatSpec(".h")
		Expect(err).To(HaveOccurred())
	})

	It("only corrects the last angle", func() {
		v := vector.New(-1, -1, -1, -1)
		angles := slices.Collect(v.Angles())
		Expect(angles).To(HaveLen(3))
		Expect(angles[0]).To(BeNumerically("~", 2.0943951023931957, 1e-12))
		Expect(angles[1]).To(BeNumerically("~", 2.186276035465284, 1e-12))
		Expect(angles[2]).To(BeNumerically("~", 3.9269908169872414, 1e-12))
		Expect(angles[2]).To(BeNumerically(">", math.Pi))
	})

	It("returns NaN for angles outside the vector", func() {
		v := vector.New(1, 2)
		Expect(math.IsNaN(v.Angle(-1))).To(BeTrue())
		Expect(math.IsNaN(v.Angle(2))).To(BeTrue())
		Expect(math.IsNaN(v.Angle(5))).To(BeTrue())
		Expect(math.IsNaN(vector.New().Angle(0))).To(BeTrue())
	})

	It("pairs the magnitude with the last component for angle zero", func() {
		Expect(vector.New(1, 2).Angle(0)).To(BeNumerically("~", math.Atan2(math.Sqrt(5), 2), 1e-15))
		Expect(vector.New(3, 4).Angle(1)).To(BeNumerically("~", math.Atan2(4, 3), 1e-15))
	})

	Describe("fmt verbs", func() {
		v := vector.New(1, 1)

		It("prints display and debug forms", func() {
			Expect(fmt.Sprintf("%v", v)).To(Equal("(1.0, 1.0)"))
			Expect(fmt.Sprintf("%s", v)).To(Equal("(1.0, 1.0)"))
			Expect(fmt.Sprintf("%#v", v)).To(Equal("Vector([1.0, 1.0])"))
			Expect(fmt.Sprint(v)).To(Equal("(1.0, 1.0)"))
		})

		It("applies float verbs per component", func() {
			Expect(fmt.Sprintf("%.1f", v)).To(Equal("(1.0, 1.0)"))
			Expect(fmt.Sprintf("%6.2f", v)).To(Equal("(  1.00,   1.00)"))
			Expect(fmt.Sprintf("%+.1f", vector.New(1, -1))).To(Equal("(+1.0, -1.0)"))
		})

		It("renders hyperspherical coordinates with %h", func() {
			Expect(fmt.Sprintf("%h", v)).To(Equal("<1.4142135623730951, 0.7853981633974483>"))
			Expect(fmt.Sprintf("%.3h", v)).To(Equal("<1.41, 0.785>"))
		})

		It("caps oversized widths", func() {
			Expect(fmt.Sprintf("%9000.1f", vector.New(1))).To(HaveLen(numfmt.MaxWidth + 2))
		})

		It("flags unknown verbs", func() {
			Expect(fmt.Sprintf("%d", v)).To(Equal("%!d(*vector.Vector=(1.0, 1.0))"))
		})
	})
})
