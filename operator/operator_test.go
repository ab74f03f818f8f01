package operator_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/operator"
)

// meters handles + with ints on both sides and records which side ran.
type meters struct {
	n     int
	calls *[]string
}

func (m meters) Forward(op operator.Op, rhs any) operator.Result {
	*m.calls = append(*m.calls, "forward")
	if k, ok := rhs.(int); ok && op == operator.Add {
		return operator.Handled(m.n + k)
	}
	return operator.NotImplemented
}

func (m meters) Reflected(op operator.Op, lhs any) operator.Result {
	*m.calls = append(*m.calls, "reflected")
	if k, ok := lhs.(int); ok && op == operator.Add {
		return operator.Handled(k + m.n)
	}
	return operator.NotImplemented
}

// declines never handles anything.
type declines struct{}

func (declines) Forward(operator.Op, any) operator.Result   { return operator.NotImplemented }
func (declines) Reflected(operator.Op, any) operator.Result { return operator.NotImplemented }

var _ = Describe("Apply", func() {
	var calls []string

	BeforeEach(func() {
		calls = nil
	})

	It("uses the forward result when handled", func() {
		res, err := operator.Apply(operator.Add, meters{n: 2, calls: &calls}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(5))
		Expect(calls).To(Equal([]string{"forward"}))
	})

	It("falls back to the reflected side", func() {
		res, err := operator.Apply(operator.Add, 3, meters{n: 2, calls: &calls})
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(5))
		Expect(calls).To(Equal([]string{"reflected"}))
	})

	It("tries the reflected side after the forward side declines", func() {
		res, err := operator.Apply(operator.Add, declines{}, meters{n: 1, calls: &calls})
		Expect(err).To(HaveOccurred())
		Expect(res).To(BeNil())
		Expect(calls).To(Equal([]string{"reflected"}))
	})

	It("skips the reflected side for operands of the same type", func() {
		_, err := operator.Apply(operator.Mul, meters{calls: &calls}, meters{calls: &calls})
		Expect(err).To(HaveOccurred())
		Expect(calls).To(Equal([]string{"forward"}))
	})

	It("reports a TypeError when both sides decline", func() {
		_, err := operator.Apply(operator.MatMul, 1, "x")
		var typeErr *operator.TypeError
		Expect(errors.As(err, &typeErr)).To(BeTrue())
		Expect(typeErr.Op).To(Equal(operator.MatMul))
		Expect(err.Error()).To(Equal("unsupported operand type(s) for @: 'int' and 'string'"))
	})

	It("parses operator symbols", func() {
		op, ok := operator.ParseOp("*")
		Expect(ok).To(BeTrue())
		Expect(op).To(Equal(operator.Mul))
		_, ok = operator.ParseOp("%")
		Expect(ok).To(BeFalse())
		Expect(operator.Op(9).String()).To(Equal("Op(9)"))
	})
})
