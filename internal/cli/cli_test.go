package cli_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/internal/cli"
	"github.com/CK6170/vectorkit/operator"
	"github.com/CK6170/vectorkit/vector"
)

func run(args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

var _ = Describe("NewRootCmd", func() {
	It("has every subcommand", func() {
		cmd := cli.NewRootCmd()
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("serve", "encode", "decode", "format", "index", "eval", "explore", "link", "version"))
	})

	It("prints the version", func() {
		out, err := run("version")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("vectorkit dev (local)"))
	})
})

var _ = Describe("Binary encoding commands", func() {
	It("encodes to hex", func() {
		out, err := run("encode", "1,2")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(hex.EncodeToString(vector.New(1, 2).Bytes())))
	})

	It("accepts bracketed and space separated components", func() {
		a, err := run("encode", "[1, 2]")
		Expect(err).NotTo(HaveOccurred())
		b, err := run("encode", "1", "2")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("decodes what it encodes", func() {
		enc, err := run("encode", "3,4,5")
		Expect(err).NotTo(HaveOccurred())
		out, err := run("decode", enc)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Vector([3.0, 4.0, 5.0])"))
	})

	It("rejects unknown typecodes", func() {
		_, err := run("decode", "7a0000000000000000")
		var tcErr *vector.TypecodeError
		Expect(errors.As(err, &tcErr)).To(BeTrue())
	})

	It("rejects non-numeric components", func() {
		_, err := run("encode", "1,x")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("format", func() {
	DescribeTable("specs",
		func(components, spec, want string) {
			out, err := run("format", components, "--spec", spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(want))
		},
		Entry("default", "3,4", "", "(3.0, 4.0)"),
		Entry("fixed", "3,4", ".2f", "(3.00, 4.00)"),
		Entry("hyperspherical", "1,1", ".3fh", "<1.414, 0.785>"),
	)

	It("fails on a bad spec", func() {
		_, err := run("format", "1", "--spec", "q")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("index", func() {
	It("returns a component", func() {
		out, err := run("index", "--", "1,2,3", "-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("3.0"))

		out, err = run("index", "1,2,3", "1")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("2.0"))
	})

	It("slices into a new vector", func() {
		out, err := run("index", "1,2,3,4", "::-2")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Vector([4.0, 2.0])"))
	})

	It("reports out of range", func() {
		_, err := run("index", "1,2,3", "3")
		Expect(err).To(MatchError(vector.ErrIndexOutOfRange))
	})
})

var _ = Describe("eval", func() {
	DescribeTable("expressions",
		func(args []string, want string) {
			out, err := run(append([]string{"eval"}, args...)...)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(want))
		},
		Entry("scale", []string{"3,4", "*", "2"}, "Vector([6.0, 8.0])"),
		Entry("reflected scale", []string{"2", "*", "3,4"}, "Vector([6.0, 8.0])"),
		Entry("zero padded add", []string{"1,2,3", "+", "[1,1]"}, "Vector([2.0, 3.0, 3.0])"),
		Entry("dot", []string{"3,4", "@", "1,1"}, "7.0"),
		Entry("magnitude", []string{"abs", "3,4"}, "5.0"),
		Entry("negation", []string{"neg", "3,4"}, "Vector([-3.0, -4.0])"),
	)

	It("reports unsupported operands", func() {
		_, err := run("eval", "3,4", "+", "1")
		var typeErr *operator.TypeError
		Expect(errors.As(err, &typeErr)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("unsupported operand type(s) for +"))
	})

	It("rejects unknown operators", func() {
		_, err := run("eval", "3,4", "/", "2")
		Expect(err).To(MatchError(ContainSubstring("unknown operator")))
		_, err = run("eval", "sqrt", "3,4")
		Expect(err).To(MatchError(ContainSubstring("unknown unary operator")))
	})
})

var _ = Describe("link", func() {
	It("needs a port to send", func() {
		_, err := run("link", "send", "1,2")
		Expect(err).To(MatchError(ContainSubstring("no serial port configured")))
	})
})
