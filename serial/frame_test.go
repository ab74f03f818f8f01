package serial_test

import (
	"bytes"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/serial"
	"github.com/CK6170/vectorkit/vector"
)

var _ = Describe("Frames", func() {
	It("round-trips a vector", func() {
		var buf bytes.Buffer
		v := vector.New(3, 4, -1.5)
		Expect(serial.WriteFrame(&buf, v)).To(Succeed())
		Expect(buf.Len()).To(Equal(1 + 2 + 25 + 2))

		got, err := serial.ReadFrame(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Equal(v)).To(BeTrue())
	})

	It("reads consecutive frames and skips noise", func() {
		var buf bytes.Buffer
		buf.WriteString("\r\nnoise")
		Expect(serial.WriteFrame(&buf, vector.New(1))).To(Succeed())
		buf.WriteByte(0xFF)
		Expect(serial.WriteFrame(&buf, vector.New())).To(Succeed())

		first, err := serial.ReadFrame(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Components()).To(Equal([]float64{1}))

		second, err := serial.ReadFrame(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Len()).To(BeZero())

		_, err = serial.ReadFrame(&buf)
		Expect(err).To(MatchError(io.EOF))
	})

	It("detects corruption", func() {
		frame, err := serial.EncodeFrame(vector.New(1, 2))
		Expect(err).NotTo(HaveOccurred())
		frame[5] ^= 0x01

		_, err = serial.ReadFrame(bytes.NewReader(frame))
		Expect(err).To(MatchError(serial.ErrChecksum))
	})

	It("reports truncated frames", func() {
		frame, err := serial.EncodeFrame(vector.New(1, 2))
		Expect(err).NotTo(HaveOccurred())

		_, err = serial.ReadFrame(bytes.NewReader(frame[:10]))
		Expect(err).To(MatchError(io.ErrUnexpectedEOF))
	})

	It("refuses vectors that do not fit a frame", func() {
		big := vector.New(make([]float64, 9000)...)
		_, err := serial.EncodeFrame(big)
		Expect(err).To(MatchError(serial.ErrFrameTooLarge))
	})
})
