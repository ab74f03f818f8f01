package server_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/CK6170/vectorkit/internal/server"
	"github.com/CK6170/vectorkit/vector"
)

var _ = Describe("VectorStore", func() {
	It("evicts the oldest vector once full", func() {
		s := server.NewVectorStore(2)
		first, err := s.Put(vector.New(1))
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Put(vector.New(2))
		Expect(err).NotTo(HaveOccurred())
		third, err := s.Put(vector.New(3))
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Len()).To(Equal(2))
		_, ok := s.Get(first.ID)
		Expect(ok).To(BeFalse())
		for _, rec := range []*server.VectorRecord{second, third} {
			got, ok := s.Get(rec.ID)
			Expect(ok).To(BeTrue())
			Expect(got.Vector.Equal(rec.Vector)).To(BeTrue())
		}
	})

	It("is unbounded with a zero limit", func() {
		s := server.NewVectorStore(0)
		for i := range 50 {
			_, err := s.Put(vector.New(float64(i)))
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(s.Len()).To(Equal(50))
	})
})
