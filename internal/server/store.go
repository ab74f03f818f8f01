package server

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/CK6170/vectorkit/vector"
)

// VectorRecord is a stored vector with its id.
type VectorRecord struct {
	ID        string
	Vector    *vector.Vector
	CreatedAt time.Time
}

// VectorStore keeps vectors in memory, keyed by random hex ids. Vectors are
// immutable, so records are never updated after Put. Once limit records are
// held, each Put evicts the oldest one.
type VectorStore struct {
	mu    sync.RWMutex
	m     map[string]*VectorRecord
	order []string
	limit int
}

// NewVectorStore returns a store holding at most limit vectors; limit <= 0
// means unbounded.
func NewVectorStore(limit int) *VectorStore {
	return &VectorStore{m: make(map[string]*VectorRecord), limit: limit}
}

func (s *VectorStore) Put(v *vector.Vector) (*VectorRecord, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	rec := &VectorRecord{ID: id, Vector: v, CreatedAt: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit > 0 && len(s.order) >= s.limit {
		delete(s.m, s.order[0])
		s.order = s.order[1:]
	}
	s.m[id] = rec
	s.order = append(s.order, id)
	return rec, nil
}

func (s *VectorStore) Get(id string) (*VectorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.m[id]
	return r, ok
}

// Len returns the number of stored vectors.
func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func newID() (string, error) {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
