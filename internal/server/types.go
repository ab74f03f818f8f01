package server

import (
	"encoding/json"
	"time"
)

// APIError is the error envelope returned by every JSON endpoint.
type APIError struct {
	Error string `json:"error"`
}

// HealthResponse is returned by /api/health.
type HealthResponse struct {
	OK        bool      `json:"ok"`
	Timestamp time.Time `json:"timestamp"`
	Vectors   int       `json:"vectors"`
}

// CreateVectorRequest carries raw components. Elements may be any JSON
// value; non-numbers are rejected with the failing index.
type CreateVectorRequest struct {
	Components []any `json:"components"`
}

// VectorDTO is the JSON view of a stored vector.
type VectorDTO struct {
	ID         string    `json:"id"`
	Len        int       `json:"len"`
	Components []float64 `json:"components"`
	Repr       string    `json:"repr"`
	Display    string    `json:"display"`
	Bytes      []byte    `json:"bytes"` // base64 of the binary encoding
	Hash       int64     `json:"hash"`
	Magnitude  float64   `json:"magnitude"`
}

// IndexRequest subscripts a stored vector. Index is an integer ("2", "-1")
// or a slice ("1:3", "::-1").
type IndexRequest struct {
	ID    string `json:"id"`
	Index string `json:"index"`
}

// IndexResponse holds either a component or a newly stored vector.
type IndexResponse struct {
	Value  *float64   `json:"value,omitempty"`
	Vector *VectorDTO `json:"vector,omitempty"`
}

// FormatRequest formats a stored vector with a format spec.
type FormatRequest struct {
	ID   string `json:"id"`
	Spec string `json:"spec"`
}

// FormatResponse carries formatted text.
type FormatResponse struct {
	Text string `json:"text"`
}

// DecodeRequest carries a binary encoding (base64 in JSON).
type DecodeRequest struct {
	Bytes []byte `json:"bytes"`
}

// Operand is one side of an evaluation: a stored vector id, a scalar, or
// inline components. Exactly one field should be set.
type Operand struct {
	ID         string          `json:"id,omitempty"`
	Scalar     json.RawMessage `json:"scalar,omitempty"`
	Components []any           `json:"components,omitempty"`
}

// EvalRequest evaluates a binary ("+", "*", "@") or unary ("neg", "pos",
// "abs") operation. Unary operations ignore Right.
type EvalRequest struct {
	Op    string   `json:"op"`
	Left  Operand  `json:"left"`
	Right *Operand `json:"right,omitempty"`
}

// EvalResponse holds a scalar result or a newly stored vector.
type EvalResponse struct {
	Op     string     `json:"op"`
	Scalar *float64   `json:"scalar,omitempty"`
	Vector *VectorDTO `json:"vector,omitempty"`
}
