// Package server exposes vectors over HTTP: create, inspect, subscript,
// format, decode and evaluate operators, with events streamed over a
// WebSocket.
package server

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CK6170/vectorkit/internal/logger"
	"github.com/CK6170/vectorkit/numeric"
	"github.com/CK6170/vectorkit/numfmt"
	"github.com/CK6170/vectorkit/operator"
	"github.com/CK6170/vectorkit/vector"
)

const (
	defaultMaxBody    = 2 << 20
	defaultMaxVectors = 10000
)

// Options configures a Server. MaxVectors bounds the store; the oldest
// vectors are evicted first.
type Options struct {
	Logger     *slog.Logger
	MaxBody    int64
	MaxVectors int
}

type Server struct {
	mux     *http.ServeMux
	store   *VectorStore
	events  *WSHub
	log     *slog.Logger
	maxBody int64
}

func New(opts Options) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		store:   NewVectorStore(cmp.Or(opts.MaxVectors, defaultMaxVectors)),
		events:  NewWSHub(),
		log:     opts.Logger,
		maxBody: opts.MaxBody,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBody
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/vectors", s.handleCreate)
	s.mux.HandleFunc("/api/vectors/get", s.handleGet)
	s.mux.HandleFunc("/api/vectors/index", s.handleIndex)
	s.mux.HandleFunc("/api/vectors/format", s.handleFormat)
	s.mux.HandleFunc("/api/vectors/decode", s.handleDecode)
	s.mux.HandleFunc("/api/eval", s.handleEval)

	s.mux.HandleFunc("/ws/events", s.handleWSEvents)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int { return s.events.Len() }

// Close disconnects all WebSocket clients.
func (s *Server) Close() { s.events.CloseAll() }

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.log.Error("request failed", "error", err)
	} else {
		s.log.Debug("request rejected", "status", status, "error", err)
	}
	s.writeJSON(w, status, APIError{Error: err.Error()})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return &requestError{err: err}
	}
	return nil
}

// requestError marks malformed input.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

var errNotFound = errors.New("vector id not found")

func statusFor(err error) int {
	var (
		reqErr   *requestError
		convErr  *numeric.ConversionError
		idxErr   *vector.IndexTypeError
		specErr  *numfmt.SpecError
		codeErr  *vector.TypecodeError
		typeErr  *operator.TypeError
		attrErr  *vector.AttributeError
		parseErr *strconv.NumError
		sizeErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNotFound), errors.Is(err, vector.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.As(err, &typeErr), errors.As(err, &attrErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &reqErr), errors.As(err, &convErr), errors.As(err, &idxErr),
		errors.As(err, &specErr), errors.As(err, &codeErr), errors.As(err, &parseErr),
		errors.Is(err, vector.ErrZeroStep), errors.Is(err, vector.ErrTruncated),
		errors.Is(err, vector.ErrEmptyBuffer), errors.Is(err, numeric.ErrNotIterable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func toDTO(rec *VectorRecord) *VectorDTO {
	v := rec.Vector
	return &VectorDTO{
		ID:         rec.ID,
		Len:        v.Len(),
		Components: v.Components(),
		Repr:       v.Repr(),
		Display:    v.String(),
		Bytes:      v.Bytes(),
		Hash:       v.Hash(),
		Magnitude:  v.Abs(),
	}
}

func (s *Server) lookup(id string) (*vector.Vector, error) {
	rec, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errNotFound, id)
	}
	return rec.Vector, nil
}

func (s *Server) put(v *vector.Vector) (*VectorDTO, error) {
	rec, err := s.store.Put(v)
	if err != nil {
		return nil, err
	}
	dto := toDTO(rec)
	s.log.Info("vector stored", "id", rec.ID, "len", v.Len())
	s.events.Broadcast(WSMessage{Type: EventVectorCreated, Data: dto})
	return dto, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{OK: true, Timestamp: time.Now(), Vectors: s.store.Len()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req CreateVectorRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := vector.FromIterable(jsonValues(req.Components))
	if err != nil {
		s.writeError(w, err)
		return
	}
	dto, err := s.put(v)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := r.URL.Query().Get("id")
	rec, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %q", errNotFound, id))
		return
	}
	s.writeJSON(w, http.StatusOK, toDTO(rec))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req IndexRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.lookup(req.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	idx, err := parseIndex(req.Index)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := v.Index(idx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	switch out := res.(type) {
	case float64:
		s.writeJSON(w, http.StatusOK, IndexResponse{Value: &out})
	case *vector.Vector:
		dto, err := s.put(out)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, IndexResponse{Vector: dto})
	}
}

// parseIndex turns index text into an int or a vector.Slice. Anything else
// is returned as the raw string so Vector.Index reports the type error.
func parseIndex(text string) (any, error) {
	text = strings.TrimSpace(text)
	if strings.Contains(text, ":") {
		sl, err := vector.ParseSlice(text)
		if err != nil {
			return nil, &requestError{err: err}
		}
		return sl, nil
	}
	if i, err := strconv.Atoi(text); err == nil {
		return i, nil
	}
	return text, nil
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req FormatRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := s.lookup(req.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	text, err := v.FormatSpec(req.Spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, FormatResponse{Text: text})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req DecodeRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	v, err := vector.FromBytes(req.Bytes)
	if err != nil {
		s.writeError(w, err)
		return
	}
	dto, err := s.put(v)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req EvalRequest
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.eval(req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := EvalResponse{Op: req.Op}
	switch out := res.(type) {
	case *vector.Vector:
		dto, err := s.put(out)
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Vector = dto
	case float64:
		resp.Scalar = &out
	default:
		s.writeError(w, fmt.Errorf("unexpected result type %s", numeric.TypeName(res)))
		return
	}
	s.log.Info("eval", "op", req.Op)
	s.events.Broadcast(WSMessage{Type: EventEval, Data: resp})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) eval(req EvalRequest) (any, error) {
	lhs, err := s.resolve(req.Left)
	if err != nil {
		return nil, err
	}

	switch req.Op {
	case "neg", "pos", "abs":
		v, ok := lhs.(*vector.Vector)
		if !ok {
			if req.Left.Components == nil {
				return nil, &requestError{err: fmt.Errorf("%s needs a vector operand, got %s", req.Op, numeric.TypeName(lhs))}
			}
			if v, err = vector.FromIterable(lhs); err != nil {
				return nil, err
			}
		}
		switch req.Op {
		case "neg":
			return v.Neg(), nil
		case "pos":
			return v.Pos(), nil
		default:
			return v.Abs(), nil
		}
	}

	op, ok := operator.ParseOp(req.Op)
	if !ok {
		return nil, &requestError{err: fmt.Errorf("unknown operator %q", req.Op)}
	}
	if req.Right == nil {
		return nil, &requestError{err: fmt.Errorf("operator %q needs a right operand", req.Op)}
	}
	rhs, err := s.resolve(*req.Right)
	if err != nil {
		return nil, err
	}
	return operator.Apply(op, lhs, rhs)
}

// resolve maps an Operand to a dispatchable Go value: a stored vector, an
// exact decimal scalar, or raw components left for the operator to judge.
func (s *Server) resolve(o Operand) (any, error) {
	switch {
	case o.ID != "":
		return s.lookup(o.ID)
	case len(o.Scalar) > 0:
		var raw any
		dec := json.NewDecoder(bytes.NewReader(o.Scalar))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, &requestError{err: err}
		}
		if n, ok := raw.(json.Number); ok {
			d, err := decimal.NewFromString(n.String())
			if err != nil {
				return nil, &requestError{err: err}
			}
			return d, nil
		}
		return raw, nil
	case o.Components != nil:
		return jsonValues(o.Components), nil
	}
	return nil, &requestError{err: errors.New("empty operand")}
}

// jsonValues replaces json.Number elements with exact decimals so they
// convert as numbers; everything else is kept for the converter to reject.
func jsonValues(in []any) []any {
	out := make([]any, len(in))
	for i, x := range in {
		if n, ok := x.(json.Number); ok {
			if d, err := decimal.NewFromString(n.String()); err == nil {
				out[i] = d
				continue
			}
		}
		out[i] = x
	}
	return out
}
