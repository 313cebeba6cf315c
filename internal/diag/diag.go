// Package diag is the error sink shared by every compiler pass. A Handler
// wraps a single Emitter plus a saturating error counter; passes hold a
// shared *Handler and report through it without owning it exclusively.
package diag

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Kind classifies a diagnostic and determines the process exit status
// when the diagnostic is fatal.
type Kind int

const (
	// KindError is a recoverable user-facing diagnostic.
	KindError Kind = iota
	// KindBug is an internal invariant violation: an AST shape a pass
	// assumes cannot occur at its phase. It signals a compiler bug.
	KindBug
	// KindUnimplemented marks constructs the target ISA cannot lower yet.
	KindUnimplemented
)

func (k Kind) String() string {
	switch k {
	case KindBug:
		return "bug"
	case KindUnimplemented:
		return "unimplemented"
	default:
		return "error"
	}
}

// Diagnostic is the error value shared by all passes.
type Diagnostic struct {
	Kind    Kind
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// ExitCode derives the process exit status from the diagnostic's classification.
func (d Diagnostic) ExitCode() int {
	switch d.Kind {
	case KindBug:
		return 2
	default:
		return 1
	}
}

// Errorf builds a recoverable diagnostic.
func Errorf(format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}

// Bugf builds an internal-invariant diagnostic.
func Bugf(format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: KindBug, Message: fmt.Sprintf(format, args...)}
}

// Unimplementedf builds a diagnostic for constructs the target ISA cannot
// express yet; these are reported rather than silently miscompiled.
func Unimplementedf(format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: KindUnimplemented, Message: fmt.Sprintf(format, args...)}
}

// Emitter is a sink for diagnostics.
type Emitter interface {
	Emit(d Diagnostic)
}

// StderrEmitter writes each diagnostic to Out as it arrives.
// A nil Out means os.Stderr.
type StderrEmitter struct {
	Out io.Writer
}

func (e *StderrEmitter) Emit(d Diagnostic) {
	out := e.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, d.Error())
}

// BufferEmitter appends diagnostics to an ordered list. The creator and the
// Handler share the same buffer, so diagnostics emitted through the handler
// are visible to whoever holds the emitter.
type BufferEmitter struct {
	diags []Diagnostic
}

// NewBufferEmitter returns an empty buffering emitter.
func NewBufferEmitter() *BufferEmitter {
	return &BufferEmitter{}
}

func (e *BufferEmitter) Emit(d Diagnostic) {
	e.diags = append(e.diags, d)
}

// Diagnostics returns a copy of everything emitted so far, in emission order.
func (e *BufferEmitter) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(e.diags))
	copy(out, e.diags)
	return out
}

// exit is swapped out in tests; Fatal must otherwise terminate the process.
var exit = os.Exit

// Handler wraps exactly one emitter and a saturating error counter. It is
// designed for single-threaded reentrant use within one compilation session
// and carries no cross-goroutine safety guarantee.
type Handler struct {
	count   uint64
	emitter Emitter
}

// New constructs a Handler using the given emitter.
func New(emitter Emitter) *Handler {
	return &Handler{emitter: emitter}
}

// Default constructs a Handler that writes to standard error.
func Default() *Handler {
	return New(&StderrEmitter{})
}

// WithBuffer constructs a Handler backed by a fresh buffering emitter and
// returns both; the caller can inspect the buffer at any time.
func WithBuffer() (*Handler, *BufferEmitter) {
	buf := NewBufferEmitter()
	return New(buf), buf
}

// Emit records the diagnostic, bumps the counter and forwards to the
// emitter. It never fails. The counter saturates rather than wrapping.
func (h *Handler) Emit(d Diagnostic) {
	if h.count < math.MaxUint64 {
		h.count++
	}
	h.emitter.Emit(d)
}

// Fatal records the diagnostic and immediately terminates the process with
// an exit status derived from the diagnostic's classification. Used only
// for unrecoverable conditions.
func (h *Handler) Fatal(d Diagnostic) {
	h.Emit(d)
	exit(d.ExitCode())
}

// Count reports the number of diagnostics emitted so far.
func (h *Handler) Count() uint64 {
	return h.count
}

// HadErrors reports whether any diagnostic has been emitted.
func (h *Handler) HadErrors() bool {
	return h.count > 0
}

// Run executes logic against a fresh buffering handler. A failure from the
// closure is emitted and the buffered diagnostics are returned. A success
// accompanied by recorded diagnostics is also treated as failure: the pass
// emitted errors but swallowed them in its own return value.
func Run[T any](logic func(*Handler) (T, error)) (T, []Diagnostic) {
	handler, buf := WithBuffer()
	value, err := logic(handler)
	if err != nil {
		handler.Emit(toDiagnostic(err))
		var zero T
		return zero, buf.Diagnostics()
	}
	if handler.HadErrors() {
		var zero T
		return zero, buf.Diagnostics()
	}
	return value, nil
}

func toDiagnostic(err error) Diagnostic {
	if d, ok := err.(Diagnostic); ok {
		return d
	}
	return Errorf("%s", err)
}
