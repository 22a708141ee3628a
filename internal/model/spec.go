package model

// Operator is an opaque handle to a physical operator. The solver core only
// cares about identity; algebra and representation live in the evaluator.
type Operator interface {
	// ID returns a stable identity for the operator, used for fingerprinting
	// and diagnostics.
	ID() string
}

// Named is a string-backed Operator, used by specification documents and tests
// where the real operator object lives elsewhere.
type Named string

// ID returns the operator name
func (n Named) ID() string { return string(n) }

// Params is the extra-parameter mapping handed to the expression evaluator
// alongside the time value t.
type Params map[string]any

// Coeff is a time-dependent coefficient callback. The args mapping mirrors
// the parameter bindings the expression evaluator would see.
type Coeff func(t float64, args Params) complex128

// Expr is a coefficient expression evaluated at runtime with bindings
// t (time) plus an arbitrary parameter mapping.
type Expr string

// Samples is an ordered sequence of coefficient samples, implicitly indexed
// against an external time grid.
type Samples []float64

// Descriptor encodes how a term's contribution varies with time. It is a
// sealed union: Coeff (callback), Expr (expression string), or Samples
// (sampled array). Samples never reach the evaluator; the normalizer rewrites
// them into Expr form first.
type Descriptor interface {
	descriptor()
}

func (Coeff) descriptor()   {}
func (Expr) descriptor()    {}
func (Samples) descriptor() {}

// Term is one entry of a specification list: a bare (time-independent)
// operator, or an operator paired with a time-dependence descriptor.
// The zero Term is malformed and rejected by the classifier.
type Term struct {
	op Operator
	td Descriptor
}

// Bare builds a time-independent term.
func Bare(op Operator) Term { return Term{op: op} }

// Timed builds a time-dependent term.
func Timed(op Operator, td Descriptor) Term { return Term{op: op, td: td} }

// Op returns the term's operator token.
func (t Term) Op() Operator { return t.op }

// TD returns the term's time-dependence descriptor, nil for a bare term.
func (t Term) TD() Descriptor { return t.td }

// IsBare reports whether the term carries no time dependence.
func (t Term) IsBare() bool { return t.op != nil && t.td == nil }

// SpecKind discriminates the top-level shape of a Specification.
type SpecKind int

const (
	KindInvalid  SpecKind = iota // zero value, rejected by the classifier
	KindConstant                 // single bare operator, fully time-independent
	KindFunc                     // whole-specification callback (Hamiltonian only)
	KindList                     // ordered sequence of terms
)

// Specification describes a Hamiltonian or a collapse-operator set: a single
// constant operator, a whole-specification callback, or a list of terms
// mixing constant and time-dependent entries.
type Specification struct {
	kind  SpecKind
	op    Operator
	fn    Coeff
	terms []Term
}

// Constant builds a fully time-independent specification.
func Constant(op Operator) Specification {
	return Specification{kind: KindConstant, op: op}
}

// Func builds a whole-specification callback form. Only valid for
// Hamiltonians; the classifier rejects it for collapse operators.
func Func(fn Coeff) Specification {
	return Specification{kind: KindFunc, fn: fn}
}

// List builds a list-form specification. An empty list is valid for collapse
// operators and classifies as trivially constant.
func List(terms ...Term) Specification {
	return Specification{kind: KindList, terms: terms}
}

// Kind returns the top-level shape discriminator.
func (s Specification) Kind() SpecKind { return s.kind }

// Op returns the operator of a KindConstant specification, nil otherwise.
func (s Specification) Op() Operator { return s.op }

// Fn returns the callback of a KindFunc specification, nil otherwise.
func (s Specification) Fn() Coeff { return s.fn }

// Terms returns the term list of a KindList specification. Callers must not
// mutate the returned slice.
func (s Specification) Terms() []Term { return s.terms }
