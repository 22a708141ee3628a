// Package classify validates solver operator specifications and determines
// their time-dependence structure. The resulting discriminant tells the
// solver front-end which execution strategy applies: a fully constant fast
// path, expression-string re-evaluation, or callback re-evaluation.
package classify

import (
	"errors"
	"fmt"

	"github.com/qsolve/tdprep/internal/model"
)

// Sentinel errors returned by Classify. Callers match them with errors.Is.
var (
	// ErrMalformedSpec reports a structural shape violation: an invalid
	// specification value, a zero term, a nil operator, or a timed term
	// without a descriptor.
	ErrMalformedSpec = errors.New("malformed specification")
	// ErrMixedEncoding reports callback and expression/array encodings
	// coexisting within a single specification list.
	ErrMixedEncoding = errors.New("cannot mix callback and expression time-dependence formats in one list")
	// ErrMissingCapability reports expression or array terms without a usable
	// expression compiler.
	ErrMissingCapability = errors.New("expression compiler unavailable")
	// ErrAmbiguousTimeDependence reports that detailed-mode discrimination
	// reached no matching combination. Given prior validation this indicates
	// an internal inconsistency, not bad user input.
	ErrAmbiguousTimeDependence = errors.New("unable to determine time-dependence type")
)

// MinCompilerVersion is the oldest expression-compiler version the expression
// term format is known to work with.
const MinCompilerVersion = "0.14"

// Capability is the injected handle for the runtime's expression-compilation
// service. The classifier never calls it; it only gates expression-encoded
// terms on presence and version.
type Capability struct {
	Available bool
	Version   string
}

// Classifier validates specifications and computes their discriminant.
type Classifier struct {
	compiler Capability
}

// NewClassifier creates a classifier bound to the given expression-compiler
// capability.
func NewClassifier(compiler Capability) *Classifier {
	return &Classifier{compiler: compiler}
}

// Classify validates the Hamiltonian and collapse-operator specifications and
// returns the time-dependence discriminant for the requested mode.
//
// Shape rules, checked first: the Hamiltonian must be a constant operator, a
// whole-specification callback, or a term list; collapse operators must be a
// term list (possibly empty). Within a list, every term is a bare operator or
// an (operator, descriptor) pair. Any other shape fails ErrMalformedSpec.
//
// Within each list, callback terms and expression/array terms must not
// coexist (ErrMixedEncoding). The check is per list: a callback Hamiltonian
// with expression-encoded collapse operators passes it, and is resolved or
// rejected by the detailed-mode discriminant instead.
func (c *Classifier) Classify(h, cOps model.Specification, mode model.Mode) (*model.Result, error) {
	hPart, err := partitionHamiltonian(h)
	if err != nil {
		return nil, err
	}

	cPart, err := partitionCollapse(cOps)
	if err != nil {
		return nil, err
	}

	if mixed(hPart) {
		return nil, fmt.Errorf("hamiltonian: %w", ErrMixedEncoding)
	}
	if mixed(cPart) {
		return nil, fmt.Errorf("collapse operators: %w", ErrMixedEncoding)
	}

	if len(hPart.Exprs) > 0 || len(cPart.Exprs) > 0 {
		if err := c.checkCompiler(); err != nil {
			return nil, err
		}
	}

	res := &model.Result{
		Mode: mode,
		H:    hPart,
		C:    cPart,
	}

	switch mode {
	case model.ModeAggregate:
		res.Counts = &model.Counts{
			Const: len(hPart.Const) + len(cPart.Const),
			Funcs: len(hPart.Funcs) + len(cPart.Funcs),
			Exprs: len(hPart.Exprs) + len(cPart.Exprs),
		}
		return res, nil

	case model.ModeDetailed:
		tt, err := timeType(h, hPart, cPart)
		if err != nil {
			return nil, err
		}
		res.TimeType = &tt
		return res, nil

	default:
		return nil, fmt.Errorf("unknown classification mode %q", mode)
	}
}

// partitionHamiltonian validates the Hamiltonian shape and partitions its
// term indices. Constant and whole-callback forms yield empty partitions.
func partitionHamiltonian(h model.Specification) (model.Partition, error) {
	switch h.Kind() {
	case model.KindConstant:
		if h.Op() == nil {
			return model.Partition{}, fmt.Errorf("hamiltonian: nil operator: %w", ErrMalformedSpec)
		}
		return model.Partition{}, nil
	case model.KindFunc:
		if h.Fn() == nil {
			return model.Partition{}, fmt.Errorf("hamiltonian: nil callback: %w", ErrMalformedSpec)
		}
		return model.Partition{}, nil
	case model.KindList:
		return partitionTerms(h.Terms(), "hamiltonian")
	default:
		return model.Partition{}, fmt.Errorf("hamiltonian: %w", ErrMalformedSpec)
	}
}

// partitionCollapse validates the collapse-operator shape. Collapse operators
// are always a list; the whole-specification callback form does not apply.
// An empty list is valid and trivially constant.
func partitionCollapse(c model.Specification) (model.Partition, error) {
	if c.Kind() != model.KindList {
		return model.Partition{}, fmt.Errorf("collapse operators: not a list: %w", ErrMalformedSpec)
	}
	return partitionTerms(c.Terms(), "collapse operators")
}

func partitionTerms(terms []model.Term, what string) (model.Partition, error) {
	var p model.Partition
	for k, term := range terms {
		if term.Op() == nil {
			return model.Partition{}, fmt.Errorf("%s: term %d: nil operator: %w", what, k, ErrMalformedSpec)
		}
		switch td := term.TD().(type) {
		case nil:
			p.Const = append(p.Const, k)
		case model.Coeff:
			if td == nil {
				return model.Partition{}, fmt.Errorf("%s: term %d: nil callback: %w", what, k, ErrMalformedSpec)
			}
			p.Funcs = append(p.Funcs, k)
		case model.Expr:
			p.Exprs = append(p.Exprs, k)
		case model.Samples:
			// Arrays are rewritten into expression strings by the
			// normalizer, so they partition with the expression terms.
			p.Exprs = append(p.Exprs, k)
		default:
			return model.Partition{}, fmt.Errorf("%s: term %d: unknown descriptor %T: %w", what, k, td, ErrMalformedSpec)
		}
	}
	return p, nil
}

func mixed(p model.Partition) bool {
	return len(p.Funcs) > 0 && len(p.Exprs) > 0
}

// checkCompiler gates expression-encoded terms on the injected capability,
// distinguishing an absent compiler from one that is too old.
func (c *Classifier) checkCompiler() error {
	if !c.compiler.Available {
		return fmt.Errorf("%w: use the callback format instead", ErrMissingCapability)
	}
	if compareVersions(c.compiler.Version, MinCompilerVersion) < 0 {
		return fmt.Errorf("%w: version %s is too old, %s+ required",
			ErrMissingCapability, c.compiler.Version, MinCompilerVersion)
	}
	return nil
}

// timeType resolves the detailed-mode code. First match wins:
//
//	H           collapse    code
//	--------    --------    ----
//	callback    (any)        3      whole-specification callback form
//	const       const        0
//	const       expr         1
//	const       func         2
//	expr        const       10
//	expr        expr        11
//	func        const       20
//	func        func        22
func timeType(h model.Specification, hPart, cPart model.Partition) (model.TimeType, error) {
	switch {
	case h.Kind() == model.KindFunc:
		return model.TimeTypeFuncWhole, nil

	case hPart.IsConstant() && cPart.IsConstant():
		return model.TimeTypeConstant, nil

	case hPart.IsConstant():
		if len(cPart.Exprs) > 0 {
			return model.TimeTypeConstHExprC, nil
		}
		if len(cPart.Funcs) > 0 {
			return model.TimeTypeConstHFuncC, nil
		}
		return 0, ErrAmbiguousTimeDependence

	case len(hPart.Exprs) > 0:
		if cPart.IsConstant() {
			return model.TimeTypeExprHConstC, nil
		}
		if len(cPart.Exprs) > 0 {
			return model.TimeTypeExprHExprC, nil
		}
		return 0, ErrAmbiguousTimeDependence

	case len(hPart.Funcs) > 0:
		if cPart.IsConstant() {
			return model.TimeTypeFuncHConstC, nil
		}
		if len(cPart.Funcs) > 0 {
			return model.TimeTypeFuncHFuncC, nil
		}
		return 0, ErrAmbiguousTimeDependence
	}

	return 0, ErrAmbiguousTimeDependence
}
