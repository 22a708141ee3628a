// Package normalize rewrites sampled-array time dependence into the
// expression-string format, so the downstream evaluator only ever sees
// callback and expression descriptors.
package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/qsolve/tdprep/internal/model"
)

// Sentinel errors returned by Normalize.
var (
	// ErrIncompatibleParams reports caller-supplied extra parameters that are
	// not a mapping while synthesized array bindings also exist, leaving no
	// way to merge the two.
	ErrIncompatibleParams = errors.New("sampled-array format requires extra parameters to be a mapping")
	// ErrEmptyTimeGrid reports sampled-array terms with no time grid to index
	// against.
	ErrEmptyTimeGrid = errors.New("sampled-array format requires a non-empty time grid")
)

// ParamPrefix is the name stem of synthesized lookup parameters.
const ParamPrefix = "_td_array_"

// Normalize rewrites every sampled-array term of the Hamiltonian and the
// collapse operators into an equivalent expression-string term referencing a
// freshly named lookup parameter, and returns the rewritten specifications
// together with the merged extra-parameter mapping.
//
// Lookup parameters are numbered by a single counter spanning both passes:
// Hamiltonian terms first, then collapse terms, in list order. The rewritten
// expression evaluates to zero past the final grid time, and otherwise to the
// sample at round((len(times)-1) * t / times[len-1]).
//
// args is the caller's extra-parameter value, of any representation. If no
// arrays were rewritten it is returned verbatim; if it is nil the synthesized
// mapping is returned; otherwise it must be a model.Params (or plain
// map[string]any) and its entries win on key collision, or Normalize fails
// with ErrIncompatibleParams. Inputs are never mutated.
func Normalize(h, cOps model.Specification, args any, times []float64) (model.Specification, model.Specification, any, error) {
	synth := model.Params{}
	n := 0

	hNew, n, err := rewrite(h, times, n, synth)
	if err != nil {
		return model.Specification{}, model.Specification{}, nil, fmt.Errorf("hamiltonian: %w", err)
	}
	cNew, _, err := rewrite(cOps, times, n, synth)
	if err != nil {
		return model.Specification{}, model.Specification{}, nil, fmt.Errorf("collapse operators: %w", err)
	}

	merged, err := mergeParams(synth, args)
	if err != nil {
		return model.Specification{}, model.Specification{}, nil, err
	}
	return hNew, cNew, merged, nil
}

// rewrite returns spec with every sampled-array term replaced by its
// expression form, threading the naming counter. Non-list specifications and
// terms that are already constant, callback, or expression encoded pass
// through unchanged.
func rewrite(spec model.Specification, times []float64, n int, synth model.Params) (model.Specification, int, error) {
	if spec.Kind() != model.KindList {
		return spec, n, nil
	}

	terms := make([]model.Term, 0, len(spec.Terms()))
	for _, term := range spec.Terms() {
		samples, ok := term.TD().(model.Samples)
		if !ok {
			terms = append(terms, term)
			continue
		}
		if len(times) == 0 {
			return model.Specification{}, n, ErrEmptyTimeGrid
		}
		name := ParamPrefix + strconv.Itoa(n)
		synth[name] = samples
		terms = append(terms, model.Timed(term.Op(), lookupExpr(name, times)))
		n++
	}
	return model.List(terms...), n, nil
}

// lookupExpr builds the expression that indexes the named sample array: zero
// past the final grid time, else the sample at the position obtained by
// mapping t linearly onto the sample count, rounded to the nearest index.
func lookupExpr(name string, times []float64) model.Expr {
	last := formatTime(times[len(times)-1])
	return model.Expr(fmt.Sprintf("(0 if (t > %s) else %s[round(%d * (t/%s))])",
		last, name, len(times)-1, last))
}

// formatTime renders a grid time with an explicit decimal point (4 -> "4.0"),
// keeping the synthesized expression unambiguously floating point for the
// evaluator.
func formatTime(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// mergeParams combines the synthesized lookup bindings with the caller's
// extra-parameter value. Caller entries take precedence on key collision.
func mergeParams(synth model.Params, args any) (any, error) {
	if args == nil {
		return synth, nil
	}

	var caller model.Params
	switch v := args.(type) {
	case model.Params:
		caller = v
	case map[string]any:
		caller = v
	default:
		if len(synth) == 0 {
			// Nothing was synthesized; pass the caller's representation
			// through untouched.
			return args, nil
		}
		return nil, fmt.Errorf("%w, got %T", ErrIncompatibleParams, args)
	}

	if len(synth) == 0 {
		return args, nil
	}
	merged := make(model.Params, len(synth)+len(caller))
	for k, v := range synth {
		merged[k] = v
	}
	for k, v := range caller {
		merged[k] = v
	}
	return merged, nil
}
