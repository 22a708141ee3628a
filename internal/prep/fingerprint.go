package prep

import (
	"fmt"
	"strings"

	"github.com/qsolve/tdprep/internal/model"
)

// Fingerprint renders the structural shape of a specification pair: the
// top-level kind of each list and the descriptor kind at every index, plus
// the classification mode. Coefficient values are deliberately excluded;
// classification does not depend on them.
func Fingerprint(h, cOps model.Specification, mode model.Mode) string {
	var b strings.Builder
	b.WriteString(string(mode))
	b.WriteString("|H:")
	writeSpec(&b, h)
	b.WriteString("|C:")
	writeSpec(&b, cOps)
	return b.String()
}

func writeSpec(b *strings.Builder, spec model.Specification) {
	switch spec.Kind() {
	case model.KindConstant:
		b.WriteString("const(")
		if op := spec.Op(); op != nil {
			b.WriteString(op.ID())
		}
		b.WriteString(")")
	case model.KindFunc:
		b.WriteString("func")
	case model.KindList:
		b.WriteString("[")
		for i, term := range spec.Terms() {
			if i > 0 {
				b.WriteString(",")
			}
			writeTerm(b, term)
		}
		b.WriteString("]")
	default:
		b.WriteString("invalid")
	}
}

func writeTerm(b *strings.Builder, term model.Term) {
	if op := term.Op(); op != nil {
		b.WriteString(op.ID())
	} else {
		b.WriteString("?")
	}
	switch term.TD().(type) {
	case nil:
	case model.Coeff:
		b.WriteString(":f")
	case model.Expr:
		b.WriteString(":s")
	case model.Samples:
		b.WriteString(":a")
	default:
		fmt.Fprintf(b, ":%T", term.TD())
	}
}
