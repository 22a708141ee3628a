// Package specfile loads operator specification documents from YAML.
//
// Documents can express constant, expression-string, and sampled-array terms.
// Callback time dependence is in-process only and has no document form.
package specfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qsolve/tdprep/internal/model"
)

// Document is the YAML schema of a specification file.
//
//	hamiltonian:
//	  - op: sigma_z
//	  - op: sigma_x
//	    expr: "sin(w * t)"
//	  - op: sigma_y
//	    samples: [0.0, 0.5, 1.0]
//	collapse:
//	  - op: a
//	times: [0.0, 1.0, 2.0, 3.0, 4.0]
//	args:
//	  w: 1.5
type Document struct {
	Hamiltonian []TermDoc      `yaml:"hamiltonian"`
	Collapse    []TermDoc      `yaml:"collapse"`
	Times       []float64      `yaml:"times"`
	Args        map[string]any `yaml:"args"`
}

// TermDoc is one term entry. Expr and Samples are mutually exclusive; neither
// means a constant term.
type TermDoc struct {
	Op      string    `yaml:"op"`
	Expr    string    `yaml:"expr,omitempty"`
	Samples []float64 `yaml:"samples,omitempty"`
}

// Load reads and parses a specification document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read specification file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a specification document from YAML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse specification file: %w", err)
	}
	return &doc, nil
}

// Specs converts the document into model specifications. Both sides come out
// in list form; an absent hamiltonian or collapse section is an empty list.
func (d *Document) Specs() (model.Specification, model.Specification, error) {
	h, err := terms(d.Hamiltonian, "hamiltonian")
	if err != nil {
		return model.Specification{}, model.Specification{}, err
	}
	c, err := terms(d.Collapse, "collapse")
	if err != nil {
		return model.Specification{}, model.Specification{}, err
	}
	return h, c, nil
}

func terms(docs []TermDoc, what string) (model.Specification, error) {
	out := make([]model.Term, 0, len(docs))
	for i, td := range docs {
		if td.Op == "" {
			return model.Specification{}, fmt.Errorf("%s: term %d: missing op", what, i)
		}
		if td.Expr != "" && len(td.Samples) > 0 {
			return model.Specification{}, fmt.Errorf("%s: term %d (%s): expr and samples are mutually exclusive", what, i, td.Op)
		}
		op := model.Named(td.Op)
		switch {
		case td.Expr != "":
			out = append(out, model.Timed(op, model.Expr(td.Expr)))
		case len(td.Samples) > 0:
			out = append(out, model.Timed(op, model.Samples(td.Samples)))
		default:
			out = append(out, model.Bare(op))
		}
	}
	return model.List(out...), nil
}
