// Package prep is the solver front-end: it classifies an operator
// specification, normalizes sampled-array terms into expression strings, and
// selects the execution strategy the integrator should use.
package prep

import (
	"fmt"

	"github.com/qsolve/tdprep/internal/cache"
	"github.com/qsolve/tdprep/internal/classify"
	"github.com/qsolve/tdprep/internal/model"
	"github.com/qsolve/tdprep/internal/normalize"
)

// Strategy is the execution strategy the discriminant selects.
type Strategy string

const (
	// StrategyConstant solves with a fixed right-hand side (fast path).
	StrategyConstant Strategy = "constant"
	// StrategyExpr recompiles expression-string coefficients once and
	// re-evaluates them at every step.
	StrategyExpr Strategy = "expr"
	// StrategyCallback calls coefficient callbacks at every step.
	StrategyCallback Strategy = "callback"
	// StrategyCallbackWhole calls a whole-specification callback that builds
	// the full operator at every step.
	StrategyCallbackWhole Strategy = "callback-whole"
	// StrategyMixed covers cross-list combinations that need both the
	// expression and callback machinery.
	StrategyMixed Strategy = "mixed"
)

// Plan is the prepared solver input: the discriminant, the normalized
// specifications (no sampled-array descriptors remain), the merged parameter
// mapping, and the selected strategy.
type Plan struct {
	Result   *model.Result
	H        model.Specification
	C        model.Specification
	Args     any
	Strategy Strategy
}

// Prep orchestrates classification and normalization.
type Prep struct {
	classifier *classify.Classifier
	memo       cache.Cache
	cfg        *model.Config
}

// New creates a front-end for the given configuration. A memoization cache is
// created when cfg.Cache.Enabled is set.
func New(cfg *model.Config) *Prep {
	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return &Prep{
		classifier: classify.NewClassifier(classify.Capability{
			Available: cfg.Compiler.Available,
			Version:   cfg.Compiler.Version,
		}),
		memo: memo,
		cfg:  cfg,
	}
}

// Prepare classifies and normalizes the specification and picks a strategy.
//
// Classification depends only on the structure of the specification (term
// kinds and top-level shape), never on coefficient values, so results are
// memoized by structural fingerprint when caching is enabled.
func (p *Prep) Prepare(h, cOps model.Specification, args any, times []float64) (*Plan, error) {
	res, err := p.classifyMemo(h, cOps)
	if err != nil {
		return nil, err
	}

	hNew, cNew, argsNew, err := normalize.Normalize(h, cOps, args, times)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	return &Plan{
		Result:   res,
		H:        hNew,
		C:        cNew,
		Args:     argsNew,
		Strategy: strategyFor(res),
	}, nil
}

func (p *Prep) classifyMemo(h, cOps model.Specification) (*model.Result, error) {
	if p.memo == nil {
		return p.classifier.Classify(h, cOps, p.cfg.Mode)
	}

	key := cache.Key(Fingerprint(h, cOps, p.cfg.Mode))
	if res, found := cache.GetResult(p.memo, key); found {
		return res, nil
	}

	res, err := p.classifier.Classify(h, cOps, p.cfg.Mode)
	if err != nil {
		return nil, err
	}
	_ = cache.SetResult(p.memo, key, res, p.cfg.Cache.TTL)
	return res, nil
}

// strategyFor maps the discriminant onto an execution strategy.
func strategyFor(res *model.Result) Strategy {
	if res.Mode == model.ModeAggregate && res.Counts != nil {
		switch {
		case res.Counts.Funcs == 0 && res.Counts.Exprs == 0:
			return StrategyConstant
		case res.Counts.Funcs == 0:
			return StrategyExpr
		case res.Counts.Exprs == 0:
			return StrategyCallback
		default:
			// Per-list mixing is rejected upstream; counts mixing here means
			// one list uses callbacks and the other expressions.
			return StrategyMixed
		}
	}

	if res.TimeType == nil {
		return StrategyMixed
	}
	switch *res.TimeType {
	case model.TimeTypeConstant:
		return StrategyConstant
	case model.TimeTypeConstHExprC, model.TimeTypeExprHConstC, model.TimeTypeExprHExprC:
		return StrategyExpr
	case model.TimeTypeConstHFuncC, model.TimeTypeFuncHConstC, model.TimeTypeFuncHFuncC:
		return StrategyCallback
	case model.TimeTypeFuncWhole:
		return StrategyCallbackWhole
	default:
		return StrategyMixed
	}
}
