package prep

import (
	"errors"
	"reflect"
	"testing"

	"github.com/qsolve/tdprep/internal/classify"
	"github.com/qsolve/tdprep/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Compiler = model.CompilerConfig{Available: true, Version: "3.0.11"}
	return cfg
}

func decay(t float64, args model.Params) complex128 { return complex(1/(1+t), 0) }

func TestPrepare_ConstantFastPath(t *testing.T) {
	p := New(testConfig())

	plan, err := p.Prepare(model.Constant(model.Named("H0")), model.List(), nil, nil)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if plan.Strategy != StrategyConstant {
		t.Errorf("Expected strategy %s, got %s", StrategyConstant, plan.Strategy)
	}
	if plan.Result.TimeType == nil || *plan.Result.TimeType != model.TimeTypeConstant {
		t.Errorf("Expected time type 0, got %v", plan.Result.TimeType)
	}
}

func TestPrepare_ArraysBecomeExpressions(t *testing.T) {
	p := New(testConfig())

	h := model.List(
		model.Timed(model.Named("opA"), model.Samples{0, 0.5, 1}),
		model.Bare(model.Named("opB")),
	)

	plan, err := p.Prepare(h, model.List(), nil, []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if plan.Strategy != StrategyExpr {
		t.Errorf("Expected strategy %s, got %s", StrategyExpr, plan.Strategy)
	}
	for _, term := range plan.H.Terms() {
		if _, ok := term.TD().(model.Samples); ok {
			t.Errorf("Array descriptor reached the plan")
		}
	}
	params, ok := plan.Args.(model.Params)
	if !ok || len(params) != 1 {
		t.Errorf("Expected one synthesized parameter, got %v", plan.Args)
	}
}

func TestPrepare_StrategySelection(t *testing.T) {
	p := New(testConfig())

	hFunc := model.List(model.Timed(model.Named("opA"), model.Coeff(decay)))
	cases := []struct {
		name string
		h    model.Specification
		c    model.Specification
		want Strategy
	}{
		{"whole callback", model.Func(decay), model.List(), StrategyCallbackWhole},
		{"callback terms", hFunc, model.List(), StrategyCallback},
		{"expr collapse", model.Constant(model.Named("H0")),
			model.List(model.Timed(model.Named("a"), model.Expr("exp(-t)"))), StrategyExpr},
	}

	for _, tc := range cases {
		plan, err := p.Prepare(tc.h, tc.c, nil, nil)
		if err != nil {
			t.Errorf("%s: Prepare failed: %v", tc.name, err)
			continue
		}
		if plan.Strategy != tc.want {
			t.Errorf("%s: expected strategy %s, got %s", tc.name, tc.want, plan.Strategy)
		}
	}
}

func TestPrepare_AggregateMixedStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Mode = model.ModeAggregate
	p := New(cfg)

	h := model.List(model.Timed(model.Named("opA"), model.Coeff(decay)))
	c := model.List(model.Timed(model.Named("a"), model.Expr("exp(-t)")))

	plan, err := p.Prepare(h, c, nil, nil)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if plan.Strategy != StrategyMixed {
		t.Errorf("Expected strategy %s, got %s", StrategyMixed, plan.Strategy)
	}
}

func TestPrepare_ClassificationErrorsPropagate(t *testing.T) {
	p := New(testConfig())

	h := model.List(
		model.Timed(model.Named("opA"), model.Coeff(decay)),
		model.Timed(model.Named("opB"), model.Expr("sin(t)")),
	)
	_, err := p.Prepare(h, model.List(), nil, nil)
	if !errors.Is(err, classify.ErrMixedEncoding) {
		t.Errorf("Expected ErrMixedEncoding, got %v", err)
	}
}

func TestPrepare_MemoizedClassification(t *testing.T) {
	p := New(testConfig())

	h := model.List(
		model.Bare(model.Named("H0")),
		model.Timed(model.Named("H1"), model.Expr("sin(t)")),
	)

	first, err := p.Prepare(h, model.List(), nil, nil)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	second, err := p.Prepare(h, model.List(), nil, nil)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if !reflect.DeepEqual(first.Result, second.Result) {
		t.Errorf("Memoized result differs: %+v vs %+v", first.Result, second.Result)
	}
}

func TestFingerprint_DependsOnStructureOnly(t *testing.T) {
	h1 := model.List(model.Timed(model.Named("opA"), model.Expr("sin(t)")))
	h2 := model.List(model.Timed(model.Named("opA"), model.Expr("cos(2*t)")))
	c := model.List()

	// Same shape, different coefficient values: same fingerprint.
	if Fingerprint(h1, c, model.ModeDetailed) != Fingerprint(h2, c, model.ModeDetailed) {
		t.Errorf("Fingerprint depends on coefficient values")
	}

	// Different descriptor kind: different fingerprint.
	h3 := model.List(model.Timed(model.Named("opA"), model.Samples{0, 1}))
	if Fingerprint(h1, c, model.ModeDetailed) == Fingerprint(h3, c, model.ModeDetailed) {
		t.Errorf("Fingerprint ignores descriptor kind")
	}

	// Different mode: different fingerprint.
	if Fingerprint(h1, c, model.ModeDetailed) == Fingerprint(h1, c, model.ModeAggregate) {
		t.Errorf("Fingerprint ignores mode")
	}
}
