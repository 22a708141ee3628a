package model

// Mode selects which discriminant the classifier computes.
type Mode string

const (
	// ModeAggregate sums term counts across the Hamiltonian and collapse
	// operators (master-equation style solvers).
	ModeAggregate Mode = "aggregate"
	// ModeDetailed resolves a TimeType code plus the raw per-list partitions
	// (Monte Carlo style solvers).
	ModeDetailed Mode = "detailed"
)

// Partition holds the term indices of one specification list, split by
// time-dependence encoding. Sampled arrays count as expression terms because
// the normalizer rewrites them into expression strings.
type Partition struct {
	Const []int `json:"const"` // bare operator terms
	Funcs []int `json:"funcs"` // callback terms
	Exprs []int `json:"exprs"` // expression-string and sampled-array terms
}

// IsConstant reports whether the list carries no time-dependent terms.
func (p Partition) IsConstant() bool {
	return len(p.Funcs) == 0 && len(p.Exprs) == 0
}

// Counts is the aggregate-mode discriminant: term totals summed across the
// Hamiltonian and the collapse operators.
type Counts struct {
	Const int `json:"const"`
	Funcs int `json:"funcs"`
	Exprs int `json:"exprs"`
}

// TimeType is the detailed-mode discriminant code. The tens digit describes
// the Hamiltonian, the ones digit the collapse operators.
type TimeType int

const (
	TimeTypeConstant      TimeType = 0  // fully time-independent
	TimeTypeConstHExprC   TimeType = 1  // constant H, expression collapse terms
	TimeTypeConstHFuncC   TimeType = 2  // constant H, callback collapse terms
	TimeTypeFuncWhole     TimeType = 3  // whole-specification callback Hamiltonian
	TimeTypeExprHConstC   TimeType = 10 // expression H terms, constant collapse
	TimeTypeExprHExprC    TimeType = 11 // expression H terms, expression collapse terms
	TimeTypeFuncHConstC   TimeType = 20 // callback H terms, constant collapse
	TimeTypeFuncHFuncC    TimeType = 22 // callback H terms, callback collapse terms
)

// Result is the classification outcome. Counts is set only in aggregate mode,
// TimeType only in detailed mode; the other is nil and omitted from reports.
// The per-list partitions are always filled for list-form specifications.
type Result struct {
	Mode     Mode      `json:"mode"`
	Counts   *Counts   `json:"counts,omitempty"`
	TimeType *TimeType `json:"time_type,omitempty"`
	H        Partition `json:"hamiltonian"`
	C        Partition `json:"collapse"`
}
