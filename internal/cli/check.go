package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/qsolve/tdprep/internal/model"
	"github.com/qsolve/tdprep/internal/prep"
	"github.com/qsolve/tdprep/internal/specfile"
	"github.com/spf13/cobra"
)

var (
	modeFlag        string
	outJSON         string
	compilerVersion string
	noCompiler      bool
	noCache         bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <spec.yaml>",
	Short: "Validate and classify an operator specification document",
	Long: `Check loads a specification document, validates its shape, classifies
its time-dependence encoding, and rewrites sampled-array terms into
the expression-string format.

The report contains the discriminant (aggregate counts or the detailed
time-type code with per-list partitions), the selected execution
strategy, the rewritten expression terms, and the names of any
synthesized lookup parameters.

Example:
  tdprep check spec.yaml
  tdprep check spec.yaml --mode aggregate --json report.json
  tdprep check spec.yaml --no-compiler`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&modeFlag, "mode", "", "classification mode (aggregate, detailed)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	checkCmd.Flags().StringVar(&compilerVersion, "compiler-version", "", "expression-compiler version of the target runtime")
	checkCmd.Flags().BoolVar(&noCompiler, "no-compiler", false, "assume the target runtime has no expression compiler")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable classification memoization")
}

// checkReport is the JSON report emitted by the check command.
type checkReport struct {
	File        string        `json:"file"`
	Result      *model.Result `json:"result"`
	Strategy    prep.Strategy `json:"strategy"`
	Hamiltonian []termReport  `json:"hamiltonian"`
	Collapse    []termReport  `json:"collapse"`
	ArgKeys     []string      `json:"arg_keys,omitempty"`
}

type termReport struct {
	Op   string `json:"op"`
	Expr string `json:"expr,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := specfile.Load(path)
	if err != nil {
		return err
	}

	h, c, err := doc.Specs()
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	if modeFlag != "" {
		cfg.Mode = model.Mode(modeFlag)
	}
	if compilerVersion != "" {
		cfg.Compiler.Version = compilerVersion
	}
	if noCompiler {
		cfg.Compiler.Available = false
	}
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	p := prep.New(cfg)
	plan, err := p.Prepare(h, c, anyArgs(doc.Args), doc.Times)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	report := buildReport(path, plan)

	printSummary(report)

	if outJSON != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Report written: %s\n", outJSON)
		}
	}

	return nil
}

// anyArgs keeps a missing args section indistinguishable from "no extras" for
// the normalizer's merge policy.
func anyArgs(args map[string]any) any {
	if args == nil {
		return nil
	}
	return args
}

func buildReport(path string, plan *prep.Plan) *checkReport {
	report := &checkReport{
		File:        path,
		Result:      plan.Result,
		Strategy:    plan.Strategy,
		Hamiltonian: termReports(plan.H),
		Collapse:    termReports(plan.C),
	}
	if params, ok := plan.Args.(model.Params); ok {
		for k := range params {
			report.ArgKeys = append(report.ArgKeys, k)
		}
		sort.Strings(report.ArgKeys)
	}
	return report
}

func termReports(spec model.Specification) []termReport {
	if spec.Kind() != model.KindList {
		return nil
	}
	out := make([]termReport, 0, len(spec.Terms()))
	for _, term := range spec.Terms() {
		tr := termReport{Op: term.Op().ID()}
		if e, ok := term.TD().(model.Expr); ok {
			tr.Expr = string(e)
		}
		out = append(out, tr)
	}
	return out
}

func printSummary(report *checkReport) {
	fmt.Printf("Specification: %s\n", report.File)
	if report.Result.Counts != nil {
		fmt.Printf("Counts: %d constant, %d callback, %d expression\n",
			report.Result.Counts.Const, report.Result.Counts.Funcs, report.Result.Counts.Exprs)
	}
	if report.Result.TimeType != nil {
		fmt.Printf("Time type: %d\n", *report.Result.TimeType)
	}
	fmt.Printf("Strategy: %s\n", report.Strategy)
	if len(report.ArgKeys) > 0 {
		fmt.Printf("Parameters: %d\n", len(report.ArgKeys))
	}
}
