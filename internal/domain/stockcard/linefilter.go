package stockcard

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"stockcard/internal/core/apperror"
)

// LineFilter is a compiled CEL predicate over emitted ledger lines.
// It is a presentation filter only: opening, closing and running
// balances are always computed over the full movement selection, the
// filter merely drops lines from the output.
type LineFilter struct {
	expr    string
	program cel.Program
}

// lineFilterEnv declares the variables a filter expression may use.
func lineFilterEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("date", cel.TimestampType),
		cel.Variable("reference", cel.StringType),
		cel.Variable("doc_type", cel.StringType),
		cel.Variable("source", cel.StringType),
		cel.Variable("destination", cel.StringType),
		cel.Variable("lot", cel.StringType),
		cel.Variable("qty_in", cel.DoubleType),
		cel.Variable("qty_out", cel.DoubleType),
		cel.Variable("balance", cel.DoubleType),
	)
}

// CompileLineFilter compiles an expression at wizard acceptance time.
// An empty expression yields a nil filter (keep everything); a broken
// one yields a validation error so the wizard is rejected up front.
func CompileLineFilter(expr string) (*LineFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := lineFilterEnv()
	if err != nil {
		return nil, fmt.Errorf("line filter env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, apperror.NewValidation("invalid line filter expression").
			WithDetail("expression", expr).
			WithDetail("error", iss.Err().Error())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, apperror.NewValidation("line filter must be a boolean expression").
			WithDetail("expression", expr).
			WithDetail("type", ast.OutputType().String())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("line filter program: %w", err)
	}

	return &LineFilter{expr: expr, program: program}, nil
}

// Expression returns the source expression.
func (f *LineFilter) Expression() string { return f.expr }

// Match evaluates the filter against one line.
func (f *LineFilter) Match(line LedgerLine) (bool, error) {
	out, _, err := f.program.Eval(map[string]any{
		"date":        line.Date,
		"reference":   line.Reference,
		"doc_type":    string(line.DocType),
		"source":      line.Source,
		"destination": line.Destination,
		"lot":         line.Lot,
		"qty_in":      line.QtyIn,
		"qty_out":     line.QtyOut,
		"balance":     line.Balance,
	})
	if err != nil {
		return false, apperror.NewValidation("line filter evaluation failed").
			WithDetail("expression", f.expr).
			WithDetail("error", err.Error())
	}

	matched, ok := out.Value().(bool)
	if !ok {
		return false, apperror.NewValidation("line filter did not produce a boolean").
			WithDetail("expression", f.expr)
	}

	return matched, nil
}

// Apply returns the lines that match. A nil filter keeps everything.
func (f *LineFilter) Apply(lines []LedgerLine) ([]LedgerLine, error) {
	if f == nil {
		return lines, nil
	}

	kept := make([]LedgerLine, 0, len(lines))
	for _, line := range lines {
		ok, err := f.Match(line)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, line)
		}
	}

	return kept, nil
}
