// Package query filters records with expr-lang boolean expressions, e.g.
//
//	!isComplete && text contains "milk"
//	index <= 3 || id startsWith "4f"
package query

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/Makepad-fr/records/internal/model"
)

// env is what an expression sees for one record.
type env struct {
	ID         string `expr:"id"`
	Text       string `expr:"text"`
	IsComplete bool   `expr:"isComplete"`
	Index      int    `expr:"index"` // 1-based position in the list
}

// Filter is a compiled expression.
type Filter struct {
	source  string
	program *exprvm.Program
}

// Compile checks expression against the record environment. It must
// evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := exprlang.Compile(expression, exprlang.Env(env{}), exprlang.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

func (f *Filter) String() string { return f.source }

// Match reports whether the record at 0-based position i matches.
func (f *Filter) Match(r model.Record, i int) (bool, error) {
	out, err := exprlang.Run(f.program, env{ID: r.ID, Text: r.Text, IsComplete: r.IsComplete, Index: i + 1})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", f.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Hit is a matching record with its 0-based position in the source list.
type Hit struct {
	Index  int
	Record model.Record
}

// Apply returns the matching records in list order. A nil filter matches all.
func (f *Filter) Apply(records []model.Record) ([]Hit, error) {
	out := make([]Hit, 0, len(records))
	for i, r := range records {
		if f != nil {
			ok, err := f.Match(r, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, Hit{Index: i, Record: r})
	}
	return out, nil
}
