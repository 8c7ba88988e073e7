// Package runner drives the fixture program: it computes the sum, product
// and result of two operands, accumulates a running total over a sequence,
// and prints a line at every step.
package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/common-creation/debugfixture/internal/calc"
	"github.com/common-creation/debugfixture/internal/config"
	"github.com/common-creation/debugfixture/internal/errors"
	"github.com/common-creation/debugfixture/internal/logging"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Runner owns the inputs of one fixture run and the writer it prints to.
type Runner struct {
	banner string
	a, b   int64
	items  []int64
	format string
	indent bool
	out    io.Writer
}

// New creates a runner for cfg that prints to out.
func New(cfg *config.Config, out io.Writer) *Runner {
	items := make([]int64, len(cfg.Fixture.Items))
	copy(items, cfg.Fixture.Items)

	return &Runner{
		banner: cfg.Fixture.Banner,
		a:      cfg.Fixture.A,
		b:      cfg.Fixture.B,
		items:  items,
		format: cfg.Output.Format,
		indent: cfg.Output.Indent,
		out:    out,
	}
}

// Run executes the fixture. In text format each line is written as soon as
// its step completes; in json format the report is written once at the end.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.format != FormatText && r.format != FormatJSON {
		return nil, errors.Config("run fixture", fmt.Errorf("unknown output format %q", r.format))
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Banner: r.banner,
		A:      r.a,
		B:      r.b,
		Items:  r.items,
	}
	logger := logging.FromContext(ctx).With("run_id", report.RunID)
	logger.Debug("fixture run started", "a", r.a, "b", r.b, "items", len(r.items), "format", r.format)

	if err := r.emit(report, r.banner); err != nil {
		return nil, err
	}

	breakdown := calc.Calculate(r.a, r.b)
	report.Sum = breakdown.Sum
	report.Product = breakdown.Product
	logger.Debug("calculated", "sum", breakdown.Sum, "product", breakdown.Product)
	if err := r.emit(report, fmt.Sprintf("Sum: %d, Product: %d", breakdown.Sum, breakdown.Product)); err != nil {
		return nil, err
	}

	report.Result = breakdown.Result
	if err := r.emit(report, fmt.Sprintf("Result: %d", breakdown.Result)); err != nil {
		return nil, err
	}

	report.RunningTotals = calc.RunningTotals(r.items)
	for i, total := range report.RunningTotals {
		logger.Debug("accumulated", "index", i, "item", r.items[i], "total", total)
		if err := r.emit(report, fmt.Sprintf("Running total: %d", total)); err != nil {
			return nil, err
		}
	}

	report.FinalTotal = calc.Total(report.RunningTotals)
	if err := r.emit(report, fmt.Sprintf("Final total: %d", report.FinalTotal)); err != nil {
		return nil, err
	}

	if r.format == FormatJSON {
		if err := report.WriteJSON(r.out, r.indent); err != nil {
			return nil, errors.System("write output", err)
		}
	}

	logger.Debug("fixture run finished", "result", report.Result, "final_total", report.FinalTotal)
	return report, nil
}

// emit records line in the report and, in text format, prints it.
func (r *Runner) emit(report *Report, line string) error {
	report.Lines = append(report.Lines, line)
	if r.format != FormatText {
		return nil
	}
	if _, err := fmt.Fprintln(r.out, line); err != nil {
		return errors.System("write output", err)
	}
	return nil
}
