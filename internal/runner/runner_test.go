package runner

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/common-creation/debugfixture/internal/config"
	"github.com/common-creation/debugfixture/internal/errors"
	"github.com/common-creation/debugfixture/internal/logging"
)

const expectedOutput = `Starting Rust debug test
Sum: 30, Product: 200
Result: 230
Running total: 1
Running total: 3
Running total: 6
Running total: 10
Running total: 15
Final total: 15
`

func TestRun_DefaultOutput(t *testing.T) {
	var out bytes.Buffer
	report, err := New(config.NewDefaultConfig(), &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, expectedOutput, out.String())
	assert.Len(t, strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), 9)

	assert.Equal(t, int64(30), report.Sum)
	assert.Equal(t, int64(200), report.Product)
	assert.Equal(t, int64(230), report.Result)
	assert.Equal(t, report.Sum+report.Product, report.Result)
	assert.Equal(t, []int64{1, 3, 6, 10, 15}, report.RunningTotals)
	assert.Equal(t, int64(15), report.FinalTotal)
	assert.Equal(t, strings.Split(strings.TrimSuffix(expectedOutput, "\n"), "\n"), report.Lines)
	assert.NotEmpty(t, report.RunID)
}

func TestRun_Idempotent(t *testing.T) {
	cfg := config.NewDefaultConfig()

	var first, second bytes.Buffer
	r1, err := New(cfg, &first).Run(context.Background())
	require.NoError(t, err)
	r2, err := New(cfg, &second).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestRun_CustomInputs(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Fixture.Banner = "Starting Go debug test"
	cfg.Fixture.A = -2
	cfg.Fixture.B = 5
	cfg.Fixture.Items = []int64{4, -1}

	var out bytes.Buffer
	_, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `Starting Go debug test
Sum: 3, Product: -10
Result: -7
Running total: 4
Running total: 3
Final total: 3
`, out.String())
}

func TestRun_InputBounds(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Fixture.A = config.MaxInputMagnitude
	cfg.Fixture.B = config.MaxInputMagnitude
	cfg.Fixture.Items = []int64{config.MaxInputMagnitude, -config.MaxInputMagnitude}
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	report, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1_000_000_000_000_000_000), report.Product)
	assert.Equal(t, int64(1_000_000_002_000_000_000), report.Result)
	assert.Contains(t, out.String(), "Sum: 2000000000, Product: 1000000000000000000\n")
	assert.Contains(t, out.String(), "Result: 1000000002000000000\n")
	assert.Contains(t, out.String(), "Final total: 0\n")

	cfg.Fixture.A = -config.MaxInputMagnitude
	out.Reset()
	report, err = New(cfg, &out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(-1_000_000_000_000_000_000), report.Product)
	assert.Contains(t, out.String(), "Product: -1000000000000000000\n")
}

func TestRun_EmptySequence(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Fixture.Items = nil

	var out bytes.Buffer
	report, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Starting Rust debug test\nSum: 30, Product: 200\nResult: 230\nFinal total: 0\n", out.String())
	assert.Empty(t, report.RunningTotals)
}

func TestRun_EmptySequenceJSON(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Fixture.Items = nil
	cfg.Output.Format = FormatJSON
	cfg.Output.Indent = false

	var out bytes.Buffer
	_, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"items":[]`)
	assert.Contains(t, out.String(), `"running_totals":[]`)
	assert.NotContains(t, out.String(), "null")
}

func TestRun_CopiesItems(t *testing.T) {
	cfg := config.NewDefaultConfig()
	r := New(cfg, &bytes.Buffer{})
	cfg.Fixture.Items[0] = 100

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(15), report.FinalTotal)
}

func TestRun_JSONFormat(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Output.Format = FormatJSON

	var out bytes.Buffer
	_, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "Starting Rust debug test", decoded.Banner)
	assert.Equal(t, int64(10), decoded.A)
	assert.Equal(t, int64(20), decoded.B)
	assert.Equal(t, int64(230), decoded.Result)
	assert.Equal(t, []int64{1, 3, 6, 10, 15}, decoded.RunningTotals)
	assert.Equal(t, int64(15), decoded.FinalTotal)
	assert.Len(t, decoded.Lines, 9)
	assert.Empty(t, decoded.RunID)
	assert.NotContains(t, out.String(), "Starting Rust debug test\n")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	var again bytes.Buffer
	_, err = New(cfg, &again).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, out.String(), again.String())
}

func TestRun_JSONIndent(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Output.Format = FormatJSON
	cfg.Output.Indent = true

	var out bytes.Buffer
	_, err := New(cfg, &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\n  \"sum\": 30,")
}

func TestRun_UnknownFormat(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Output.Format = "xml"

	_, err := New(cfg, &bytes.Buffer{}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := New(config.NewDefaultConfig(), &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

type failingWriter struct {
	after int
	n     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n >= w.after {
		return 0, stderrors.New("pipe closed")
	}
	w.n++
	return len(p), nil
}

func TestRun_WriteError(t *testing.T) {
	_, err := New(config.NewDefaultConfig(), &failingWriter{after: 3}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSystem))
	assert.Contains(t, err.Error(), "pipe closed")
}

func TestRun_LogsSteps(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(&logs, logging.LoggingConfig{Level: "debug", Format: "logfmt"})
	require.NoError(t, err)

	ctx := logging.WithLogger(context.Background(), logger)
	report, err := New(config.NewDefaultConfig(), &bytes.Buffer{}).Run(ctx)
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "run_id="+report.RunID)
	assert.Contains(t, out, "sum=30")
	assert.Contains(t, out, "final_total=15")
	assert.Equal(t, 5, strings.Count(out, "accumulated"))
}
