package runner

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report records everything a run computed and printed.
type Report struct {
	// RunID identifies the run in logs. It is not part of the encoded report
	// so repeated runs encode identically.
	RunID string `json:"-"`

	Banner  string `json:"banner"`
	A       int64  `json:"a"`
	B       int64  `json:"b"`
	Sum     int64  `json:"sum"`
	Product int64  `json:"product"`
	Result  int64  `json:"result"`

	Items         []int64 `json:"items"`
	RunningTotals []int64 `json:"running_totals"`
	FinalTotal    int64   `json:"final_total"`

	// Lines holds the text-format output, one entry per line.
	Lines []string `json:"lines"`
}

// WriteJSON encodes the report to w as a single JSON document.
func (r *Report) WriteJSON(w io.Writer, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
