// Package calc holds the arithmetic the fixture program steps through.
package calc

// Breakdown is the outcome of Calculate.
type Breakdown struct {
	Sum     int64 `json:"sum" yaml:"sum"`
	Product int64 `json:"product" yaml:"product"`
	Result  int64 `json:"result" yaml:"result"`
}

// Calculate derives the sum and product of x and y and combines them.
// Result is always Sum + Product. Operands within ±1e9 cannot overflow.
func Calculate(x, y int64) Breakdown {
	sum := x + y
	product := x * y
	return Breakdown{
		Sum:     sum,
		Product: product,
		Result:  sum + product,
	}
}

// RunningTotals returns the prefix sums of items, one entry per element.
func RunningTotals(items []int64) []int64 {
	totals := make([]int64, 0, len(items))
	var total int64
	for _, item := range items {
		total += item
		totals = append(totals, total)
	}
	return totals
}

// Total returns the last running total, or 0 for an empty sequence.
func Total(totals []int64) int64 {
	if len(totals) == 0 {
		return 0
	}
	return totals[len(totals)-1]
}
