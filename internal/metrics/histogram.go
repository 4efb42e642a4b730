package metrics

import (
	"fmt"
	"math"
	"slices"
)

const DefaultBins = 10

// Bin counts values in [Lo, Hi). The last bin of a histogram also includes Hi.
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

func (b Bin) Label() string {
	return fmt.Sprintf("%s-%s", trim(b.Lo), trim(b.Hi))
}

// Histogram splits [min, max] of values into n equal-width bins.
// When every value is equal the range is widened by 0.5 on each side.
// No values yields an empty, non-nil slice.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 {
		return []Bin{}
	}
	if n <= 0 {
		n = DefaultBins
	}

	lo, hi := slices.Min(values), slices.Max(values)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}

func trim(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
