package chart

import (
	"math"
	"sort"
)

// Histogram holds equal-width bins. Edges has len(Counts)+1 entries.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// Width returns the bin width.
func (h Histogram) Width() float64 {
	if len(h.Edges) < 2 {
		return 0
	}
	return h.Edges[1] - h.Edges[0]
}

// Centers returns the midpoint of each bin.
func (h Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Counts))
	for i := range h.Counts {
		centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return centers
}

// binValues splits values into n equal-width bins spanning [min, max]. The
// maximum lands in the last bin. When every value is equal a single bin of
// width 1 centred on the value is returned.
func binValues(values []float64, n int) Histogram {
	if len(values) == 0 || n <= 0 {
		return Histogram{}
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo == hi {
		return Histogram{Edges: []float64{lo - 0.5, lo + 0.5}, Counts: []int{len(values)}}
	}

	width := (hi - lo) / float64(n)
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[n] = hi

	counts := make([]int, n)
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return Histogram{Edges: edges, Counts: counts}
}

// sturgesBins is ceil(log2(n)) + 1.
func sturgesBins(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// BoxStats summarises one box-plot group.
type BoxStats struct {
	N          int
	Q1         float64
	Median     float64
	Q3         float64
	LowerFence float64
	UpperFence float64
	Outliers   []float64
}

// boxStats computes quartiles by linear interpolation and Tukey fences: the
// whiskers reach the most extreme values within 1.5 IQR of the box, anything
// beyond is an outlier. values must be non-empty.
func boxStats(values []float64) BoxStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := BoxStats{
		N:      len(sorted),
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}

	iqr := s.Q3 - s.Q1
	lowLimit := s.Q1 - 1.5*iqr
	highLimit := s.Q3 + 1.5*iqr

	s.LowerFence = s.Q1
	s.UpperFence = s.Q3
	for _, v := range sorted {
		if v >= lowLimit {
			s.LowerFence = math.Min(v, s.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highLimit {
			s.UpperFence = math.Max(sorted[i], s.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			s.Outliers = append(s.Outliers, v)
		}
	}
	return s
}

// quantile returns the p-quantile of sorted data using linear interpolation
// between closest ranks.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Count is a label with its number of occurrences.
type Count struct {
	Label string
	Value int
}

// topCounts counts non-empty labels and returns the n most frequent, largest
// first. Ties keep first-appearance order.
func topCounts(labels []string, n int) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, l := range labels {
		if l == "" {
			continue
		}
		i, ok := index[l]
		if !ok {
			i = len(counts)
			index[l] = i
			counts = append(counts, Count{Label: l})
		}
		counts[i].Value++
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Value > counts[j].Value })
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}
