package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// MinMax represents the observed range of a metric.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Range returns max - min.
func (m MinMax) Range() float64 {
	return m.Max - m.Min
}

// IsSingleValue returns true if min equals max (within tolerance).
func (m MinMax) IsSingleValue() bool {
	return math.Abs(m.Max-m.Min) < 1e-10
}

// Range returns the smallest and largest metric value over the team.
// An empty team has the zero range.
func Range(users []contributor.Contributor, metric Metric) MinMax {
	if len(users) == 0 {
		return MinMax{}
	}
	values := Values(users, metric)
	return MinMax{Min: slices.Min(values), Max: slices.Max(values)}
}

// Point places one contributor on a metric axis.
type Point struct {
	Username string  `json:"username"`
	Value    float64 `json:"value"`
	// Offset spreads contributors sharing a value around it: for k equal
	// values the offsets are i - (k-1)/2. Zero when the value is unique.
	Offset float64 `json:"offset"`
}

// Distribution returns every contributor's value in ascending order.
// Commit sizes are rounded to two decimals before ties are detected.
// Ties are ordered by username.
func Distribution(users []contributor.Contributor, metric Metric) []Point {
	points := make([]Point, len(users))
	for i, u := range users {
		v := Value(u, metric)
		if metric == MetricCommitSize {
			v = math.Round(v*100) / 100
		}
		points[i] = Point{Username: u.Username, Value: v}
	}
	slices.SortFunc(points, func(a, b Point) int {
		if c := cmp.Compare(a.Value, b.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Username, b.Username)
	})

	for start := 0; start < len(points); {
		end := start + 1
		for end < len(points) && points[end].Value == points[start].Value {
			end++
		}
		if k := end - start; k > 1 {
			for i := start; i < end; i++ {
				points[i].Offset = float64(i-start) - float64(k-1)/2
			}
		}
		start = end
	}
	return points
}
