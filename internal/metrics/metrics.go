package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/masmgr/gitgauge-go/internal/contributor"
)

// Metric selects the per-contributor value compared across a team.
type Metric string

const (
	MetricCommits      Metric = "commits"
	MetricCommitSize   Metric = "commit_size"
	MetricAbsoluteDiff Metric = "absolute_diff"
)

// ParseMetric parses a metric name. Unknown names are an error.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricCommits, MetricCommitSize, MetricAbsoluteDiff:
		return m, nil
	case "":
		return MetricCommits, nil
	default:
		return "", fmt.Errorf("unknown metric %q (expected commits, commit_size or absolute_diff)", s)
	}
}

// TotalLines returns additions + deletions.
func TotalLines(c contributor.Contributor) int {
	return c.Additions + c.Deletions
}

// LinesPerCommit returns total lines divided by commits, rounded half away from zero.
// Returns 0 for a contributor without commits.
func LinesPerCommit(c contributor.Contributor) int {
	if c.TotalCommits == 0 {
		return 0
	}
	return int(math.Round(float64(TotalLines(c)) / float64(c.TotalCommits)))
}

// AbsoluteDiff returns |additions - deletions|.
func AbsoluteDiff(c contributor.Contributor) int {
	d := c.Additions - c.Deletions
	if d < 0 {
		return -d
	}
	return d
}

// CommitSize returns the unrounded average lines per commit, 0 without commits.
func CommitSize(c contributor.Contributor) float64 {
	if c.TotalCommits == 0 {
		return 0
	}
	return float64(TotalLines(c)) / float64(c.TotalCommits)
}

// Value returns the contributor's value for metric.
func Value(c contributor.Contributor, metric Metric) float64 {
	switch metric {
	case MetricCommitSize:
		return CommitSize(c)
	case MetricAbsoluteDiff:
		return float64(AbsoluteDiff(c))
	default:
		return float64(c.TotalCommits)
	}
}

// Values returns the metric value of each contributor, in input order.
func Values(users []contributor.Contributor, metric Metric) []float64 {
	values := make([]float64, len(users))
	for i, u := range users {
		values[i] = Value(u, metric)
	}
	return values
}

// Mean returns the team average of metric, 0 for an empty team.
func Mean(users []contributor.Contributor, metric Metric) float64 {
	if len(users) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range Values(users, metric) {
		sum += v
	}
	return sum / float64(len(users))
}

// StdDev returns the population standard deviation of metric over the team.
func StdDev(users []contributor.Contributor, metric Metric) float64 {
	if len(users) == 0 {
		return 0
	}
	mean := Mean(users, metric)
	variance := 0.0
	for _, v := range Values(users, metric) {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(users)))
}

// RefPoints returns mean-2sd, mean-sd, mean, mean+sd and mean+2sd.
func RefPoints(mean, sd float64) [5]float64 {
	return [5]float64{mean - 2*sd, mean - sd, mean, mean + sd, mean + 2*sd}
}

// ScalingFactor maps a value's z-score to a display scale.
// |z| <= 1 gives 1.0, 1 < z <= 2 gives 1.1, -2 <= z < -1 gives 0.9, and
// anything further out gives 1.2 above the mean or 0.8 below it.
func ScalingFactor(value, mean, sd float64) float64 {
	if sd == 0 {
		return 1.0
	}
	z := (value - mean) / sd
	switch {
	case math.Abs(z) <= 1:
		return 1.0
	case z > 1 && z <= 2:
		return 1.1
	case z < -1 && z >= -2:
		return 0.9
	case z < 0:
		return 0.8
	default:
		return 1.2
	}
}
