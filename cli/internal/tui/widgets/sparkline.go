// ABOUTME: Sparkline widget for compact trend visualization
// ABOUTME: Renders a value series as Unicode block characters with threshold coloring

package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SparklineBlocks are the Unicode block characters used for sparklines
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values scaled between their minimum and maximum.
// Values are resampled to width; shorter series are left padded.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	var b strings.Builder
	for _, v := range sampled {
		b.WriteRune(valueToBlock(v, lo, hi))
	}
	return b.String()
}

// ColoredSparkline renders a sparkline with each block colored by
// threshold. Values at or above crit render red, at or above warn amber.
func ColoredSparkline(values []float64, width int, warn, crit float64) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	sampled := sampleValues(values, width)
	lo, hi := bounds(sampled)

	var b strings.Builder
	for _, v := range sampled {
		level := StatusOK
		if v >= crit {
			level = StatusCritical
		} else if v >= warn {
			level = StatusWarning
		}
		b.WriteString(lipgloss.NewStyle().Foreground(levelColors[level]).Render(string(valueToBlock(v, lo, hi))))
	}
	return b.String()
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// sampleValues resamples the values slice to the target width
func sampleValues(values []float64, width int) []float64 {
	if len(values) == width {
		return values
	}
	result := make([]float64, width)
	if len(values) < width {
		copy(result[width-len(values):], values)
		return result
	}
	ratio := float64(len(values)) / float64(width)
	for i := range result {
		idx := min(int(float64(i)*ratio), len(values)-1)
		result[i] = values[idx]
	}
	return result
}

// valueToBlock converts a value to a block character based on its position in the range
func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}
	idx := int((value - lo) / (hi - lo) * float64(len(SparklineBlocks)-1))
	idx = min(max(idx, 0), len(SparklineBlocks)-1)
	return SparklineBlocks[idx]
}
