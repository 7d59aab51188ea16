package dashboard

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

// MetricPair is the max and min of one summarized field. Values keep full
// precision; FormatValue is applied only for display.
type MetricPair struct {
	Field string
	Max   float64
	Min   float64
}

// MaxLabel returns the tile label for the maximum, e.g. "Max SNR".
func (p MetricPair) MaxLabel() string { return "Max " + p.Field }

// MinLabel returns the tile label for the minimum.
func (p MetricPair) MinLabel() string { return "Min " + p.Field }

// Tile is one labelled summary value.
type Tile struct {
	Label string
	Value float64
}

// Display returns the value with two decimals.
func (t Tile) Display() string { return FormatValue(t.Value) }

// FormatValue renders a metric with exactly two decimals. NaN is "nan".
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}

// Summarize computes the max and min of each metric field, in MetricFields order.
// Null cells are skipped; a column with no values yields NaN for both.
func Summarize(t *dataset.Table) ([]MetricPair, error) {
	fields := MetricFields()
	pairs := make([]MetricPair, 0, len(fields))
	for _, field := range fields {
		if err := requireField(t.Has, field); err != nil {
			return nil, err
		}
		vals, err := t.Floats(field)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", field, err)
		}
		maxV, minV := extent(vals)
		pairs = append(pairs, MetricPair{Field: field, Max: maxV, Min: minV})
	}
	return pairs, nil
}

// Tiles flattens pairs into max/min tiles in pair order.
func Tiles(pairs []MetricPair) []Tile {
	tiles := make([]Tile, 0, 2*len(pairs))
	for _, p := range pairs {
		tiles = append(tiles,
			Tile{Label: p.MaxLabel(), Value: p.Max},
			Tile{Label: p.MinLabel(), Value: p.Min},
		)
	}
	return tiles
}

func extent(vals []float64) (maxV, minV float64) {
	maxV, minV = math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(maxV) || v > maxV {
			maxV = v
		}
		if math.IsNaN(minV) || v < minV {
			minV = v
		}
	}
	return maxV, minV
}
