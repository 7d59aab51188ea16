// Package charts renders the dashboard's scatter, bar and donut charts as SVG.
package charts

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a chart would have nothing to draw.
var ErrNoData = errors.New("no data to chart")

// palette is the qualitative colour sequence used for groups and bars.
var palette = []string{
	"636EFA", "EF553B", "00CC96", "AB63FA", "FFA15A",
	"19D3F3", "FF6692", "B6E880", "FF97FF", "FECB52",
}

// Color returns the i-th palette colour, wrapping around.
func Color(i int) drawing.Color {
	return drawing.ColorFromHex(palette[i%len(palette)])
}

// ColorHex returns the i-th palette colour as "#rrggbb".
func ColorHex(i int) string {
	return "#" + palette[i%len(palette)]
}

// Options sizes the rendered charts in pixels.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults(w, h int) Options {
	if o.Width <= 0 {
		o.Width = w
	}
	if o.Height <= 0 {
		o.Height = h
	}
	return o
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderSVG(c renderable) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HoverValue is one hover field of a point. A missing value encodes as null.
type HoverValue struct {
	Field string
	Value float64
}

// MarshalJSON implements json.Marshaler.
func (h HoverValue) MarshalJSON() ([]byte, error) {
	v := struct {
		Field string   `json:"field"`
		Value *float64 `json:"value"`
	}{Field: h.Field}
	if !math.IsNaN(h.Value) && !math.IsInf(h.Value, 0) {
		v.Value = &h.Value
	}
	return json.Marshal(v)
}
