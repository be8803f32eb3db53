package anim

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrClock is returned for unusable sampling parameters.
var ErrClock = errors.New("anim: invalid clock parameters")

// Trace is a recorded rotation sequence. Each row holds the value of every
// column at the matching time.
type Trace struct {
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	Rows    [][]float64 `json:"rows"`
}

// Samples returns 0, 1/fps, 2/fps, ... up to and including duration.
func Samples(fps, duration float64) ([]ClockSample, error) {
	if !finite(fps) || !finite(duration) || fps <= 0 || duration < 0 {
		return nil, errors.Wrapf(ErrClock, "fps=%g duration=%g", fps, duration)
	}
	n := int(duration*fps+1e-9) + 1
	out := make([]ClockSample, n)
	for i := range out {
		out[i] = ClockSample(float64(i) / fps)
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func column(b Binding) string {
	return fmt.Sprintf("%s.%s", b.Group, b.Axis)
}

// Record ticks d through samples and captures the bound axis of every
// binding after each tick. Missing groups record zero.
func Record(d *Driver, samples []ClockSample) Trace {
	bindings := d.Bindings()
	tr := Trace{
		Columns: make([]string, len(bindings)),
		Times:   make([]float64, 0, len(samples)),
		Rows:    make([][]float64, 0, len(samples)),
	}
	for i, b := range bindings {
		tr.Columns[i] = column(b)
	}
	for _, t := range samples {
		d.Tick(t)
		row := make([]float64, len(bindings))
		for i, b := range bindings {
			if r, ok := d.Rotation(b.Group); ok {
				row[i] = r[b.Axis]
			}
		}
		tr.Times = append(tr.Times, float64(d.Last()))
		tr.Rows = append(tr.Rows, row)
	}
	return tr
}

// Column returns the series for name, or nil.
func (tr Trace) Column(name string) []float64 {
	for i, c := range tr.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(tr.Rows))
		for j, row := range tr.Rows {
			out[j] = row[i]
		}
		return out
	}
	return nil
}
