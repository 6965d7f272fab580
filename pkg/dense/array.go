// Package dense provides labeled multi-dimensional arrays backed by flat
// row-major slices. Arrays are addressed either by integer position or by
// axis labels; every cell not explicitly set holds the array's fill value
// (NaN for Float64, false for Bool), which is how sparse GDX records appear
// once materialized.
package dense

import (
	"fmt"
	"math"
)

// grid holds the shape bookkeeping shared by the concrete array types.
type grid struct {
	axes    []*Axis
	shape   []int
	strides []int
}

// newGrid validates axes against an element budget and precomputes strides.
// budget < 0 disables the check.
func newGrid(budget int64, axes []*Axis) (grid, int, error) {
	if len(axes) == 0 {
		return grid{}, 0, fmt.Errorf("%w: array needs at least one axis", ErrArity)
	}
	total := int64(1)
	shape := make([]int, len(axes))
	for i, a := range axes {
		n := int64(a.Len())
		shape[i] = a.Len()
		if n > 0 && total > math.MaxInt64/n {
			return grid{}, 0, fmt.Errorf("%w: shape %v overflows", ErrBudget, shape[:i+1])
		}
		total *= n
	}
	if budget >= 0 && total > budget {
		return grid{}, 0, fmt.Errorf("%w: %d elements over budget %d", ErrBudget, total, budget)
	}

	strides := make([]int, len(axes))
	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return grid{axes: axes, shape: shape, strides: strides}, int(total), nil
}

// Dim returns the number of axes.
func (g *grid) Dim() int { return len(g.axes) }

// Shape returns a copy of the per-axis lengths.
func (g *grid) Shape() []int {
	out := make([]int, len(g.shape))
	copy(out, g.shape)
	return out
}

// Axes returns the axes in dimension order. The axes themselves are shared,
// immutable values.
func (g *grid) Axes() []*Axis {
	out := make([]*Axis, len(g.axes))
	copy(out, g.axes)
	return out
}

// offset converts a full position index to a flat offset.
func (g *grid) offset(idx []int) (int, error) {
	if len(idx) != len(g.shape) {
		return 0, fmt.Errorf("%w: got %d coordinates for %d dimensions", ErrArity, len(idx), len(g.shape))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= g.shape[d] {
			return 0, fmt.Errorf("%w: %d on dimension %d of length %d", ErrOutOfRange, i, d, g.shape[d])
		}
		off += i * g.strides[d]
	}
	return off, nil
}

// labelOffset converts a full label coordinate to a flat offset.
func (g *grid) labelOffset(labels []string) (int, error) {
	if len(labels) != len(g.shape) {
		return 0, fmt.Errorf("%w: got %d labels for %d dimensions", ErrArity, len(labels), len(g.shape))
	}
	off := 0
	for d, l := range labels {
		i, ok := g.axes[d].Index(l)
		if !ok {
			return 0, fmt.Errorf("%w: %q on axis %q", ErrUnknownLabel, l, g.axes[d].Name())
		}
		off += i * g.strides[d]
	}
	return off, nil
}

// Float64 is a dense float64 array with NaN fill.
type Float64 struct {
	grid
	data []float64
}

// NewFloat64 builds a NaN-filled array over the given axes. budget bounds
// the total element count; budget < 0 disables the bound.
func NewFloat64(budget int64, axes ...*Axis) (*Float64, error) {
	g, n, err := newGrid(budget, axes)
	if err != nil {
		return nil, err
	}
	data := make([]float64, n)
	nan := math.NaN()
	for i := range data {
		data[i] = nan
	}
	return &Float64{grid: g, data: data}, nil
}

// Len returns the total element count.
func (m *Float64) Len() int { return len(m.data) }

// At returns the value at a full label coordinate.
func (m *Float64) At(labels ...string) (float64, error) {
	off, err := m.labelOffset(labels)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// AtIndex returns the value at a full position index.
func (m *Float64) AtIndex(idx ...int) (float64, error) {
	off, err := m.offset(idx)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// Set stores v at a full label coordinate.
func (m *Float64) Set(v float64, labels ...string) error {
	off, err := m.labelOffset(labels)
	if err != nil {
		return err
	}
	m.data[off] = v
	return nil
}

// SetIndex stores v at a full position index.
func (m *Float64) SetIndex(v float64, idx ...int) error {
	off, err := m.offset(idx)
	if err != nil {
		return err
	}
	m.data[off] = v
	return nil
}

// Values returns the flat row-major backing data as a copy.
func (m *Float64) Values() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy sharing only the (immutable) axes.
func (m *Float64) Clone() *Float64 {
	cp := &Float64{grid: m.grid, data: make([]float64, len(m.data))}
	copy(cp.data, m.data)
	return cp
}

// Bool is a dense bool array with false fill, used for set membership.
type Bool struct {
	grid
	data []bool
}

// NewBool builds a false-filled array over the given axes. budget bounds
// the total element count; budget < 0 disables the bound.
func NewBool(budget int64, axes ...*Axis) (*Bool, error) {
	g, n, err := newGrid(budget, axes)
	if err != nil {
		return nil, err
	}
	return &Bool{grid: g, data: make([]bool, n)}, nil
}

// Len returns the total element count.
func (m *Bool) Len() int { return len(m.data) }

// At returns the value at a full label coordinate.
func (m *Bool) At(labels ...string) (bool, error) {
	off, err := m.labelOffset(labels)
	if err != nil {
		return false, err
	}
	return m.data[off], nil
}

// AtIndex returns the value at a full position index.
func (m *Bool) AtIndex(idx ...int) (bool, error) {
	off, err := m.offset(idx)
	if err != nil {
		return false, err
	}
	return m.data[off], nil
}

// Set stores v at a full label coordinate.
func (m *Bool) Set(v bool, labels ...string) error {
	off, err := m.labelOffset(labels)
	if err != nil {
		return err
	}
	m.data[off] = v
	return nil
}

// SetIndex stores v at a full position index.
func (m *Bool) SetIndex(v bool, idx ...int) error {
	off, err := m.offset(idx)
	if err != nil {
		return err
	}
	m.data[off] = v
	return nil
}

// Values returns the flat row-major backing data as a copy.
func (m *Bool) Values() []bool {
	out := make([]bool, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy sharing only the (immutable) axes.
func (m *Bool) Clone() *Bool {
	cp := &Bool{grid: m.grid, data: make([]bool, len(m.data))}
	copy(cp.data, m.data)
	return cp
}
