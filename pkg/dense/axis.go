package dense

import "fmt"

// Axis is an ordered, named label list addressing one array dimension.
// Label order is significant and preserved; lookup is O(1). Axes are
// immutable once built and safe to share between arrays.
type Axis struct {
	name   string
	labels []string
	index  map[string]int
}

// NewAxis builds an axis from name and labels. Labels must be unique.
func NewAxis(name string, labels []string) (*Axis, error) {
	a := &Axis{
		name:   name,
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	copy(a.labels, labels)
	for i, l := range a.labels {
		if _, ok := a.index[l]; ok {
			return nil, fmt.Errorf("%w: %q on axis %q", ErrDuplicateLabel, l, name)
		}
		a.index[l] = i
	}
	return a, nil
}

// Name returns the axis name.
func (a *Axis) Name() string { return a.name }

// Len returns the number of labels.
func (a *Axis) Len() int { return len(a.labels) }

// Labels returns a copy of the label list in axis order.
func (a *Axis) Labels() []string {
	out := make([]string, len(a.labels))
	copy(out, a.labels)
	return out
}

// Index returns the position of label on the axis.
func (a *Axis) Index(label string) (int, bool) {
	i, ok := a.index[label]
	return i, ok
}

// Label returns the label at position i.
func (a *Axis) Label(i int) (string, error) {
	if i < 0 || i >= len(a.labels) {
		return "", fmt.Errorf("%w: %d on axis %q of length %d", ErrOutOfRange, i, a.name, len(a.labels))
	}
	return a.labels[i], nil
}
