// Package index provides label lookup for frame axes. Row names, column
// names and merge keys are hashed with xxhash into a bucketed map that keeps
// every position a label occurs at, in insertion order.
package index

import (
	xxhash "github.com/cespare/xxhash/v2"
)

const (
	labelsLoadFactor     = 0.75 // load factor before growing
	labelsGrowthFactor   = 2    // growth factor on resize
	labelsCapacityFactor = 1.3  // capacity factor for the initial size
)

// Labels maps labels to the positions they occur at.
type Labels struct {
	buckets  [][]entry
	capacity int
	size     int
	order    []string // distinct labels in first-seen order
}

type entry struct {
	label     string
	positions []int
}

// New indexes labels by position.
func New(labels []string) *Labels {
	capacity := nextPowerOfTwo(int(float64(len(labels)) * labelsCapacityFactor))
	l := &Labels{
		buckets:  make([][]entry, capacity),
		capacity: capacity,
	}
	for i, label := range labels {
		l.put(label, i)
	}
	return l
}

func (l *Labels) bucket(label string) int {
	//nolint:gosec // capacity is always a positive power of two
	return int(xxhash.Sum64String(label) & uint64(l.capacity-1))
}

func (l *Labels) put(label string, position int) {
	b := l.bucket(label)
	for i := range l.buckets[b] {
		if l.buckets[b][i].label == label {
			l.buckets[b][i].positions = append(l.buckets[b][i].positions, position)
			return
		}
	}

	l.buckets[b] = append(l.buckets[b], entry{label: label, positions: []int{position}})
	l.order = append(l.order, label)
	l.size++

	if float64(l.size) > float64(l.capacity)*labelsLoadFactor {
		l.resize()
	}
}

// Lookup returns the first position of label.
func (l *Labels) Lookup(label string) (int, bool) {
	positions, ok := l.Positions(label)
	if !ok {
		return 0, false
	}
	return positions[0], true
}

// Positions returns every position of label in ascending order.
func (l *Labels) Positions(label string) ([]int, bool) {
	for _, e := range l.buckets[l.bucket(label)] {
		if e.label == label {
			return e.positions, true
		}
	}
	return nil, false
}

// Has reports whether label is indexed.
func (l *Labels) Has(label string) bool {
	_, ok := l.Positions(label)
	return ok
}

// Distinct returns the distinct labels in first-seen order.
func (l *Labels) Distinct() []string {
	return append([]string(nil), l.order...)
}

// Len returns the number of distinct labels.
func (l *Labels) Len() int {
	return l.size
}

// Duplicates returns labels occurring more than once, in first-seen order.
func (l *Labels) Duplicates() []string {
	var dups []string
	for _, label := range l.order {
		if positions, _ := l.Positions(label); len(positions) > 1 {
			dups = append(dups, label)
		}
	}
	return dups
}

// resize grows the bucket array and rehashes all entries.
func (l *Labels) resize() {
	old := l.buckets
	l.capacity *= labelsGrowthFactor
	l.buckets = make([][]entry, l.capacity)
	for _, bucket := range old {
		for _, e := range bucket {
			b := l.bucket(e.label)
			l.buckets[b] = append(l.buckets[b], e)
		}
	}
}

// nextPowerOfTwo returns the next power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
