package report

import "fmt"

// SensorKey identifies one tracked point on a named device. It is the unit
// of column aggregation: each key owns one column group in both output
// tables.
type SensorKey struct {
	Device string
	Sensor int
}

func (k SensorKey) String() string {
	return fmt.Sprintf("%s_Sensor%d", k.Device, k.Sensor)
}

// Columns is an insertion-ordered, duplicate-free set of SensorKey: the
// column union accumulated across a whole batch. Membership only grows;
// there is no removal. The ordering must only be treated as final once
// every file has been extracted.
type Columns struct {
	keys  []SensorKey
	index map[SensorKey]int
}

// NewColumns returns an empty column set.
func NewColumns() *Columns {
	return &Columns{index: make(map[SensorKey]int)}
}

// Register appends key to the ordering iff it is not already present.
func (c *Columns) Register(key SensorKey) {
	if _, ok := c.index[key]; ok {
		return
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
}

// Contains reports whether key has been registered.
func (c *Columns) Contains(key SensorKey) bool {
	_, ok := c.index[key]
	return ok
}

// Len returns the number of registered keys.
func (c *Columns) Len() int {
	return len(c.keys)
}

// Keys returns the keys in registration order. The result is a copy so
// callers cannot disturb the ordering.
func (c *Columns) Keys() []SensorKey {
	keys := make([]SensorKey, len(c.keys))
	copy(keys, c.keys)
	return keys
}
