package state

import (
	"github.com/doubleforge/entity-doubles/errors"
)

// Container maps field names to their current override values.
// Not safe for concurrent use; one double instance is assumed used by one
// logical test at a time.
type Container struct {
	values map[string]any
}

// New creates an empty container.
func New() *Container {
	return &Container{values: make(map[string]any)}
}

// Has reports whether an override is recorded for the field.
func (c *Container) Has(field string) bool {
	_, ok := c.values[field]
	return ok
}

// Get returns the recorded override. Reading a field with no entry is an
// error; callers that want a fallback check Has first.
func (c *Container) Get(field string) (any, error) {
	v, ok := c.values[field]
	if !ok {
		return nil, errors.MissingValue(field)
	}
	return v, nil
}

// Set records an override, replacing any previous entry.
func (c *Container) Set(field string, value any) {
	c.values[field] = value
}

// Reset drops all overrides.
func (c *Container) Reset() {
	c.values = make(map[string]any)
}

// All returns a copy of the recorded overrides.
func (c *Container) All() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Len returns the number of recorded overrides.
func (c *Container) Len() int {
	return len(c.values)
}
