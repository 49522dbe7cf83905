package tag

import "iter"

// Entry is one named value in a Compound.
type Entry struct {
	Name  string
	Value Tag
}

// Compound is an ordered mapping of unique names to tags.
//
// Iteration follows insertion order. Putting an existing name replaces its value in
// place and keeps its position.
type Compound struct {
	entries []Entry
	index   map[string]int
}

// NewCompound returns an empty compound.
func NewCompound() *Compound {
	return &Compound{}
}

// NewCompoundCap returns an empty compound sized for n entries.
func NewCompoundCap(n int) *Compound {
	return &Compound{
		entries: make([]Entry, 0, n),
		index:   make(map[string]int, n),
	}
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	return len(c.entries)
}

// Get returns the value stored under name.
func (c *Compound) Get(name string) (Tag, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}

	return c.entries[i].Value, true
}

// Has reports whether name is present.
func (c *Compound) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Put stores v under name. A nil v is ignored.
func (c *Compound) Put(name string, v Tag) {
	if v == nil {
		return
	}

	if i, ok := c.index[name]; ok {
		c.entries[i].Value = v
		return
	}

	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Entry{Name: name, Value: v})
}

// Delete removes name and reports whether it was present.
func (c *Compound) Delete(name string) bool {
	i, ok := c.index[name]
	if !ok {
		return false
	}

	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}

	return true
}

// Keys returns the names in insertion order.
func (c *Compound) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Name
	}

	return keys
}

// All iterates over name and value pairs in insertion order.
func (c *Compound) All() iter.Seq2[string, Tag] {
	return func(yield func(string, Tag) bool) {
		for _, e := range c.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// GetCompound returns the compound stored under name.
func (c *Compound) GetCompound(name string) (*Compound, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Compound)

	return child, ok
}

// GetList returns the list stored under name.
func (c *Compound) GetList(name string) (*List, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	l, ok := v.(*List)

	return l, ok
}

// GetString returns the string stored under name, "" when absent or not a String.
func (c *Compound) GetString(name string) string {
	v, _ := c.Get(name)
	s, _ := AsString(v)

	return s
}

// GetNumber returns the numeric value stored under name, 0 when absent or not numeric.
func (c *Compound) GetNumber(name string) float64 {
	v, _ := c.Get(name)
	n, _ := AsNumber(v)

	return n
}

// GetBool reports whether the numeric value under name is non-zero.
func (c *Compound) GetBool(name string) bool {
	return c.GetNumber(name) != 0
}
