package codec

import (
	"bytes"

	"github.com/arloliu/nbt/internal/hash"
	"github.com/arloliu/nbt/internal/mutf8"
	"github.com/arloliu/nbt/tagpath"
)

// Filter selects the parts of a document a selective decode materializes.
//
// A Filter is a trie built from path expressions. Compound keys are matched by their
// encoded bytes straight from the input, so the names of entries outside the
// selection are never decoded. A Filter is immutable after NewFilter and safe for
// concurrent use.
type Filter struct {
	root  *filterNode
	paths []string
}

// filterNode is one trie node. A terminal node selects its whole subtree.
type filterNode struct {
	terminal bool
	names    map[uint64]*nameEdge
	indexes  map[int]*filterNode
}

// nameEdge chains the keys sharing one hash id.
type nameEdge struct {
	key  []byte
	node *filterNode
	next *nameEdge
}

// NewFilter builds a filter selecting every value addressed by paths.
//
// Returns errs.ErrInvalidPath when a path does not parse. An empty path list selects
// nothing, yielding an empty root compound.
func NewFilter(paths ...string) (*Filter, error) {
	f := &Filter{root: &filterNode{}, paths: append([]string(nil), paths...)}

	for _, s := range paths {
		p, err := tagpath.Parse(s)
		if err != nil {
			return nil, err
		}
		f.add(p)
	}

	return f, nil
}

// Paths returns the path expressions the filter was built from.
func (f *Filter) Paths() []string {
	return append([]string(nil), f.paths...)
}

func (f *Filter) add(p tagpath.Path) {
	n := f.root
	for _, seg := range p {
		n = n.nameChild(seg.Name)
		for _, idx := range seg.Indexes {
			n = n.indexChild(idx)
		}
	}
	n.terminal = true
}

func (n *filterNode) nameChild(name string) *filterNode {
	key := mutf8.Append(nil, name)
	id := hash.IDBytes(key)

	if n.names == nil {
		n.names = make(map[uint64]*nameEdge)
	}
	for e := n.names[id]; e != nil; e = e.next {
		if bytes.Equal(e.key, key) {
			return e.node
		}
	}

	child := &filterNode{}
	n.names[id] = &nameEdge{key: key, node: child, next: n.names[id]}

	return child
}

func (n *filterNode) indexChild(idx int) *filterNode {
	if n.indexes == nil {
		n.indexes = make(map[int]*filterNode)
	}
	child, ok := n.indexes[idx]
	if !ok {
		child = &filterNode{}
		n.indexes[idx] = child
	}

	return child
}

// lookupName returns the child selected by the encoded key, nil when none is.
func (n *filterNode) lookupName(key []byte) *filterNode {
	if len(n.names) == 0 {
		return nil
	}
	for e := n.names[hash.IDBytes(key)]; e != nil; e = e.next {
		if bytes.Equal(e.key, key) {
			return e.node
		}
	}

	return nil
}

// lookupIndex returns the child selected by list index i, nil when none is.
func (n *filterNode) lookupIndex(i int) *filterNode {
	return n.indexes[i]
}
