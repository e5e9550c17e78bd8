package scope

import (
	"hash/fnv"

	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// Persistent hash array mapped trie keyed by binding name.
// Put never mutates: updated paths are copied, untouched subtrees are
// shared with the original, so older scopes remain valid after a bind.

const (
	trieBits = 5
	trieSize = 1 << trieBits // 32
	trieMask = trieSize - 1
)

type trieMap struct {
	root  *trieNode
	count int
}

type trieNode struct {
	bitmap uint32        // which indices are populated
	nodes  []interface{} // trieEntry or *trieNode
}

type trieEntry struct {
	hash  uint32
	key   string
	value value.Value
}

var emptyTrie = &trieMap{}

func (m *trieMap) Len() int {
	return m.count
}

func (m *trieMap) Get(key string) (value.Value, bool) {
	if m.root == nil {
		return nil, false
	}
	return m.root.get(hashKey(key), key, 0)
}

// Put returns a new trie with the key bound to v.
func (m *trieMap) Put(key string, v value.Value) *trieMap {
	hash := hashKey(key)

	var newRoot *trieNode
	var added bool

	if m.root == nil {
		newRoot, added = (&trieNode{}).put(hash, key, v, 0)
	} else {
		newRoot, added = m.root.put(hash, key, v, 0)
	}

	newCount := m.count
	if added {
		newCount++
	}

	return &trieMap{root: newRoot, count: newCount}
}

// Items returns all bindings in trie order.
func (m *trieMap) Items() []trieEntry {
	items := make([]trieEntry, 0, m.count)
	if m.root != nil {
		m.root.collectItems(&items)
	}
	return items
}

func (n *trieNode) get(hash uint32, key string, shift uint) (value.Value, bool) {
	if shift >= 32 {
		// Collision bucket search
		for _, node := range n.nodes {
			if entry, ok := node.(trieEntry); ok && entry.key == key {
				return entry.value, true
			}
		}
		return nil, false
	}

	idx := (hash >> shift) & trieMask
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return nil, false
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := n.nodes[pos].(type) {
	case trieEntry:
		if v.hash == hash && v.key == key {
			return v.value, true
		}
		return nil, false
	case *trieNode:
		return v.get(hash, key, shift+trieBits)
	}
	return nil, false
}

func (n *trieNode) put(hash uint32, key string, val value.Value, shift uint) (*trieNode, bool) {
	// Exhausted hash bits: store colliding entries in a flat bucket.
	if shift >= 32 {
		newNode := n.clone()
		for i, node := range newNode.nodes {
			if entry, ok := node.(trieEntry); ok && entry.key == key {
				newNode.nodes[i] = trieEntry{hash: hash, key: key, value: val}
				return newNode, false
			}
		}
		newNode.nodes = append(newNode.nodes, trieEntry{hash: hash, key: key, value: val})
		return newNode, true
	}

	idx := (hash >> shift) & trieMask
	bit := uint32(1) << idx

	newNode := n.clone()

	if n.bitmap&bit == 0 {
		newNode.bitmap |= bit
		pos := popcount(newNode.bitmap & (bit - 1))
		newNode.nodes = append(newNode.nodes, nil)
		copy(newNode.nodes[pos+1:], newNode.nodes[pos:])
		newNode.nodes[pos] = trieEntry{hash: hash, key: key, value: val}
		return newNode, true
	}

	pos := popcount(n.bitmap & (bit - 1))
	switch v := newNode.nodes[pos].(type) {
	case trieEntry:
		if v.hash == hash && v.key == key {
			newNode.nodes[pos] = trieEntry{hash: hash, key: key, value: val}
			return newNode, false
		}

		// Partial hash collision: push both entries one level down.
		child := &trieNode{}
		child, _ = child.put(v.hash, v.key, v.value, shift+trieBits)
		child, added := child.put(hash, key, val, shift+trieBits)
		newNode.nodes[pos] = child
		return newNode, added

	case *trieNode:
		newChild, added := v.put(hash, key, val, shift+trieBits)
		newNode.nodes[pos] = newChild
		return newNode, added
	}

	return newNode, false
}

func (n *trieNode) clone() *trieNode {
	c := &trieNode{
		bitmap: n.bitmap,
		nodes:  make([]interface{}, len(n.nodes)),
	}
	copy(c.nodes, n.nodes)
	return c
}

func (n *trieNode) collectItems(items *[]trieEntry) {
	for _, node := range n.nodes {
		switch v := node.(type) {
		case trieEntry:
			*items = append(*items, v)
		case *trieNode:
			v.collectItems(items)
		}
	}
}

func hashKey(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// popcount counts set bits.
func popcount(x uint32) int {
	x = x - ((x >> 1) & 0x55555555)
	x = (x & 0x33333333) + ((x >> 2) & 0x33333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f
	x = x + (x >> 8)
	x = x + (x >> 16)
	return int(x & 0x3f)
}
