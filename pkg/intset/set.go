package intset

import (
	"strconv"
	"strings"
)

// node is a single AVL tree node. Each node is owned by exactly one parent
// (or by the Set itself when it is the root).
type node struct {
	value       int
	height      int
	left, right *node
}

// Set is an ordered set of integers backed by an AVL tree.
// The zero value is an empty set ready to use. A Set is not safe for
// concurrent mutation.
type Set struct {
	root *node
	size int
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// Of returns a set holding the given values. Duplicates are ignored.
func Of(values ...int) *Set {
	s := &Set{}
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Insert adds v to the set. It reports whether v was absent.
func (s *Set) Insert(v int) bool {
	var added bool
	s.root = insert(s.root, v, &added)
	if added {
		s.size++
	}
	return added
}

// Remove deletes v from the set. It reports whether v was present.
func (s *Set) Remove(v int) bool {
	var removed bool
	s.root = remove(s.root, v, &removed)
	if removed {
		s.size--
	}
	return removed
}

// Contains reports whether v is a member.
func (s *Set) Contains(v int) bool {
	if s == nil {
		return false
	}
	n := s.root
	for n != nil {
		switch {
		case v < n.value:
			n = n.left
		case v > n.value:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// Clear removes every member.
func (s *Set) Clear() {
	s.root = nil
	s.size = 0
}

// Min returns the smallest member. ok is false when the set is empty.
func (s *Set) Min() (v int, ok bool) {
	if s == nil || s.root == nil {
		return 0, false
	}
	return minNode(s.root).value, true
}

// Each calls fn for every member in increasing order until fn returns false.
func (s *Set) Each(fn func(v int) bool) {
	if s == nil {
		return
	}
	each(s.root, fn)
}

func each(n *node, fn func(int) bool) bool {
	if n == nil {
		return true
	}
	if !each(n.left, fn) {
		return false
	}
	if !fn(n.value) {
		return false
	}
	return each(n.right, fn)
}

// Values returns the members in strictly increasing order.
// It returns nil for an empty set.
func (s *Set) Values() []int {
	if s.Len() == 0 {
		return nil
	}
	out := make([]int, 0, s.size)
	s.Each(func(v int) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Union inserts every member of src into s. src is left unmodified.
// It returns the number of members that were added.
func (s *Set) Union(src *Set) int {
	if src.Len() == 0 {
		return 0
	}
	added := 0
	// Pre-order walk keeps the recursion shallow on the source side.
	stack := make([]*node, 0, src.root.height+2)
	stack = append(stack, src.root)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if s.Insert(n.value) {
			added++
		}
	}
	return added
}

// Union inserts every member of src into dst.
func Union(dst, src *Set) int {
	return dst.Union(src)
}

// Overlaps reports whether a and b share at least one member. It walks the
// smaller tree and probes the larger one, stopping at the first hit.
func Overlaps(a, b *Set) bool {
	if a.Len() == 0 || b.Len() == 0 {
		return false
	}
	small, large := a, b
	if b.size < a.size {
		small, large = b, a
	}
	found := false
	small.Each(func(v int) bool {
		found = large.Contains(v)
		return !found
	})
	return found
}

// Overlaps reports whether s and other share at least one member.
func (s *Set) Overlaps(other *Set) bool {
	return Overlaps(s, other)
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	if s == nil {
		return New()
	}
	return &Set{root: cloneNode(s.root), size: s.size}
}

func cloneNode(n *node) *node {
	if n == nil {
		return nil
	}
	return &node{
		value:  n.value,
		height: n.height,
		left:   cloneNode(n.left),
		right:  cloneNode(n.right),
	}
}

// Equal reports whether s and other hold the same members.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.Values(), other.Values()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the set as "{1,2,3}".
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Each(func(v int) bool {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(v))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
