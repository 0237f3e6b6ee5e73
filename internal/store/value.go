package store

// List is an ordered sequence of byte strings with O(1) push/pop at either
// end and O(n) indexed access, adapted from the teacher's doubly linked
// list shape. Callers hold the owning Store's lock; List itself has no
// locking of its own.
type listNode struct {
	value      []byte
	prev, next *listNode
}

type List struct {
	head, tail *listNode
	length     int
}

func newList() *List { return &List{} }

func (l *List) LeftPush(v []byte) {
	n := &listNode{value: v}
	if l.head == nil {
		l.head, l.tail = n, n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.length++
}

func (l *List) RightPush(v []byte) {
	n := &listNode{value: v}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.length++
}

func (l *List) LeftPop() ([]byte, bool) {
	if l.head == nil {
		return nil, false
	}
	n := l.head
	l.head = n.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}
	l.length--
	return n.value, true
}

func (l *List) RightPop() ([]byte, bool) {
	if l.tail == nil {
		return nil, false
	}
	n := l.tail
	l.tail = n.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}
	l.length--
	return n.value, true
}

func (l *List) Len() int { return l.length }

// nodeAt returns the node at the given non-negative, already-bounds-checked
// index, walking from whichever end is closer.
func (l *List) nodeAt(i int) *listNode {
	if i < l.length/2 {
		n := l.head
		for ; i > 0; i-- {
			n = n.next
		}
		return n
	}
	n := l.tail
	for j := l.length - 1; j > i; j-- {
		n = n.prev
	}
	return n
}

// Index returns the value at a negative-index-aware position, or false if
// out of range.
func (l *List) Index(i int) ([]byte, bool) {
	idx := normalizeIndex(i, l.length)
	if idx < 0 || idx >= l.length {
		return nil, false
	}
	return l.nodeAt(idx).value, true
}

// Set overwrites the value at a negative-index-aware position. Returns
// false if out of range.
func (l *List) Set(i int, v []byte) bool {
	idx := normalizeIndex(i, l.length)
	if idx < 0 || idx >= l.length {
		return false
	}
	l.nodeAt(idx).value = v
	return true
}

// Range returns the inclusive [start, stop] slice with negative indices
// counting from the tail, clamped per spec: start = max(0, start),
// stop = min(len-1, stop) after normalization, empty if start > stop.
func (l *List) Range(start, stop int) [][]byte {
	start = normalizeIndex(start, l.length)
	stop = normalizeIndex(stop, l.length)
	if start < 0 {
		start = 0
	}
	if stop > l.length-1 {
		stop = l.length - 1
	}
	if start > stop || start >= l.length || l.length == 0 {
		return [][]byte{}
	}
	out := make([][]byte, 0, stop-start+1)
	n := l.nodeAt(start)
	for i := start; i <= stop; i++ {
		out = append(out, n.value)
		n = n.next
	}
	return out
}

// normalizeIndex converts a negative index (counting from the tail, -1 =
// last element) into a non-negative index. It does not bounds-check
// against length on the high side.
func normalizeIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

// Set is an unordered collection of byte strings with unique membership.
type Set struct {
	members map[string]struct{}
}

func newSet() *Set { return &Set{members: make(map[string]struct{})} }

// Add inserts members, returning the count newly added.
func (s *Set) Add(members ...[]byte) int {
	added := 0
	for _, m := range members {
		key := string(m)
		if _, ok := s.members[key]; !ok {
			s.members[key] = struct{}{}
			added++
		}
	}
	return added
}

// Remove deletes members, returning the count actually removed.
func (s *Set) Remove(members ...[]byte) int {
	removed := 0
	for _, m := range members {
		key := string(m)
		if _, ok := s.members[key]; ok {
			delete(s.members, key)
			removed++
		}
	}
	return removed
}

func (s *Set) IsMember(m []byte) bool {
	_, ok := s.members[string(m)]
	return ok
}

func (s *Set) Card() int { return len(s.members) }

func (s *Set) Members() [][]byte {
	out := make([][]byte, 0, len(s.members))
	for m := range s.members {
		out = append(out, []byte(m))
	}
	return out
}

// Hash is a mapping from byte-string field to byte-string value.
type Hash struct {
	fields map[string][]byte
}

func newHash() *Hash { return &Hash{fields: make(map[string][]byte)} }

// Set stores field=value, returning true if the field is newly created.
func (h *Hash) Set(field, value []byte) bool {
	key := string(field)
	_, existed := h.fields[key]
	h.fields[key] = value
	return !existed
}

func (h *Hash) Get(field []byte) ([]byte, bool) {
	v, ok := h.fields[string(field)]
	return v, ok
}

func (h *Hash) Del(fields ...[]byte) int {
	removed := 0
	for _, f := range fields {
		key := string(f)
		if _, ok := h.fields[key]; ok {
			delete(h.fields, key)
			removed++
		}
	}
	return removed
}

func (h *Hash) Exists(field []byte) bool {
	_, ok := h.fields[string(field)]
	return ok
}

func (h *Hash) Len() int { return len(h.fields) }

func (h *Hash) Keys() [][]byte {
	out := make([][]byte, 0, len(h.fields))
	for k := range h.fields {
		out = append(out, []byte(k))
	}
	return out
}

func (h *Hash) Values() [][]byte {
	out := make([][]byte, 0, len(h.fields))
	for _, v := range h.fields {
		out = append(out, v)
	}
	return out
}

// GetAll returns a flat field/value pairing in unspecified order.
func (h *Hash) GetAll() [][]byte {
	out := make([][]byte, 0, 2*len(h.fields))
	for k, v := range h.fields {
		out = append(out, []byte(k), v)
	}
	return out
}
