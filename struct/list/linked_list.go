package list

const none = -1

// OrderedList is a doubly linked list whose nodes live in a slice and link
// to each other by index. Released slots are chained through next and reused.
// It is not safe for concurrent use.
type OrderedList[T any] struct {
	nodes     []node[T]
	first     int
	last      int
	free      int
	size      int
	cmp       Comparator[T]
	dealloc   Deallocator[T]
	destroyed bool
}

type node[T any] struct {
	val  T
	prev int
	next int
}

// Make creates an empty list. dealloc is mandatory, cmp may be nil when
// InOrder placement is never used.
func Make[T any](dealloc Deallocator[T], cmp Comparator[T]) (*OrderedList[T], error) {
	if dealloc == nil {
		return nil, ErrNilDeallocator
	}
	return &OrderedList[T]{
		first:   none,
		last:    none,
		free:    none,
		cmp:     cmp,
		dealloc: dealloc,
	}, nil
}

// Destroy hands every resident element to the deallocator, head to tail,
// and releases the nodes. The list must not be used afterwards.
func (l *OrderedList[T]) Destroy() {
	if l == nil || l.destroyed {
		return
	}
	for i := l.first; i != none; {
		next := l.nodes[i].next
		l.dealloc(l.nodes[i].val)
		i = next
	}
	l.nodes = nil
	l.first, l.last, l.free = none, none, none
	l.size = 0
	l.cmp = nil
	l.dealloc = nil
	l.destroyed = true
}

// IsEmpty reports whether the list holds no element. A nil list is empty.
func (l *OrderedList[T]) IsEmpty() bool {
	return l == nil || l.first == none
}

func (l *OrderedList[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

// Add links val into the list at the requested placement. On an empty list
// the placement is irrelevant. InOrder inserts before the first element that
// val compares strictly less than, so equal elements keep insertion order.
// The list is left untouched when an error is returned.
func (l *OrderedList[T]) Add(val T, p Placement) error {
	if l == nil {
		return ErrNilList
	}
	if l.destroyed {
		return ErrDestroyed
	}
	if p < AtHead || p > InOrder {
		return ErrInvalidPlacement
	}
	if l.IsEmpty() {
		n := l.alloc(val)
		l.first, l.last = n, n
		l.size++
		return nil
	}
	switch p {
	case AtHead:
		l.insertAtHead(l.alloc(val))
	case AtTail:
		l.insertAtTail(l.alloc(val))
	case InOrder:
		if l.cmp == nil {
			return ErrNoComparator
		}
		l.insertInOrder(val)
	}
	l.size++
	return nil
}

// Remove unlinks the element at the head or the tail and returns it. The
// element is not passed to the deallocator. ok is false when the list is nil
// or empty, or when end is not AtHead or AtTail.
func (l *OrderedList[T]) Remove(end Placement) (val T, ok bool) {
	if l.IsEmpty() {
		return val, false
	}
	var n int
	switch {
	case end != AtHead && end != AtTail:
		return val, false
	case l.first == l.last:
		// last element, so it doesn't matter which end.
		n = l.first
		l.first, l.last = none, none
	case end == AtHead:
		n = l.first
		l.first = l.nodes[n].next
		l.nodes[l.first].prev = none
	default:
		n = l.last
		l.last = l.nodes[n].prev
		l.nodes[l.last].next = none
	}
	val = l.release(n)
	l.size--
	return val, true
}

func (l *OrderedList[T]) insertAtHead(n int) {
	l.nodes[n].next = l.first
	l.nodes[l.first].prev = n
	l.first = n
}

func (l *OrderedList[T]) insertAtTail(n int) {
	l.nodes[n].prev = l.last
	l.nodes[l.last].next = n
	l.last = n
}

func (l *OrderedList[T]) insertInOrder(val T) {
	at := l.first
	for at != none && l.cmp(val, l.nodes[at].val) >= 0 {
		at = l.nodes[at].next
	}
	n := l.alloc(val)
	switch at {
	case l.first:
		l.insertAtHead(n)
	case none:
		l.insertAtTail(n)
	default:
		prev := l.nodes[at].prev
		l.nodes[n].prev = prev
		l.nodes[n].next = at
		l.nodes[prev].next = n
		l.nodes[at].prev = n
	}
}

// alloc takes a slot from the free chain or grows the arena. The returned
// node is unlinked.
func (l *OrderedList[T]) alloc(val T) int {
	if l.free != none {
		n := l.free
		l.free = l.nodes[n].next
		l.nodes[n] = node[T]{val: val, prev: none, next: none}
		return n
	}
	l.nodes = append(l.nodes, node[T]{val: val, prev: none, next: none})
	return len(l.nodes) - 1
}

func (l *OrderedList[T]) release(n int) T {
	var zero T
	val := l.nodes[n].val
	l.nodes[n] = node[T]{val: zero, prev: none, next: l.free}
	l.free = n
	return val
}
