package list

import "errors"

// Placement selects where Add links a new element, or which end Remove
// takes one from. InOrder is only meaningful for Add.
type Placement int

const (
	AtHead Placement = iota
	AtTail
	InOrder
)

func (p Placement) String() string {
	switch p {
	case AtHead:
		return "head"
	case AtTail:
		return "tail"
	case InOrder:
		return "order"
	default:
		return "unknown"
	}
}

// Deallocator receives every element still resident when the list is destroyed.
type Deallocator[T any] func(val T)

// Comparator returns less than, equal to, or greater than zero if a is
// considered to be less than, equal to, or greater than b.
type Comparator[T any] func(a, b T) int

var (
	ErrNilDeallocator   = errors.New("list: deallocator is required")
	ErrNilList          = errors.New("list: nil list")
	ErrDestroyed        = errors.New("list: list has been destroyed")
	ErrNoComparator     = errors.New("list: ordered insert without a comparator")
	ErrInvalidPlacement = errors.New("list: invalid placement")
)
