package heap

import "errors"

var (
	// ErrNoSpace indicates that no single free block can hold the request.
	// The chain is left untouched; freeing other blocks and retrying is the
	// only recovery.
	ErrNoSpace = errors.New("heap: no free block large enough")

	// ErrBadRequest indicates a negative allocation size.
	ErrBadRequest = errors.New("heap: negative allocation size")

	// ErrBadRef indicates a ref that cannot name any payload in the arena.
	ErrBadRef = errors.New("heap: ref out of arena bounds")

	// ErrInvalidFree indicates a ref that is not a currently live allocation,
	// which includes freeing the same ref twice.
	ErrInvalidFree = errors.New("heap: ref does not name a live allocation")

	// ErrUninitialized indicates use of a zero-value or closed Heap.
	ErrUninitialized = errors.New("heap: not initialized or already closed")

	// ErrCapacity indicates an arena capacity too small to hold a single block.
	ErrCapacity = errors.New("heap: capacity below minimum")

	// ErrCorrupt indicates the block chain failed validation.
	ErrCorrupt = errors.New("heap: block chain corrupt")
)
