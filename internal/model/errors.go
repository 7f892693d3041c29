package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrTypeMismatch    = errors.New("can only add todo items")
	ErrIndexOutOfRange = errors.New("invalid index")
)

// IndexError reports a position that does not name an element.
// errors.Is(err, ErrIndexOutOfRange) matches it.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %d (size %d)", ErrIndexOutOfRange.Error(), e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
