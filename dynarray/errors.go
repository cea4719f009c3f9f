package dynarray

import "errors"

var (
	ErrOutOfBounds = errors.New("the index is outside the logical length of the array")
	ErrUnderflow   = errors.New("pop on an empty array")
	ErrOverflow    = errors.New("push would wrap the length counter")
)
