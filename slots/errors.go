package slots

import "errors"

var (
	ErrCellBadSize  = errors.New("stored value size does not match the cell width")
	ErrPathRequired = errors.New("a path is required for a persistent store")
)
