package action

import "errors"

var (
	// ErrKeyRequired is returned by Press when the request has no key
	ErrKeyRequired = errors.New("key is required for press action")
	// ErrSizeRequired is returned by Resize when either dimension is zero
	ErrSizeRequired = errors.New("width and height are required for resize action")
)
