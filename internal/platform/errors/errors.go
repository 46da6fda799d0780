package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrKeyNotFound    = errors.New("key not found")
	ErrSeedRecord     = errors.New("synthetic seed record")
	ErrBookNotFound   = errors.New("book not found")
	ErrPluginNotFound = errors.New("plugin not found")
)
