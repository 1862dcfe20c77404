package domain

import "errors"

var (
	// ErrListingNotFound - объекта с таким id нет в каталоге.
	ErrListingNotFound = errors.New("listing not found")

	// ErrInvalidPayload - присланный объект не прошел разбор или валидацию.
	ErrInvalidPayload = errors.New("invalid listing payload")
)
