package expanse

import "errors"

var (
	// ErrInvalidContextEntry is returned when a @context list holds a value
	// that is neither a string nor an object. This is the one structural
	// violation resolution cannot route around.
	ErrInvalidContextEntry = errors.New("invalid context entry")

	// ErrLoadingRemoteContext wraps transport failures from a [Fetcher].
	ErrLoadingRemoteContext = errors.New("loading remote context failed")
)
