package types

import "errors"

// Index errors. Raised when a row or column index is not valid for the
// table it is applied to.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Load errors. A load that fails with any of these leaves the previously
// held table in place.
var (
	ErrConnectionFailed = errors.New("connection failed")
	ErrQueryFailed      = errors.New("query failed")
	ErrUnsupportedType  = errors.New("unsupported column type")
	ErrDecode           = errors.New("invalid text encoding")
	ErrSourceUnreadable = errors.New("source unreadable")
)

var loadErrors = []error{
	ErrConnectionFailed,
	ErrQueryFailed,
	ErrUnsupportedType,
	ErrDecode,
	ErrSourceUnreadable,
}

// IsLoadError reports whether err wraps one of the load errors.
func IsLoadError(err error) bool {
	for _, target := range loadErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
