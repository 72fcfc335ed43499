package errors

import "errors"

var ErrNotFound = errors.New("preferences not found")
