package space

import "errors"

var ErrNotFound = errors.New("space not found")
