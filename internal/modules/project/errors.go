package project

import "errors"

var (
	ErrNotFound          = errors.New("project not found")
	ErrNoFields          = errors.New("no fields to update")
	ErrProjectTypeLocked = errors.New("project type cannot change once the project has spaces")
)
