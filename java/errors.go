package java

import (
	"errors"
	"fmt"
)

var (
	ErrTypeParameter  = errors.New("type parameter has no binary name")
	ErrDetached       = errors.New("class is not enclosed by a top-level class")
	ErrAnonymousIndex = errors.New("anonymous class not found among its siblings")
	ErrUnresolvedType = errors.New("type does not resolve to a class")
	ErrUnknownClass   = errors.New("unknown class handle")
)

// ResolutionError reports that a declaration cannot be reduced to a
// byte-code identity. Callers usually fall back to the source name.
type ResolutionError struct {
	Class ClassID
	// Name is the best available source-level name of the offending
	// class or type.
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("resolve %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("resolve class #%d: %v", e.Class, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionError(c ClassEntity, err error) *ResolutionError {
	name := c.SimpleName
	if c.QualifiedName != "" {
		name = c.QualifiedName
	}
	return &ResolutionError{Class: c.ID, Name: name, Err: err}
}
