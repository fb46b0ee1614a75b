package main

import (
	"errors"
	"fmt"
)

var (
	ErrInputNotFound        = errors.New("input not found")
	ErrMalformedFrontMatter = errors.New("malformed front matter")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrOutputWrite          = errors.New("output write failure")
	ErrRender               = errors.New("render fault")
	ErrSlugCollision        = errors.New("slug collision")
)

// FieldError reports a front matter field of one post that is missing or
// has the wrong shape. Err is ErrMissingRequiredField or
// ErrMalformedFrontMatter.
type FieldError struct {
	Source string
	Field  string
	Err    error
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v %q", e.Source, e.Err, e.Field)
	}
	return fmt.Sprintf("%s: %v: %s %s", e.Source, e.Err, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

func writeError(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
}

func renderError(target string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRender, target, err)
}
