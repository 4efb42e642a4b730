package dataset

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound = errors.New("dataset file not found")
	ErrParse    = errors.New("dataset is not valid tabular data")
)

// LoadError reports why a dataset could not be loaded. Any LoadError is fatal
// for a render: callers must surface it instead of showing empty data.
type LoadError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}
