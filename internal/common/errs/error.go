package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Invalid Kind = iota + 1
	Mapping
	Store
	Engine
	Lifecycle
	Statistics
	Timeout
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Mapping:
		return "mapping"
	case Store:
		return "store"
	case Engine:
		return "engine"
	case Lifecycle:
		return "lifecycle"
	case Statistics:
		return "statistics"
	case Timeout:
		return "timeout"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a failure tagged with the layer it came from. ID is the container
// (or image) the operation was working on, when there is one.
type Error struct {
	Kind Kind
	Op   string
	ID   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.ID != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.ID)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func E(kind Kind, op, id string, err error) error {
	return &Error{Kind: kind, Op: op, ID: id, Err: err}
}

// Is reports whether any *Error in err's chain has the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// KindOf returns the outermost kind in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
