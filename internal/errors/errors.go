// Package errors provides categorised errors for the fixture CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	UserError   ErrorCategory = iota // bad flags or arguments
	ConfigError                      // configuration could not be loaded or is invalid
	SystemError                      // I/O and other environment failures
)

// String returns a string representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case UserError:
		return "user"
	case ConfigError:
		return "config"
	case SystemError:
		return "system"
	default:
		return "unknown"
	}
}

// Error is an error tagged with a category and the operation that failed.
type Error struct {
	Category ErrorCategory
	Op       string
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Category == e.Category
}

// Sentinels usable with errors.Is to test only the category.
var (
	ErrUser   = &Error{Category: UserError}
	ErrConfig = &Error{Category: ConfigError}
	ErrSystem = &Error{Category: SystemError}
)

// New wraps err with a category and operation. A nil err yields nil.
func New(category ErrorCategory, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Category: category, Op: op, Err: err}
}

// Config wraps err as a configuration error.
func Config(op string, err error) error {
	return New(ConfigError, op, err)
}

// System wraps err as a system error.
func System(op string, err error) error {
	return New(SystemError, op, err)
}

// User wraps err as a user error.
func User(op string, err error) error {
	return New(UserError, op, err)
}

// Classify returns the category of the outermost *Error in err's chain.
// Untagged errors are treated as system errors.
func Classify(err error) ErrorCategory {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Category
	}
	return SystemError
}

// Is reports whether any error in err's chain matches target. Use the
// ErrUser, ErrConfig and ErrSystem sentinels to match on category alone.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target and, if one is
// found, sets target to that error value.
func As(err error, target any) bool { return stderrors.As(err, target) }
