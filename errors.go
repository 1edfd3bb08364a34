package entity

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeMissingParameter
	ErrCodeCoercionFailed
	ErrCodeTypeMismatch
	ErrCodeFactoryNotFound
	ErrCodeInvalidTarget
	ErrCodeInvalidInput
	ErrCodeRegistrationFailed
	ErrCodeCircularCoercion
	ErrCodeValidationFailed
	ErrCodeModuleApplyFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:            "UNKNOWN",
	ErrCodeMissingParameter:   "MISSING_PARAMETER",
	ErrCodeCoercionFailed:     "COERCION_FAILED",
	ErrCodeTypeMismatch:       "TYPE_MISMATCH",
	ErrCodeFactoryNotFound:    "FACTORY_NOT_FOUND",
	ErrCodeInvalidTarget:      "INVALID_TARGET",
	ErrCodeInvalidInput:       "INVALID_INPUT",
	ErrCodeRegistrationFailed: "REGISTRATION_FAILED",
	ErrCodeCircularCoercion:   "CIRCULAR_COERCION",
	ErrCodeValidationFailed:   "VALIDATION_FAILED",
	ErrCodeModuleApplyFailed:  "MODULE_APPLY_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the error type returned by every builder operation. Failures raised
// by user constructors and factories are returned as-is, except inside
// value-object coercion where they become the Cause of an ErrCodeCoercionFailed.
type Error struct {
	Code    ErrorCode
	Message string

	// Target is the type being built or registered.
	Target string
	// Parameter is the logical parameter name, Key the record key looked up for it.
	Parameter string
	Key       string
	// Suggestion is the closest record key to Key, set only for missing parameters.
	Suggestion string

	Cause error
}

// ErrMissingParameter matches any missing-parameter error with errors.Is.
var ErrMissingParameter = &Error{Code: ErrCodeMissingParameter}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Target != "" {
		b.WriteString(fmt.Sprintf(" target=%q", e.Target))
	}
	if e.Parameter != "" {
		b.WriteString(fmt.Sprintf(" parameter=%q", e.Parameter))
	}
	if e.Key != "" && e.Key != e.Parameter {
		b.WriteString(fmt.Sprintf(" key=%q", e.Key))
	}
	if e.Target != "" || e.Parameter != "" {
		b.WriteString(":")
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(" (did you mean %q?)", e.Suggestion))
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) withTarget(target string) *Error {
	e.Target = target
	return e
}

func (e *Error) withParameter(name, key string) *Error {
	e.Parameter = name
	e.Key = key
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errMissingParameter(target, name, key, suggestion string) *Error {
	e := newError(ErrCodeMissingParameter, "required parameter is missing from input", nil).
		withTarget(target).
		withParameter(name, key)
	e.Suggestion = suggestion
	return e
}

func errCoercionFailed(target, valueObject string, cause error) *Error {
	return newError(
		ErrCodeCoercionFailed,
		fmt.Sprintf("cannot build value object %s from primitive", valueObject),
		cause,
	).withTarget(target)
}

func errTypeMismatch(target, name, key, got, want string) *Error {
	return newError(
		ErrCodeTypeMismatch,
		fmt.Sprintf("value of type %s is not assignable to %s", got, want),
		nil,
	).withTarget(target).withParameter(name, key)
}

func errFactoryNotFound(target, factory string) *Error {
	return newError(
		ErrCodeFactoryNotFound,
		fmt.Sprintf("no factory %q registered", factory),
		nil,
	).withTarget(target)
}

func errInvalidTarget(target string, cause error) *Error {
	return newError(ErrCodeInvalidTarget, "cannot be built", cause).withTarget(target)
}

func errInvalidInput(kind string, cause error) *Error {
	return newError(
		ErrCodeInvalidInput,
		fmt.Sprintf("input of type %s is neither a map with string keys nor a struct", kind),
		cause,
	)
}

func errRegistrationFailed(target string, cause error) *Error {
	return newError(ErrCodeRegistrationFailed, "registration rejected", cause).withTarget(target)
}

func errCircularCoercion(chain []string) *Error {
	return newError(
		ErrCodeCircularCoercion,
		fmt.Sprintf("value object factories form a cycle: %s", strings.Join(chain, " -> ")),
		nil,
	)
}

func errValidationFailed(cause error) *Error {
	return newError(ErrCodeValidationFailed, "builder validation failed", cause)
}

func errModuleApplyFailed(moduleName string, cause error) *Error {
	return newError(ErrCodeModuleApplyFailed, "failed to apply module "+moduleName, cause)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsMissingParameter(err error) bool {
	return hasCode(err, ErrCodeMissingParameter)
}

func IsCoercionFailed(err error) bool {
	return hasCode(err, ErrCodeCoercionFailed)
}

func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}

func IsFactoryNotFound(err error) bool {
	return hasCode(err, ErrCodeFactoryNotFound)
}

func IsInvalidTarget(err error) bool {
	return hasCode(err, ErrCodeInvalidTarget)
}

func IsInvalidInput(err error) bool {
	return hasCode(err, ErrCodeInvalidInput)
}

func IsRegistrationFailed(err error) bool {
	return hasCode(err, ErrCodeRegistrationFailed)
}

func IsCircularCoercion(err error) bool {
	return hasCode(err, ErrCodeCircularCoercion)
}

func IsValidationFailed(err error) bool {
	return hasCode(err, ErrCodeValidationFailed)
}

func IsModuleApplyFailed(err error) bool {
	return hasCode(err, ErrCodeModuleApplyFailed)
}
