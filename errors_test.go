package entity_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/danpasecinic/entity"
)

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	b := newModelBuilder(t)

	_, err := entity.ByConstructor[*ModelAddress](
		b, map[string]any{"address_city": "Moscow", "address_stret": "Krasnaya"}, entity.WithPrefix("address"),
	)
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	for _, want := range []string{
		"[MISSING_PARAMETER]",
		`parameter="street"`,
		`key="address_street"`,
		`did you mean "address_stret"?`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestErrorNoSuggestion(t *testing.T) {
	t.Parallel()

	b := newModelBuilder(t)

	_, err := entity.ByConstructor[*ModelAddress](b, map[string]any{"totally": "unrelated"})

	var e *entity.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *entity.Error, got %v", err)
	}
	if e.Suggestion != "" {
		t.Errorf("expected no suggestion, got %q", e.Suggestion)
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("unexpected suggestion in %q", err)
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading row: %w", &entity.Error{Code: entity.ErrCodeMissingParameter, Parameter: "id"})

	if !errors.Is(err, entity.ErrMissingParameter) {
		t.Error("expected errors.Is to match by code through wrapping")
	}
	if !entity.IsMissingParameter(err) {
		t.Error("expected IsMissingParameter")
	}
	if entity.IsCoercionFailed(err) {
		t.Error("did not expect IsCoercionFailed")
	}
	if errors.Is(errors.New("other"), entity.ErrMissingParameter) {
		t.Error("plain errors must not match")
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &entity.Error{Code: entity.ErrCodeCoercionFailed, Message: "failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if got := err.Error(); got != "[COERCION_FAILED] failed: boom" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code entity.ErrorCode
		want string
	}{
		{entity.ErrCodeUnknown, "UNKNOWN"},
		{entity.ErrCodeMissingParameter, "MISSING_PARAMETER"},
		{entity.ErrCodeCoercionFailed, "COERCION_FAILED"},
		{entity.ErrCodeTypeMismatch, "TYPE_MISMATCH"},
		{entity.ErrCodeFactoryNotFound, "FACTORY_NOT_FOUND"},
		{entity.ErrCodeInvalidTarget, "INVALID_TARGET"},
		{entity.ErrCodeInvalidInput, "INVALID_INPUT"},
		{entity.ErrCodeRegistrationFailed, "REGISTRATION_FAILED"},
		{entity.ErrCodeCircularCoercion, "CIRCULAR_COERCION"},
		{entity.ErrCodeValidationFailed, "VALIDATION_FAILED"},
		{entity.ErrCodeModuleApplyFailed, "MODULE_APPLY_FAILED"},
		{entity.ErrorCode(999), "UNKNOWN(999)"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()

	b := newModelBuilder(t)

	for _, input := range []any{42, "id=100", map[int]any{1: 100}, []string{"id"}} {
		_, err := entity.ByConstructor[*Model](b, input)
		if !entity.IsInvalidInput(err) {
			t.Errorf("input %T: expected IsInvalidInput, got %v", input, err)
		}
	}
}
