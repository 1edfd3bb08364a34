// Package entitytest provides test helpers for code that builds entities.
package entitytest

import (
	"errors"

	"github.com/davecgh/go-spew/spew"

	"github.com/danpasecinic/entity"
	"github.com/danpasecinic/entity/internal/reflect"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

// Equaler is implemented by value objects that compare by value.
type Equaler[V any] interface {
	EqualsTo(other V) bool
}

var dump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func MustByConstructor[T any](tb TB, b *entity.Builder, input any, opts ...entity.BuildOption) T {
	tb.Helper()

	v, err := entity.ByConstructor[T](b, input, opts...)
	if err != nil {
		tb.Fatalf("failed to build %s: %v\ninput:\n%s", reflect.TypeKey[T](), err, dump.Sdump(input))
	}
	return v
}

func MustByStaticConstructor[T any](
	tb TB, b *entity.Builder, name string, input any, opts ...entity.BuildOption,
) T {
	tb.Helper()

	v, err := entity.ByStaticConstructor[T](b, name, input, opts...)
	if err != nil {
		tb.Fatalf(
			"failed to build %s via %s: %v\ninput:\n%s",
			reflect.TypeKey[T](), name, err, dump.Sdump(input),
		)
	}
	return v
}

// RequireMissingParameter fails unless err is a missing-parameter error for the
// parameter called name.
func RequireMissingParameter(tb TB, err error, name string) {
	tb.Helper()

	if err == nil {
		tb.Fatalf("expected missing parameter %q, got no error", name)
		return
	}

	var e *entity.Error
	if !errors.As(err, &e) || e.Code != entity.ErrCodeMissingParameter {
		tb.Fatalf("expected missing parameter %q, got: %v", name, err)
		return
	}
	if e.Parameter != name {
		tb.Fatalf("expected missing parameter %q, got %q", name, e.Parameter)
	}
}

func AssertEqualsTo[V Equaler[V]](tb TB, want, got V) {
	tb.Helper()

	if !want.EqualsTo(got) {
		tb.Fatalf("value objects differ\nwant:\n%sgot:\n%s", dump.Sdump(want), dump.Sdump(got))
	}
}
