package entity_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danpasecinic/entity"
)

type buildEvent struct {
	target   string
	callable string
	err      error
}

func TestBuildObserver(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var events []buildEvent

	b := newModelBuilder(
		t, entity.WithBuildObserver(
			func(target, callable string, d time.Duration, err error) {
				mu.Lock()
				defer mu.Unlock()
				events = append(events, buildEvent{target: target, callable: callable, err: err})
			},
		),
	)

	if _, err := entity.ByConstructor[*Model](b, validParams()); err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}
	_, _ = entity.ByStaticConstructor[*Model](b, "create", map[string]any{})
	if _, err := entity.ByConstructor[Address](b, map[string]any{"city": "a", "street": "b"}); err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	if events[0].callable != "constructor" || events[0].err != nil {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].callable != "create" || !entity.IsMissingParameter(events[1].err) {
		t.Errorf("unexpected second event %+v", events[1])
	}
	if events[2].callable != "struct" || !strings.HasSuffix(events[2].target, ".Address") {
		t.Errorf("unexpected third event %+v", events[2])
	}
}

func TestCoerceObserver(t *testing.T) {
	t.Parallel()

	var coerced []string
	b := newModelBuilder(
		t, entity.WithCoerceObserver(
			func(valueObject string, d time.Duration, err error) {
				if err == nil {
					coerced = append(coerced, valueObject)
				}
			},
		),
	)

	if _, err := entity.ByConstructor[*Model](b, validParams()); err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	params := validParams()
	params["id"] = ModelIDFromPrimitive(1)
	if _, err := entity.ByConstructor[*Model](b, params); err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	if len(coerced) != 1 || coerced[0] != "github.com/danpasecinic/entity_test.ModelID" {
		t.Errorf("expected one coercion of ModelID, got %v", coerced)
	}
}

func TestRegisterObserver(t *testing.T) {
	t.Parallel()

	kinds := map[string]int{}
	newModelBuilder(
		t, entity.WithRegisterObserver(
			func(kind, key string) {
				kinds[kind]++
			},
		),
	)

	if kinds["value_object"] != 1 || kinds["constructor"] != 2 || kinds["factory"] != 1 {
		t.Errorf("unexpected registrations %v", kinds)
	}
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := newModelBuilder(t, entity.WithLogger(logger))
	if _, err := entity.ByConstructor[*Model](b, validParams()); err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"registered value object",
		"registered constructor",
		"registered factory",
		"building entity",
		"optional parameter absent",
		"coerced value object",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log %q in:\n%s", want, out)
		}
	}
}

type opaque struct {
	secret string
}

func TestBuildObserverEarlyFailures(t *testing.T) {
	t.Parallel()

	var events []buildEvent
	b := newModelBuilder(
		t, entity.WithBuildObserver(
			func(target, callable string, d time.Duration, err error) {
				events = append(events, buildEvent{target: target, callable: callable, err: err})
			},
		),
	)

	if _, err := entity.ByStaticConstructor[*Model](b, "restore", validParams()); !entity.IsFactoryNotFound(err) {
		t.Fatalf("expected IsFactoryNotFound, got %v", err)
	}
	if _, err := entity.ByConstructor[opaque](b, map[string]any{"secret": "x"}); !entity.IsInvalidTarget(err) {
		t.Fatalf("expected IsInvalidTarget, got %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	if events[0].callable != "restore" || !entity.IsFactoryNotFound(events[0].err) {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if !strings.HasSuffix(events[0].target, ".Model") {
		t.Errorf("unexpected first target %q", events[0].target)
	}
	if events[1].callable != "constructor" || !entity.IsInvalidTarget(events[1].err) {
		t.Errorf("unexpected second event %+v", events[1])
	}
	if !strings.HasSuffix(events[1].target, ".opaque") {
		t.Errorf("unexpected second target %q", events[1].target)
	}
}
