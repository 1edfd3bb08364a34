package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/danpasecinic/entity/internal/graph"
	ireflect "github.com/danpasecinic/entity/internal/reflect"
	"github.com/danpasecinic/entity/internal/registry"
)

// Builder holds the registered value objects, constructors and factories that
// ByConstructor and ByStaticConstructor resolve against. A Builder is safe for
// concurrent use; registration is expected to happen before the first build.
type Builder struct {
	config *builderConfig
	logger *slog.Logger

	valueObjects *registry.Registry[*valueObjectEntry]
	constructors *registry.Registry[*callable]
	factories    *registry.Registry[*callable]

	// coercions links each value object to the value object its factory takes.
	coercions *graph.Graph
	regMu     sync.Mutex

	structPlans sync.Map
	inputPlans  sync.Map
}

func New(opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		config:       cfg,
		logger:       logger,
		valueObjects: registry.New[*valueObjectEntry](),
		constructors: registry.New[*callable](),
		factories:    registry.New[*callable](),
		coercions:    graph.New(),
	}
}

// Validate reports value-object factories that take a value object nothing can
// build, and any coercion cycle.
func (b *Builder) Validate() error {
	var errs []error

	for _, missing := range b.coercions.Missing() {
		errs = append(errs, fmt.Errorf("no value object factory for %s", missing))
	}

	for _, cycle := range b.coercions.Cycles() {
		errs = append(errs, errCircularCoercion(b.coercions.CyclePath(cycle[0])))
	}

	if len(errs) > 0 {
		return errValidationFailed(errors.Join(errs...))
	}
	return nil
}

func (b *Builder) ValueObjects() []string {
	return b.valueObjects.Keys()
}

func (b *Builder) Constructors() []string {
	return b.constructors.Keys()
}

func (b *Builder) Factories() []string {
	return b.factories.Keys()
}

func (b *Builder) key(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + b.config.separator + name
}

// constructorFor returns the registered constructor of t, or the struct
// literal plan when none is registered.
func (b *Builder) constructorFor(t reflect.Type) (*callable, error) {
	key := ireflect.KeyOf(t)
	if c, ok := b.constructors.Get(key); ok {
		return c, nil
	}
	return b.structPlan(t)
}

func (b *Builder) structPlan(t reflect.Type) (*callable, error) {
	if cached, ok := b.structPlans.Load(t); ok {
		return cached.(*callable), nil
	}

	key := ireflect.KeyOf(t)
	fields, err := ireflect.StructFields(t, b.config.tagKey, b.config.keyNaming)
	if err != nil {
		return nil, errInvalidTarget(key, fmt.Errorf("no constructor registered and %w", err))
	}

	c := &callable{
		target:     key,
		name:       callableStruct,
		structType: t,
	}
	for _, f := range fields {
		// unreachable on a fresh value, its embedded pointer is nil
		if f.Indirect {
			continue
		}
		c.params = append(
			c.params, parameter{
				name:     f.Name,
				typ:      f.Type,
				optional: f.Optional || isOptionalType(f.Type),
				index:    f.Index,
			},
		)
	}
	if len(c.params) == 0 && derefType(t).NumField() > 0 {
		return nil, errInvalidTarget(key, fmt.Errorf("no constructor registered and no exported fields"))
	}

	actual, _ := b.structPlans.LoadOrStore(t, c)
	return actual.(*callable), nil
}

func (b *Builder) callBuildHooks(target, callable string, duration time.Duration, err error) {
	for _, hook := range b.config.onBuild {
		hook(target, callable, duration, err)
	}
}

func (b *Builder) callCoerceHooks(valueObject string, duration time.Duration, err error) {
	for _, hook := range b.config.onCoerce {
		hook(valueObject, duration, err)
	}
}

func (b *Builder) callRegisterHooks(kind, key string) {
	for _, hook := range b.config.onRegister {
		hook(kind, key)
	}
}
