package entity

import (
	"time"
)

// BuildHook observes one ByConstructor or ByStaticConstructor call. callable is
// "constructor", "struct" or the factory name.
type BuildHook func(target, callable string, duration time.Duration, err error)

// CoerceHook observes one primitive to value-object coercion.
type CoerceHook func(valueObject string, duration time.Duration, err error)

// RegisterHook observes a successful registration. kind is "value_object",
// "constructor" or "factory".
type RegisterHook func(kind, key string)
