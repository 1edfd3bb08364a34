package entity

import (
	"log/slog"

	"github.com/danpasecinic/entity/internal/naming"
)

const (
	DefaultTagKey    = "entity"
	DefaultSeparator = "_"
)

type Option func(*builderConfig)

type builderConfig struct {
	logger     *slog.Logger
	tagKey     string
	separator  string
	keyNaming  func(string) string
	lenient    bool
	onBuild    []BuildHook
	onCoerce   []CoerceHook
	onRegister []RegisterHook
}

func defaultConfig() *builderConfig {
	return &builderConfig{
		logger:    slog.Default(),
		tagKey:    DefaultTagKey,
		separator: DefaultSeparator,
		keyNaming: naming.Snake,
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *builderConfig) {
		cfg.logger = logger
	}
}

// WithTagKey sets the struct tag read for parameter names and options.
func WithTagKey(key string) Option {
	return func(cfg *builderConfig) {
		cfg.tagKey = key
	}
}

// WithSeparator sets the string joining a prefix to a parameter name. The
// separator should not occur inside prefixes, or keys from two prefixes can
// collide.
func WithSeparator(sep string) Option {
	return func(cfg *builderConfig) {
		cfg.separator = sep
	}
}

// WithKeyNaming sets how untagged Go field names map to record keys.
func WithKeyNaming(fn func(goName string) string) Option {
	return func(cfg *builderConfig) {
		cfg.keyNaming = fn
	}
}

// WithLenientPrimitives lets primitive parameters accept values of another
// numeric kind, or of another type with the same underlying scalar kind, by
// reflect conversion. Without it a mismatched primitive fails the build.
func WithLenientPrimitives() Option {
	return func(cfg *builderConfig) {
		cfg.lenient = true
	}
}

func WithBuildObserver(hook BuildHook) Option {
	return func(cfg *builderConfig) {
		cfg.onBuild = append(cfg.onBuild, hook)
	}
}

func WithCoerceObserver(hook CoerceHook) Option {
	return func(cfg *builderConfig) {
		cfg.onCoerce = append(cfg.onCoerce, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *builderConfig) {
		cfg.onRegister = append(cfg.onRegister, hook)
	}
}

type BuildOption func(*buildConfig)

type buildConfig struct {
	prefix string
}

// WithPrefix looks every parameter up as prefix + separator + name.
func WithPrefix(prefix string) BuildOption {
	return func(cfg *buildConfig) {
		cfg.prefix = prefix
	}
}
