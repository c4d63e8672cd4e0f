package pathbus

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var configValidator = validator.New()

// Config configures a Bus. There is no file discovery, environment overlay,
// or template expansion here - those stay external collaborators, out of
// scope - but the bus still needs a handful of defaulted, validated knobs,
// the way the teacher's own constructor sets defaults on its router struct
// literal.
type Config struct {
	// MemoLimit bounds the number of entries kept in each subscription's
	// per-topic memo cache. Zero means unbounded.
	MemoLimit int `validate:"gte=0"`

	// Logger receives HandlerFailure events. A nil Logger discards them.
	Logger *zerolog.Logger
}

// DefaultConfig returns the zero-value-compatible defaults: unbounded memo,
// no logger.
func DefaultConfig() Config {
	return Config{MemoLimit: 0, Logger: nil}
}

// resolveConfig composes cfg over DefaultConfig() using dario.cat/mergo
// (caller-supplied fields win), then validates the result. Since
// DefaultConfig is all zero values today, WithOverride reduces to copying
// cfg's fields straight through; the merge still runs through mergo rather
// than a plain struct literal so that the moment DefaultConfig grows a
// genuinely non-zero default, a caller's zero-valued field keeps falling
// through to it instead of silently winning. This is a different call site
// than the dispatcher's map merge in merge.go, which is hand-rolled for
// reasons documented there.
func resolveConfig(cfg Config) (Config, error) {
	merged := DefaultConfig()
	if err := mergo.Merge(&merged, cfg, mergo.WithOverride()); err != nil {
		return Config{}, fmt.Errorf("pathbus: compose config: %w", err)
	}
	if err := configValidator.Struct(merged); err != nil {
		return Config{}, fmt.Errorf("pathbus: invalid config: %w", err)
	}
	return merged, nil
}
