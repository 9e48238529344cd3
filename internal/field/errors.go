package field

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every configuration error returned from this package.
var ErrConfig = errors.New("invalid configuration")

// ConfigError describes a rejected parameter. Nothing is computed or written
// when one is returned.
type ConfigError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}
