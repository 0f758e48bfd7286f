package config

import (
	"fmt"
	"strings"

	"github.com/griffithind/termout/internal/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once as a
// config/CONFIG_INVALID error.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if _, err := c.VerbosityLevel(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "verbosity",
			Message: fmt.Sprintf("unknown verbosity %q", c.Verbosity),
		})
	}

	if c.Log.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "log.maxSizeMB",
			Message: "must not be negative",
		})
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log.maxBackups",
			Message: "must not be negative",
		})
	}

	for _, name := range c.styleNames() {
		if _, err := c.Styles[name].Style(); err != nil {
			msg := err.Error()
			if e, ok := errors.As(err); ok {
				msg = e.Message
			}
			errs = append(errs, ValidationError{
				Field:   "styles." + name,
				Message: msg,
			})
		}
	}

	if len(errs) > 0 {
		return errors.ConfigInvalid(errs[0].Field, errs)
	}
	return nil
}
