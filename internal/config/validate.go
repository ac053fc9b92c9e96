package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/typespeed/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var flagNames = map[string]string{
	"TimeLimit": "--time",
	"WordsFile": "--words-file",
	"Sample":    "--sample",
	"LogLevel":  "--log-level",
}

// Validate checks merged settings and reports the first offending flag.
func Validate(cfg model.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("invalid config: %w", err)
	}
	fe := verrs[0]
	name, ok := flagNames[fe.Field()]
	if !ok {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "gte":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	case "lte":
		return fmt.Errorf("%s must be <= %s", name, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", name, fe.Param())
	case "filepath":
		return fmt.Errorf("%s must be a file path", name)
	default:
		return fmt.Errorf("%s is invalid (%s)", name, fe.Tag())
	}
}
