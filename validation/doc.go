// Package validation validates configuration structs using
// go-playground/validator struct tags.
//
// Failures are reported as INVALID_ARGUMENT AppErrors whose details list
// every offending field, keyed by its mapstructure name.
//
//	type Config struct {
//	    Limit int `mapstructure:"limit" validate:"gte=0"`
//	}
//	if err := validation.Validate(cfg); err != nil { ... }
package validation
