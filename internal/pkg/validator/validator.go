// Package validator wraps go-playground/validator with a process-wide
// instance and a standardized error format.
//
// Besides the built-in tags, the instance understands `notblank`, which
// rejects strings made only of whitespace. Ledger identifiers (transaction,
// patient, sender and requester ids) are tagged with it.
package validator

import (
	"errors"
	"fmt"
	"sync"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrValidation is the first error of the joined chain returned by Validate
// when one or more rules fail.
var ErrValidation = errors.New("validation error")

var (
	validator         *gvalidator.Validate
	initValidatorOnce sync.Once
)

// errStringFormat describes a single field violation.
//
// Example: "'PatientID': value '' does not meet the requirements for the 'notblank' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// Init builds the shared validator instance. Only the first call has effect;
// Validate calls it on demand so callers never need to.
func Init() {
	initValidatorOnce.Do(func() {
		v := gvalidator.New(gvalidator.WithRequiredStructEnabled())

		// NotBlank is a stock validator; registering it can only fail on an empty tag.
		_ = v.RegisterValidation("notblank", validators.NotBlank)

		validator = v
	})
}

// formatError turns validator field errors into a joined error whose first
// element is ErrValidation. Any other error is returned unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidation}
	for _, validationErr := range validationErrors {
		errs = append(errs, fmt.Errorf(errStringFormat,
			validationErr.Field(),
			validationErr.Value(),
			validationErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks v against its `validate` struct tags.
//
// It returns nil when every rule passes. Otherwise the returned error matches
// ErrValidation with errors.Is and lists one message per failing field.
//
//	type GrantInput struct {
//	    RequesterID string `validate:"notblank"`
//	}
//
//	if err := validator.Validate(in); errors.Is(err, validator.ErrValidation) {
//	    // reject input
//	}
func Validate(v any) error {
	Init()

	if err := validator.Struct(v); err != nil {
		return formatError(err)
	}

	return nil
}
