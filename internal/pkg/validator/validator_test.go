package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("should initialize validator instance", func(t *testing.T) {
		Init()
		assert.NotNil(t, validator)
	})

	t.Run("repeated init keeps the same instance", func(t *testing.T) {
		Init()
		first := validator

		Init()
		assert.Same(t, first, validator)
	})
}

func TestFormatError(t *testing.T) {
	t.Run("should transform validation errors to formatted errors", func(t *testing.T) {
		testValidator := gvalidator.New()

		type TestStruct struct {
			Name string `validate:"required"`
		}

		err := testValidator.Struct(TestStruct{})
		require.Error(t, err)

		formattedErr := formatError(err)

		assert.ErrorIs(t, formattedErr, ErrValidation)
		assert.Contains(t, formattedErr.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("should return original error when not validation error", func(t *testing.T) {
		originalErr := errors.New("redis connection failed")
		formattedErr := formatError(originalErr)

		assert.Equal(t, originalErr, formattedErr)
	})
}

func TestValidate(t *testing.T) {
	type grant struct {
		RequesterID   string   `validate:"notblank"`
		DataTypes     []string `validate:"min=1,dive,notblank"`
		DurationHours float64  `validate:"gt=0"`
	}

	t.Run("should pass with a complete grant", func(t *testing.T) {
		err := Validate(grant{
			RequesterID:   "dr_smith",
			DataTypes:     []string{"heart_rate"},
			DurationHours: 24,
		})
		assert.NoError(t, err)
	})

	t.Run("should reject whitespace-only identifiers", func(t *testing.T) {
		err := Validate(grant{
			RequesterID:   "   ",
			DataTypes:     []string{"heart_rate"},
			DurationHours: 1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "'RequesterID'")
		assert.Contains(t, err.Error(), "'notblank'")
	})

	t.Run("should report every failing field", func(t *testing.T) {
		err := Validate(grant{})
		require.Error(t, err)

		errStr := err.Error()
		assert.Contains(t, errStr, "'RequesterID'")
		assert.Contains(t, errStr, "'DataTypes'")
		assert.Contains(t, errStr, "'DurationHours'")
	})

	t.Run("should reject blank entries inside slices", func(t *testing.T) {
		err := Validate(grant{
			RequesterID:   "dr_smith",
			DataTypes:     []string{"heart_rate", ""},
			DurationHours: 1,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should return non-validation error for invalid input", func(t *testing.T) {
		err := Validate("not a struct")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrValidation)
	})
}
