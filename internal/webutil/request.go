package webutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"go_learn_sphere/internal/model"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody decodes the request body into dst, rejecting unknown fields.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return model.ErrInvalidInput
	}
	return nil
}

// ValidateStruct runs the shared validator and converts the first failure
// into an AppError with a translated message.
func ValidateStruct(dst interface{}) error {
	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			return model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
		}
		return err
	}
	return nil
}
