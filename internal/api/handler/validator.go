package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/hashing"
)

// Validator is the echo.Validator of the API. Field errors are keyed by the
// JSON name of the field.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("evmaddress", func(fl validator.FieldLevel) bool {
		return hashing.IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation("datahash", func(fl validator.FieldLevel) bool {
		return hashing.IsValidHash(fl.Field().String())
	})
	_ = v.RegisterValidation("txhash", func(fl validator.FieldLevel) bool {
		return hashing.IsValidTxHash(fl.Field().String())
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(errs.KindValidation, "invalid request", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return errs.New(errs.KindValidation, "request validation failed").WithDetails(map[string]any{"fields": fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "evmaddress":
		return "must be 0x followed by 40 hex characters"
	case "datahash":
		return "must be 64 lowercase hex characters"
	case "txhash":
		return "must be 0x followed by 64 hex characters"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	default:
		return "failed on " + fe.Tag()
	}
}
