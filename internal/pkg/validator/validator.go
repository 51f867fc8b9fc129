package validator

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"gigflow/internal/pkg/apperr"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// Struct validates v and returns a validation application error listing the
// failing fields, or nil.
func Struct(v interface{}) error {
	fields := Validate(v)
	if len(fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(fields))
	for name, tag := range fields {
		names = append(names, name+" ("+tag+")")
	}
	sort.Strings(names)

	e := *apperr.ErrValidation
	e.Message = "Invalid fields: " + strings.Join(names, ", ")
	e.Details = fields
	return &e
}
