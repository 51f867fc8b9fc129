package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gigflow/internal/pkg/apperr"
)

type sample struct {
	Title  string  `validate:"required,notblank"`
	Budget float64 `validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Title: "Logo", Budget: 10}))

	errs := Validate(sample{Title: "   ", Budget: -1})
	assert.Equal(t, "notblank", errs["Title"])
	assert.Equal(t, "gte", errs["Budget"])
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Title: "Logo"}))

	err := Struct(sample{Budget: -5})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Contains(t, err.Error(), "Budget (gte)")
	assert.Contains(t, err.Error(), "Title (required)")
	assert.Equal(t, map[string]string{"Budget": "gte", "Title": "required"}, apperr.DetailsOf(err))
}

type optionalNumber struct {
	Price *float64 `validate:"required,gte=0"`
}

func TestPointerNumberRequired(t *testing.T) {
	zero, neg := 0.0, -1.0

	assert.Equal(t, "required", Validate(optionalNumber{})["Price"])
	assert.Nil(t, Validate(optionalNumber{Price: &zero}))
	assert.Equal(t, "gte", Validate(optionalNumber{Price: &neg})["Price"])
}
