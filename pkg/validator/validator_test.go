package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	MachineName string `json:"machine_name" validate:"required,min=2"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, Validate(sampleDTO{MachineName: "contes-nit", Amount: 999}))
	assert.NoError(t, Validate(sampleDTO{MachineName: "contes-nit", Amount: 999, Currency: "eur"}))
}

func TestValidate_FieldMessages(t *testing.T) {
	err := Validate(sampleDTO{Currency: "euros"})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Contains(t, fields, "MachineName")
	assert.Contains(t, fields, "Amount")
	assert.Contains(t, fields, "Currency")
	assert.Equal(t, "is required", fields["MachineName"])
}

func TestValidate_ErrorStringListsFields(t *testing.T) {
	err := Validate(sampleDTO{MachineName: "x", Amount: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MachineName")
}
