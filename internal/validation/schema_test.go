package validation

import (
	"strings"
	"testing"

	"animal-shelter/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var petSchema = MustCompile(`{
	"type": "object",
	"required": ["name"],
	"additionalProperties": false,
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"weight_kg": {"type": "number", "minimum": 0}
	}
}`)

type petBody struct {
	Name     string   `json:"name"`
	WeightKg *float64 `json:"weight_kg"`
}

func TestDecode_OK(t *testing.T) {
	var b petBody
	require.NoError(t, petSchema.Decode(strings.NewReader(`{"name":"Luna","weight_kg":4.5}`), &b))
	assert.Equal(t, "Luna", b.Name)
	require.NotNil(t, b.WeightKg)
	assert.InDelta(t, 4.5, *b.WeightKg, 0.001)
}

func TestDecode_FieldErrors(t *testing.T) {
	var b petBody
	err := petSchema.Decode(strings.NewReader(`{"weight_kg":-1,"extra":true}`), &b)
	require.Error(t, err)

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "weight_kg")
	assert.Contains(t, ae.Fields, "_")
}

func TestDecode_InvalidJSONAndEmptyBody(t *testing.T) {
	var b petBody
	err := petSchema.Decode(strings.NewReader(`{"name":`), &b)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = petSchema.Decode(strings.NewReader(""), &b)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "name")
}
