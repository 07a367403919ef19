package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stagePayload struct {
	Cor           string   `validate:"required,stage_color"`
	Telefone      *string  `validate:"omitempty,br_phone"`
	NumeroSistema null.Int `validate:"omitempty,min=1"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestStageColor(t *testing.T) {
	v := newValidator(t)
	for _, ok := range []string{"#fff", "#00AAff", "orange"} {
		assert.NoError(t, v.Struct(stagePayload{Cor: ok}), ok)
	}
	for _, bad := range []string{"#ff", "#12345g", "rgb(1,2,3)", ""} {
		assert.Error(t, v.Struct(stagePayload{Cor: bad}), bad)
	}
}

func TestPhoneAndNullInt(t *testing.T) {
	v := newValidator(t)
	phone := "+55 (11) 91234-5678"
	assert.NoError(t, v.Struct(stagePayload{Cor: "#fff", Telefone: &phone}))

	bad := "abc"
	assert.Error(t, v.Struct(stagePayload{Cor: "#fff", Telefone: &bad}))

	assert.NoError(t, v.Struct(stagePayload{Cor: "#fff", NumeroSistema: null.Int{}}))
	assert.NoError(t, v.Struct(stagePayload{Cor: "#fff", NumeroSistema: null.IntFrom(3)}))
	assert.Error(t, v.Struct(stagePayload{Cor: "#fff", NumeroSistema: null.IntFrom(-1)}))
}
