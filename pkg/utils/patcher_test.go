package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filasling/pkg/errors"
)

type patchTarget struct {
	Nome        *string `json:"nome"`
	AtendenteID *string `json:"atendente_id"`
	EtapaNumero *int    `json:"etapa_numero"`
}

func TestDecodePatch(t *testing.T) {
	var dst patchTarget
	fields, err := DecodePatch([]byte(`{"nome":"Jane","atendente_id":null}`), &dst)
	require.NoError(t, err)

	assert.True(t, fields.Has("nome"))
	assert.True(t, fields.Has("atendente_id"))
	assert.False(t, fields.Has("etapa_numero"))
	assert.Equal(t, "Jane", *dst.Nome)
	assert.Nil(t, dst.AtendenteID)
}

func TestDecodePatch_EmptyAndInvalid(t *testing.T) {
	var dst patchTarget
	fields, err := DecodePatch([]byte("  "), &dst)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = DecodePatch([]byte(`[1,2]`), &dst)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDecodePatch_KeyCaseMatchesDecoding(t *testing.T) {
	var dst patchTarget
	fields, err := DecodePatch([]byte(`{"Etapa_Numero": 2, "NOME": "Ana"}`), &dst)
	require.NoError(t, err)

	require.NotNil(t, dst.EtapaNumero)
	assert.Equal(t, 2, *dst.EtapaNumero)
	assert.True(t, fields.Has("etapa_numero"))
	assert.True(t, fields.Has("nome"))
	assert.False(t, fields.Has("atendente_id"))
}
