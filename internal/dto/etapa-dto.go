package dto

import (
	"time"

	"filasling/pkg/utils"

	"github.com/aarondl/null/v8"
)

type CreateEtapaDTO struct {
	Nome          string   `json:"nome" validate:"required,max=100"`
	Numero        int      `json:"numero" validate:"required,min=1"`
	NumeroSistema null.Int `json:"numero_sistema" validate:"omitempty,min=0"`
	Cor           string   `json:"cor" validate:"required,stage_color"`
}

type UpdateEtapaDTO struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=1,max=100"`
	Numero        *int     `json:"numero" validate:"omitempty,min=1"`
	NumeroSistema null.Int `json:"numero_sistema" validate:"omitempty,min=0"`
	Cor           *string  `json:"cor" validate:"omitempty,stage_color"`

	Fields utils.SentFields `json:"-"`
}

type EtapaDTO struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	Numero         int       `json:"numero"`
	NumeroSistema  *int      `json:"numero_sistema"`
	Cor            string    `json:"cor"`
	DataCriado     time.Time `json:"data_criado"`
	DataAtualizado time.Time `json:"data_atualizado"`
}
