package dto

import (
	"time"

	"filasling/pkg/utils"
)

type CreateAtendenteDTO struct {
	Nome      string  `json:"nome" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Senha     string  `json:"senha" validate:"required,min=6,max=72"`
	URLImagem *string `json:"url_imagem" validate:"omitempty,url,max=1024"`
	Admin     bool    `json:"admin"`
}

// UpdateAtendenteDTO: url_imagem: null очищает аватар.
type UpdateAtendenteDTO struct {
	Nome      *string `json:"nome" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	URLImagem *string `json:"url_imagem" validate:"omitempty,url,max=1024"`
	Ativo     *bool   `json:"ativo"`
	Admin     *bool   `json:"admin"`

	Fields utils.SentFields `json:"-"`
}

type UpdateSenhaDTO struct {
	Senha string `json:"senha" validate:"required,min=6,max=72"`
}

type AtendenteDTO struct {
	ID             string    `json:"id"`
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	URLImagem      *string   `json:"url_imagem"`
	Ativo          bool      `json:"ativo"`
	Admin          bool      `json:"admin"`
	DataCriado     time.Time `json:"data_criado"`
	DataAtualizado time.Time `json:"data_atualizado"`
}
