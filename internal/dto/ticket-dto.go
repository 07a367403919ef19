package dto

import (
	"time"

	"filasling/pkg/utils"

	"github.com/aarondl/null/v8"
)

type CreateTicketDTO struct {
	Nome          string   `json:"nome" validate:"required,max=255"`
	Motivo        string   `json:"motivo" validate:"required,max=2000"`
	Telefone      *string  `json:"telefone" validate:"omitempty,br_phone"`
	Setor         *string  `json:"setor" validate:"omitempty,max=255"`
	UserNS        *string  `json:"user_ns" validate:"omitempty,max=255"`
	AtendenteID   *string  `json:"atendente_id" validate:"omitempty,len=0|uuid"`
	EtapaNumero   *int     `json:"etapa_numero" validate:"omitempty,min=1"`
	NumeroSistema null.Int `json:"numero_sistema" validate:"omitempty,min=0"`
}

// UpdateTicketDTO: меняются только присланные поля (см. Fields).
// atendente_id: null или "" снимает назначение.
type UpdateTicketDTO struct {
	Nome          *string  `json:"nome" validate:"omitempty,min=1,max=255"`
	Motivo        *string  `json:"motivo" validate:"omitempty,min=1,max=2000"`
	Telefone      *string  `json:"telefone" validate:"omitempty,br_phone"`
	Setor         *string  `json:"setor" validate:"omitempty,max=255"`
	UserNS        *string  `json:"user_ns" validate:"omitempty,max=255"`
	AtendenteID   *string  `json:"atendente_id" validate:"omitempty,len=0|uuid"`
	EtapaNumero   *int     `json:"etapa_numero" validate:"omitempty,min=1"`
	NumeroSistema null.Int `json:"numero_sistema" validate:"omitempty,min=0"`

	Fields utils.SentFields `json:"-"`
}

type TicketListFilterDTO struct {
	EtapaNumero *int    `query:"etapa_numero" validate:"omitempty,min=1"`
	AtendenteID *string `query:"atendente_id" validate:"omitempty,uuid"`
}

type AtendenteResumoDTO struct {
	ID        string  `json:"id"`
	Nome      *string `json:"nome"`
	Email     *string `json:"email"`
	URLImagem *string `json:"url_imagem"`
}

type TicketDTO struct {
	ID                 string     `json:"id"`
	Nome               string     `json:"nome"`
	Motivo             string     `json:"motivo"`
	Telefone           *string    `json:"telefone"`
	Setor              *string    `json:"setor"`
	UserNS             *string    `json:"user_ns"`
	AtendenteID        *string    `json:"atendente_id"`
	NomeAtendente      *string    `json:"nome_atendente"`
	EmailAtendente     *string    `json:"email_atendente"`
	URLImagemAtendente *string    `json:"url_imagem_atendente"`
	EtapaNumero        int        `json:"etapa_numero"`
	NumeroSistema      *int       `json:"numero_sistema"`
	DataCriado         time.Time  `json:"data_criado"`
	DataAtualizado     time.Time  `json:"data_atualizado"`
	DataSaidaEtapa1    *time.Time `json:"data_saida_etapa1"`

	EtapaNome *string             `json:"etapa_nome,omitempty"`
	EtapaCor  *string             `json:"etapa_cor,omitempty"`
	Atendente *AtendenteResumoDTO `json:"atendente,omitempty"`
}
