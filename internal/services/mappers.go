package services

import (
	"filasling/internal/dto"
	"filasling/internal/entities"
)

func toTicketDTO(t entities.Ticket) dto.TicketDTO {
	out := dto.TicketDTO{
		ID:                 t.ID,
		Nome:               t.Nome,
		Motivo:             t.Motivo,
		Telefone:           t.Telefone,
		Setor:              t.Setor,
		UserNS:             t.UserNS,
		AtendenteID:        t.AtendenteID,
		NomeAtendente:      t.NomeAtendente,
		EmailAtendente:     t.EmailAtendente,
		URLImagemAtendente: t.URLImagemAtendente,
		EtapaNumero:        t.EtapaNumero,
		NumeroSistema:      t.NumeroSistema,
		DataCriado:         t.CreatedAt,
		DataAtualizado:     t.UpdatedAt,
		DataSaidaEtapa1:    t.DataSaidaEtapa1,
		EtapaNome:          t.EtapaNome,
		EtapaCor:           t.EtapaCor,
	}
	if t.AtendenteID != nil {
		out.Atendente = &dto.AtendenteResumoDTO{
			ID:        *t.AtendenteID,
			Nome:      t.AtendenteNomeAtual,
			Email:     t.AtendenteEmailAtual,
			URLImagem: t.AtendenteImagemAtual,
		}
	}
	return out
}

func toEtapaDTO(e entities.Etapa) dto.EtapaDTO {
	return dto.EtapaDTO{
		ID:             e.ID,
		Nome:           e.Nome,
		Numero:         e.Numero,
		NumeroSistema:  e.NumeroSistema,
		Cor:            e.Cor,
		DataCriado:     e.CreatedAt,
		DataAtualizado: e.UpdatedAt,
	}
}

func toAtendenteDTO(a entities.Atendente) dto.AtendenteDTO {
	return dto.AtendenteDTO{
		ID:             a.ID,
		Nome:           a.Nome,
		Email:          a.Email,
		URLImagem:      a.URLImagem,
		Ativo:          a.Ativo,
		Admin:          a.Admin,
		DataCriado:     a.CreatedAt,
		DataAtualizado: a.UpdatedAt,
	}
}
