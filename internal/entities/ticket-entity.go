package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// EtapaAguardando - входная стадия очереди.
const EtapaAguardando = 1

// Ticket хранит снимок данных атендента на момент назначения.
type Ticket struct {
	ID                 string
	Nome               string
	Motivo             string
	Telefone           *string
	Setor              *string
	UserNS             *string
	AtendenteID        *string
	NomeAtendente      *string
	EmailAtendente     *string
	URLImagemAtendente *string
	EtapaNumero        int
	NumeroSistema      *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DataSaidaEtapa1    *time.Time

	// Живые данные из JOIN, не хранятся в tickets.
	EtapaNome            *string
	EtapaCor             *string
	AtendenteNomeAtual   *string
	AtendenteEmailAtual  *string
	AtendenteImagemAtual *string
}

// TicketPatch - изменения для UPDATE. nil - поле не трогать;
// null-значение внутри - записать NULL.
type TicketPatch struct {
	Nome               *string
	Motivo             *string
	Telefone           *null.String
	Setor              *null.String
	UserNS             *null.String
	AtendenteID        *null.String
	NomeAtendente      *null.String
	EmailAtendente     *null.String
	URLImagemAtendente *null.String
	EtapaNumero        *int
	NumeroSistema      *null.Int
	StampSaidaEtapa1   bool
}

func (p TicketPatch) IsEmpty() bool {
	return p.Nome == nil && p.Motivo == nil && p.Telefone == nil && p.Setor == nil &&
		p.UserNS == nil && p.AtendenteID == nil && p.NomeAtendente == nil &&
		p.EmailAtendente == nil && p.URLImagemAtendente == nil && p.EtapaNumero == nil &&
		p.NumeroSistema == nil && !p.StampSaidaEtapa1
}

type TicketFilter struct {
	EtapaNumero *int
	AtendenteID *string
}
