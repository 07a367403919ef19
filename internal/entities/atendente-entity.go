package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Atendente struct {
	ID        string
	Nome      string
	Email     string
	URLImagem *string
	Ativo     bool
	Admin     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AtendentePatch: nil - поле не менять.
type AtendentePatch struct {
	Nome      *string
	Email     *string
	URLImagem *null.String
	Ativo     *bool
	Admin     *bool
}

func (p AtendentePatch) IsEmpty() bool {
	return p.Nome == nil && p.Email == nil && p.URLImagem == nil && p.Ativo == nil && p.Admin == nil
}
