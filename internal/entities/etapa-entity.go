package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type Etapa struct {
	ID            string
	Nome          string
	Numero        int
	NumeroSistema *int
	Cor           string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EtapaPatch struct {
	Nome          *string
	Numero        *int
	NumeroSistema *null.Int
	Cor           *string
}

func (p EtapaPatch) IsEmpty() bool {
	return p.Nome == nil && p.Numero == nil && p.NumeroSistema == nil && p.Cor == nil
}
