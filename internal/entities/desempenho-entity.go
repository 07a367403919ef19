package entities

// AtendenteDesempenho - среднее время выхода из стадии 1 по атенденту.
type AtendenteDesempenho struct {
	AtendenteID        string
	Nome               string
	Email              *string
	URLImagem          *string
	TicketsAtendidos   int
	TempoMedioSegundos float64
}

// AtendenteAtraso - тикеты, слишком долго ждущие в стадии 1.
type AtendenteAtraso struct {
	AtendenteID     string
	Nome            string
	Email           *string
	URLImagem       *string
	TicketsEmAtraso int
}
