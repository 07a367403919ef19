package dto

type DesempenhoDTO struct {
	ID                  string  `json:"id"`
	Nome                string  `json:"nome"`
	Email               *string `json:"email"`
	URLImagem           *string `json:"url_imagem"`
	TicketsAtendidos    int     `json:"tickets_atendidos"`
	TempoMedioSegundos  int64   `json:"tempo_medio_segundos"`
	TempoMedioFormatado string  `json:"tempo_medio_formatado"`
}

type AtrasoDTO struct {
	ID              string  `json:"id"`
	Nome            string  `json:"nome"`
	Email           *string `json:"email"`
	URLImagem       *string `json:"url_imagem"`
	TicketsEmAtraso int     `json:"tickets_em_atraso"`
}
