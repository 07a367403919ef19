package seeders

type etapaSeed struct {
	Nome          string
	Numero        int
	NumeroSistema *int
	Cor           string
}

// etapasData - стартовый набор колонок доски; номер 1 обязателен.
var etapasData = []etapaSeed{
	{Nome: "Aguardando", Numero: 1, Cor: "#f59e0b"},
	{Nome: "Em atendimento", Numero: 2, Cor: "#3b82f6"},
	{Nome: "Finalizado", Numero: 3, Cor: "#22c55e"},
}
