package entities

import "time"

// Account - строка таблицы login.
type Account struct {
	ID        string
	Usuario   string
	Senha     string
	Ativo     bool
	Admin     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
