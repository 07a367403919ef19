package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

type LoginResponseDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	IsAdmin     bool   `json:"isAdmin"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type SessionResponseDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	Ativo    bool   `json:"ativo"`
}

type DBCheckDTO struct {
	Database string `json:"database"`
	Accounts int64  `json:"accounts"`
}

// RegisterDTO - самостоятельная регистрация; admin здесь намеренно отсутствует.
type RegisterDTO struct {
	Nome      string  `json:"nome" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Senha     string  `json:"senha" validate:"required,min=6,max=72"`
	URLImagem *string `json:"url_imagem" validate:"omitempty,url,max=1024"`
}
