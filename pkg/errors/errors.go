package errors

import "fmt"

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("token expirado")
	ErrTokenSubjectRequired = fmt.Errorf("token requer 'sub' ou 'usuario'")
	ErrSigningKeyMissing    = fmt.Errorf("chave de assinatura não configurada")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("cabeçalho Authorization ausente")
	ErrInvalidAuthHeader  = fmt.Errorf("formato do cabeçalho Authorization inválido")
	ErrInvalidCredentials = fmt.Errorf("usuário ou senha incorretos")
	ErrAccountInactive    = fmt.Errorf("usuário inativo")
	ErrAccountLocked      = fmt.Errorf("conta temporariamente bloqueada")
	ErrAccountPending     = fmt.Errorf("conta aguardando aprovação do administrador")
	ErrUnauthorized       = fmt.Errorf("não autorizado")
	ErrForbidden          = fmt.Errorf("acesso negado")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID não encontrado no contexto")

	// Общие
	ErrNotFound   = fmt.Errorf("registro não encontrado")
	ErrConflict   = fmt.Errorf("registro já existe")
	ErrInUse      = fmt.Errorf("registro em uso")
	ErrBadRequest = fmt.Errorf("requisição inválida")
)

// HttpError несёт код ответа, сообщение для клиента и исходную ошибку для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}
