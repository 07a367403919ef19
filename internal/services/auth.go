package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"filasling/internal/dto"
	"filasling/internal/repositories"
	"filasling/pkg/config"
	apperrors "filasling/pkg/errors"
	"filasling/pkg/service"
	"filasling/pkg/utils"
)

const tokenTypeBearer = "bearer"

// Pinger - проверка доступности базы (pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Registrar создаёт неактивную учётку с профилем (AtendenteService).
type Registrar interface {
	RegisterAtendente(ctx context.Context, payload dto.RegisterDTO) (*dto.AtendenteDTO, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AtendenteDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Session(ctx context.Context) (*dto.SessionResponseDTO, error)
	DBCheck(ctx context.Context) (*dto.DBCheckDTO, error)
}

type AuthService struct {
	accountRepo repositories.AccountRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	jwtService  service.JWTService
	registrar   Registrar
	db          Pinger
	logger      *zap.Logger
	cfg         *config.AuthConfig
}

func NewAuthService(
	accountRepo repositories.AccountRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	registrar Registrar,
	db Pinger,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		accountRepo: accountRepo,
		cacheRepo:   cacheRepo,
		jwtService:  jwtService,
		registrar:   registrar,
		db:          db,
		logger:      logger,
		cfg:         cfg,
	}
}

// Register: новая учётка не может войти, пока админ не выставит ativo=true.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AtendenteDTO, error) {
	return s.registrar.RegisterAtendente(ctx, payload)
}

// Login: неизвестный логин и неверный пароль дают одинаковый ответ.
// Неактивная учётка различается только после проверки пароля.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	username := strings.TrimSpace(payload.Username)
	logger := s.logger.With(zap.String("username", username))

	acc, err := s.accountRepo.FindByUsuario(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Login: usuário não encontrado")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.checkLockout(ctx, acc.ID); err != nil {
		logger.Warn("Login: conta bloqueada", zap.String("userID", acc.ID))
		return nil, err
	}

	if !utils.VerifyPassword(acc.Senha, payload.Password) {
		s.handleFailedLoginAttempt(ctx, acc.ID)
		logger.Info("Login: senha incorreta", zap.String("userID", acc.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !acc.Ativo {
		logger.Info("Login: conta aguardando aprovação", zap.String("userID", acc.ID))
		return nil, apperrors.ErrAccountPending
	}

	s.resetLoginAttempts(ctx, acc.ID)

	token, err := s.jwtService.IssueToken(service.TokenClaims{Subject: acc.Usuario, UserID: acc.ID})
	if err != nil {
		return nil, err
	}

	logger.Info("Login realizado", zap.String("userID", acc.ID))
	return &dto.LoginResponseDTO{
		ID:          acc.ID,
		Username:    acc.Usuario,
		IsAdmin:     acc.Admin,
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	}, nil
}

// Session проверяет, что владелец токена существует и активен.
func (s *AuthService) Session(ctx context.Context) (*dto.SessionResponseDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	acc, err := s.accountRepo.FindByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !acc.Ativo {
		return nil, apperrors.ErrAccountInactive
	}

	return &dto.SessionResponseDTO{
		ID:       acc.ID,
		Username: acc.Usuario,
		IsAdmin:  acc.Admin,
		Ativo:    acc.Ativo,
	}, nil
}

func (s *AuthService) DBCheck(ctx context.Context) (*dto.DBCheckDTO, error) {
	if err := s.db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("banco de dados indisponível: %w", err)
	}
	total, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DBCheckDTO{Database: "ok", Accounts: total}, nil
}

// Ошибки Redis не блокируют вход: Get с ошибкой считается отсутствием блокировки.
func (s *AuthService) checkLockout(ctx context.Context, userID string) error {
	if s.cfg.MaxLoginAttempts <= 0 {
		return nil
	}
	lockoutKey := fmt.Sprintf("lockout:%s", userID)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf("login_attempts:%s", userID)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Falha ao contar tentativas de login", zap.String("userID", userID), zap.Error(err))
		return
	}
	if attempts == 1 {
		_ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%s", userID)
		_ = s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID string) {
	if s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf("login_attempts:%s", userID)
	lockoutKey := fmt.Sprintf("lockout:%s", userID)
	_ = s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
