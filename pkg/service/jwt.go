package service

import (
	"errors"
	"fmt"
	"time"

	apperrors "filasling/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// JwtCustomClaim: sub = usuario, id = идентификатор учётной записи.
type JwtCustomClaim struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenClaims - входные данные для выпуска токена.
// Если Subject пуст, используется Usuario.
type TokenClaims struct {
	Subject string
	Usuario string
	UserID  string
}

type JWTService interface {
	IssueToken(claims TokenClaims, ttl ...time.Duration) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
}

type jwtService struct {
	secretKey      []byte
	method         jwt.SigningMethod
	accessTokenExp time.Duration
	logger         *zap.Logger
	now            func() time.Time
}

func NewJWTService(secretKey, algorithm string, accessTokenExp time.Duration, logger *zap.Logger) (JWTService, error) {
	if secretKey == "" {
		return nil, apperrors.ErrSigningKeyMissing
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("algoritmo %q não suportado: %w", algorithm, apperrors.ErrInvalidSigningMethod)
	}
	return &jwtService{
		secretKey:      []byte(secretKey),
		method:         method,
		accessTokenExp: accessTokenExp,
		logger:         logger,
		now:            time.Now,
	}, nil
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) IssueToken(claims TokenClaims, ttl ...time.Duration) (string, error) {
	subject := claims.Subject
	if subject == "" {
		subject = claims.Usuario
	}
	if subject == "" {
		return "", apperrors.ErrTokenSubjectRequired
	}

	exp := s.accessTokenExp
	if len(ttl) > 0 && ttl[0] > 0 {
		exp = ttl[0]
	}

	now := s.now()
	token := jwt.NewWithClaims(s.method, &JwtCustomClaim{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	})

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}), jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		s.logger.Debug("Falha ao validar token", zap.Error(err))
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	// Повторная проверка срока действия по часам сервера.
	if claims.ExpiresAt == nil || !claims.ExpiresAt.Time.After(s.now()) {
		return nil, apperrors.ErrTokenExpired
	}

	if claims.Subject == "" || claims.UserID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
