package service

import (
	"testing"
	"time"

	apperrors "filasling/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWT(t *testing.T, alg string) *jwtService {
	t.Helper()
	svc, err := NewJWTService("test-secret", alg, 24*time.Hour, zap.NewNop())
	require.NoError(t, err)
	return svc.(*jwtService)
}

func TestNewJWTService_Config(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService("", "HS256", time.Hour, zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrSigningKeyMissing)

	_, err = NewJWTService("k", "RS256", time.Hour, zap.NewNop())
	assert.ErrorIs(t, err, apperrors.ErrInvalidSigningMethod)
}

func TestIssueAndValidate(t *testing.T) {
	t.Parallel()
	svc := newTestJWT(t, "HS256")

	tests := []struct {
		name        string
		claims      TokenClaims
		wantSubject string
		wantErr     error
	}{
		{name: "subject", claims: TokenClaims{Subject: "ana@sling.com", UserID: "u-1"}, wantSubject: "ana@sling.com"},
		{name: "usuario fallback", claims: TokenClaims{Usuario: "bia@sling.com", UserID: "u-2"}, wantSubject: "bia@sling.com"},
		{name: "no identity", claims: TokenClaims{UserID: "u-3"}, wantErr: apperrors.ErrTokenSubjectRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.IssueToken(tt.claims)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			claims, err := svc.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, claims.Subject)
			assert.Equal(t, tt.claims.UserID, claims.UserID)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()
	svc := newTestJWT(t, "HS256")

	token, err := svc.IssueToken(TokenClaims{Subject: "ana", UserID: "u-1"}, time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_Rejects(t *testing.T) {
	t.Parallel()
	svc := newTestJWT(t, "HS256")

	other := newTestJWT(t, "HS512")
	foreignAlg, err := other.IssueToken(TokenClaims{Subject: "ana", UserID: "u-1"})
	require.NoError(t, err)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JwtCustomClaim{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ana",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	missingID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JwtCustomClaim{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ana",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"malformed":   "not.a.token",
		"foreign alg": foreignAlg,
		"wrong key":   wrongKey,
		"missing id":  missingID,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		})
	}
}
