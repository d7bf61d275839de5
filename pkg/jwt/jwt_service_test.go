package jwt

import (
	"testing"

	"leftunder/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTokenRoundTrip(t *testing.T) {
	t.Setenv("SERVICE_JWT_SECRET", "test-secret")
	svc := NewJWTService()

	token := svc.GenerateServiceToken("sweeper")
	require.NotEmpty(t, token)

	caller, err := svc.ValidateServiceToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sweeper", caller)
}

func TestValidateServiceTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SERVICE_JWT_SECRET", "test-secret")
	svc := NewJWTService()

	_, err := svc.ValidateServiceToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidateServiceTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("SERVICE_JWT_SECRET", "secret-a")
	token := NewJWTService().GenerateServiceToken("bot")

	t.Setenv("SERVICE_JWT_SECRET", "secret-b")
	_, err := NewJWTService().ValidateServiceToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
