package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blueprint/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("aaaaa-aa", secret, time.Hour)
	require.NoError(t, err)

	got, err := PrincipalFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "aaaaa-aa", got.String())
}

func TestPrincipalFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("aaaaa-aa", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = PrincipalFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestPrincipalFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("aaaaa-aa", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = PrincipalFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestPrincipalFromToken_BadSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("Not A Principal", secret, time.Hour)
	require.NoError(t, err)

	_, err = PrincipalFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestPrincipalFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := PrincipalFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
