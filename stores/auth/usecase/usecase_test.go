package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/domain"
)

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	uc := New("test-secret", time.Hour)

	token, err := uc.SignToken(c, "0xAbCd111111111111111111111111111111111111")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	address, err := uc.ParseToken(c, token)
	require.NoError(t, err)
	require.Equal(t, "0xabcd111111111111111111111111111111111111", address)
}

func TestSignTokenRejectsInvalidAddress(t *testing.T) {
	c := ctx.Background()
	uc := New("test-secret", time.Hour)

	_, err := uc.SignToken(c, "not-an-address")
	require.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	c := ctx.Background()
	uc := New("test-secret", time.Hour)

	_, err := uc.ParseToken(c, "not.a.token")
	require.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	c := ctx.Background()
	signer := New("test-secret", time.Hour)
	verifier := New("other-secret", time.Hour)

	token, err := signer.SignToken(c, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	_, err = verifier.ParseToken(c, token)
	require.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	c := ctx.Background()
	uc := New("test-secret", -time.Hour)

	token, err := uc.SignToken(c, "0x1111111111111111111111111111111111111111")
	require.NoError(t, err)

	_, err = uc.ParseToken(c, token)
	require.Error(t, err)
}
