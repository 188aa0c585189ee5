package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/stores/auth/usecase"
)

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")

	tkn, err := u.SignToken(ctx, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)

	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d", ads)
}

func TestSignTokenRejectsBadAddress(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")

	_, err := u.SignToken(ctx, "not-an-address")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestParseTokenRejectsMalformedToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret")

	for _, tkn := range []string{"", "garbage", "a.b", "bearer stuff"} {
		ads, err := u.ParseToken(ctx, tkn)
		assert.Error(t, err)
		assert.Empty(t, ads)
	}
}

func TestParseTokenRejectsForgedToken(t *testing.T) {
	ctx := ctx.Background()

	tkn, err := usecase.New("other-secret").SignToken(ctx, "0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	assert.NoError(t, err)

	_, err = usecase.New("jwt-secret").ParseToken(ctx, tkn)
	assert.Error(t, err)
}
