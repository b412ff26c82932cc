package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/validator"
	"github.com/x-xyz/gosale/domain"
)

type impl struct {
	jwtSecret []byte
	tokenTtl  time.Duration
}

func New(jwtSecret string, tokenTtl time.Duration) domain.AuthUseCase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTtl:  tokenTtl,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	if !validator.IsValidAddress(string(address)) {
		return "", domain.ErrInvalidAddress
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}
	return "", domain.ErrNotAuthorized
}
