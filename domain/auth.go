package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/gosale/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUseCase interface {
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, str string) (string, error)
}
