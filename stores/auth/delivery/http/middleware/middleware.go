package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/gosale/base/ctx"
	"github.com/x-xyz/gosale/base/delivery"
	"github.com/x-xyz/gosale/domain"
)

type AuthMiddleware struct {
	auth           domain.AuthUseCase
	adminAddresses []string
}

func New(auth domain.AuthUseCase, adminAddresses []string) *AuthMiddleware {
	return &AuthMiddleware{
		auth:           auth,
		adminAddresses: adminAddresses,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			address := c.Get("address").(domain.Address)

			for _, admin := range m.adminAddresses {
				if domain.Address(admin).Equals(address) {
					return next(c)
				}
			}

			return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	ads, err := m.auth.ParseToken(ctx, key)
	if err != nil {
		ctx.WithField("err", err).Error("auth.ParseToken failed")
		return false, err
	}
	c.Set("address", domain.Address(ads))
	return true, nil
}
