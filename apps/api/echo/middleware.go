package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// corsMiddleware keeps the API wide open: every response carries the CORS
// headers and a preflight OPTIONS request short-circuits with 200 and no
// body, before routing (so unmatched methods still preflight fine).
func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		h := ctx.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, "*")
		h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")

		if ctx.Request().Method == http.MethodOptions {
			return ctx.NoContent(http.StatusOK)
		}
		return next(ctx)
	}
}
