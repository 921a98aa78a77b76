package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type authApi struct {
	svc  *user.Service
	conf *core.Config
}

func registerAuthAPI(g *echo.Group, svc *user.Service, conf *core.Config) {
	api := authApi{svc: svc, conf: conf}

	g.POST("/auth/login", api.login)
}

// Claims are the JWT claims embedded in the access token.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GenerateToken signs a fresh access token for usr.
func GenerateToken(usr user.User, conf *core.Config) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(conf.Server.JWTExpirationDelta)),
		},
		Name:  usr.Name,
		Email: usr.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.SecretKey))
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data user.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "authenticating user")
	}

	token, err := GenerateToken(usr, api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"data": echo.Map{
			"user":  usr,
			"token": token,
		},
	})
}
