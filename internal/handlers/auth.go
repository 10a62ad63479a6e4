package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crateloop/steamshelf/internal/model"
)

const actorKey = "actorID"

func Register(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		user, err := authService.Register(params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, user)
	}
}

func Login(authService AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LoginParams{}
		if err := c.Bind(params); err != nil {
			return err
		}
		token, user, err := authService.Login(params)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	}
}

// Authenticate resolves the bearer token into the acting user for every
// request behind it.
func Authenticate(authService AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			actor, err := authService.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actor(c echo.Context) model.UserID {
	if id, ok := c.Get(actorKey).(model.UserID); ok {
		return id
	}
	return ""
}
