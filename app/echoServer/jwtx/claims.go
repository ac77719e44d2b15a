package jwtx

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"schooldesk/model"
)

// ExtractIdentity lifts the user id and role out of the verified token so
// handlers work with plain context values. echo-jwt stores the parsed
// *jwt.Token under "user"; the claims live inside it.
func ExtractIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tok, ok := c.Get("user").(*jwt.Token)
		if !ok || tok == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		role, _ := claims["role"].(string)
		if role == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		c.Set("user_id", int64(sub))
		c.Set("role", role)
		return next(c)
	}
}

func UserID(c echo.Context) int64 {
	id, _ := c.Get("user_id").(int64)
	return id
}

func RoleOf(c echo.Context) model.Role {
	role, _ := c.Get("role").(string)
	return model.Role(role)
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := RoleOf(c)
			for _, r := range roles {
				if got == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
	}
}
