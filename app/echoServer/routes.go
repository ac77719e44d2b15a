package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	adminctrl "schooldesk/app/echoServer/controller/admin"
	counselorctrl "schooldesk/app/echoServer/controller/counselor"
	librarianctrl "schooldesk/app/echoServer/controller/librarian"
	"schooldesk/app/echoServer/jwtx"
	"schooldesk/model"
)

type C struct {
	Librarian *librarianctrl.Controller
	Counselor *counselorctrl.Controller
	Admin     *adminctrl.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")
	// default TokenLookup ("header:Authorization:Bearer ") strips the scheme
	v1.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
	}))
	v1.Use(jwtx.ExtractIdentity)

	// Librarian dashboard; admins may step in.
	lib := v1.Group("/librarian", jwtx.RequireRole(model.RoleLibrarian, model.RoleAdmin))
	lib.GET("/dashboard", c.Librarian.Dashboard)
	lib.POST("/issues/:id/approve", c.Librarian.Approve)
	lib.POST("/issues/:id/return", c.Librarian.Return)

	// Counselor queue; scoped to the acting counselor's own requests.
	coun := v1.Group("/counselor", jwtx.RequireRole(model.RoleCounselor))
	coun.GET("/dashboard", c.Counselor.Dashboard)
	coun.POST("/requests/:id/accept", c.Counselor.Accept)
	coun.POST("/requests/:id/complete", c.Counselor.Complete)

	// Admin settings dashboard.
	adm := v1.Group("/admin", jwtx.RequireRole(model.RoleAdmin))
	adm.GET("/dashboard", c.Admin.Dashboard)
	adm.PUT("/settings", c.Admin.UpdateSettings)
	adm.POST("/books", c.Admin.CreateBook)
	adm.POST("/books/:id/copies", c.Admin.AddCopies)
}
