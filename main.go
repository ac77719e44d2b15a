// Package main schooldesk API.
//
// @title           Schooldesk API
// @version         1.0
// @description     Role-scoped staff dashboards (librarian, counselor, admin) for a school management system.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"schooldesk/app/echoServer"
	adminctrl "schooldesk/app/echoServer/controller/admin"
	counselorctrl "schooldesk/app/echoServer/controller/counselor"
	librarianctrl "schooldesk/app/echoServer/controller/librarian"
	"schooldesk/app/echoServer/validation"
	"schooldesk/config"
	bookrepo "schooldesk/repository/book"
	counselrepo "schooldesk/repository/counseling"
	issuerepo "schooldesk/repository/issue"
	notifyrepo "schooldesk/repository/notify"
	settingsrepo "schooldesk/repository/settings"
	userrepo "schooldesk/repository/user"
	adminsvc "schooldesk/service/admin"
	counselingsvc "schooldesk/service/counseling"
	librarysvc "schooldesk/service/library"
	"schooldesk/util/database"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db)
	ir := issuerepo.New(db)
	cr := counselrepo.New(db)
	ur := userrepo.New(db)
	sr := settingsrepo.New(db)

	var nr notifyrepo.Repo = notifyrepo.NewDisabled()
	if cfg.NotifyWebhookURL != "" {
		nr = notifyrepo.NewHTTP(cfg.NotifyWebhookURL, cfg.NotifyWebhookSecret)
	}

	// services
	ls := librarysvc.New(ir, br, sr, cfg.SnapshotLimit)
	cs := counselingsvc.New(cr, nr, log, cfg.SnapshotLimit)
	as := adminsvc.New(ur, br, sr)
	sw := librarysvc.NewSweeper(ir)

	// controllers
	v := validator.New()
	librarianC := &librarianctrl.Controller{Svc: ls, Log: log}
	counselorC := &counselorctrl.Controller{Svc: cs, Log: log}
	adminC := &adminctrl.Controller{Svc: as, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Librarian: librarianC,
		Counselor: counselorC,
		Admin:     adminC,

		JWTSecret: cfg.JWTSecret,
	})

	// overdue sweep: run once at startup, then on the configured interval
	go func() {
		sweep := func() {
			n, err := sw.SweepOverdue(ctx)
			if err != nil {
				log.Error("overdue sweep failed", "err", err)
				return
			}
			if n > 0 {
				log.Info("overdue sweep", "marked", n)
			}
		}
		sweep()
		t := time.NewTicker(cfg.OverdueSweepInterval)
		defer t.Stop()
		for range t.C {
			sweep()
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + port))
}
