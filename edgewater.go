//go:build !cli
// +build !cli

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iasolb/EdgewaterInventoryManager/api"
	_ "github.com/iasolb/EdgewaterInventoryManager/api/graphql"
	_ "github.com/iasolb/EdgewaterInventoryManager/api/records"
	_ "github.com/iasolb/EdgewaterInventoryManager/api/system"
	_ "github.com/iasolb/EdgewaterInventoryManager/api/views"
	"github.com/iasolb/EdgewaterInventoryManager/config"
	"github.com/iasolb/EdgewaterInventoryManager/core/auth"
	"github.com/iasolb/EdgewaterInventoryManager/core/metrics"
	"github.com/iasolb/EdgewaterInventoryManager/cron"
	_ "github.com/iasolb/EdgewaterInventoryManager/custom"
	"github.com/iasolb/EdgewaterInventoryManager/internal/app"
)

func main() {
	config.LoadEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()
	log := a.Log

	sqlDB, err := a.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	log.Info("database connection successful", "driver", a.DB.Dialector.Name())

	if err := a.Subscribe(ctx); err != nil {
		log.Warn("invalidation subscribe failed", "error", err)
	}
	cron.RegisterBuiltins(cron.Deps{Sessions: a.Sessions, SessionIdle: a.Config.SessionIdle, Log: log})
	sched, err := cron.Start(ctx, log)
	if err != nil {
		log.Error("cron start failed", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			metrics.HTTPRequests.
				WithLabelValues(c.Path(), c.Request().Method, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	})
	e.Use(auth.Middleware(a.Config.AuthType, a.Farm))

	deps := &api.Deps{DB: a.DB, Farm: a.Farm, Sessions: a.Sessions, Log: log}
	api.ApplyRoutes(e, deps)
	api.ApplyModules(e.Group("/api"), deps)

	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "doom", "larry3d", "puffy"}
	figure.NewFigure("Edgewater", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdown)
	}()

	log.Info("server running", "port", a.Config.Port, "auth", a.Config.AuthType)
	if err := e.Start(":" + a.Config.Port); err != nil && ctx.Err() == nil {
		log.Error("server stopped", "error", err)
	}
}
