package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"sawah/config"
	"sawah/database"
	"sawah/pkg/logging"
	"sawah/pkg/ripeness"
	"sawah/router"

	// Plot + Tuai
	plotCtrlImp "sawah/pkg/plot/controllerImp"
	plotRepoImp "sawah/pkg/plot/repositoryImp"
	plotSvcImp "sawah/pkg/plot/serviceImp"

	// Health
	healthCtrlImp "sawah/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		logging.Log.Warnf("[cfg] %v", err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Ripeness classifier
	windows := ripeness.DefaultWindows()
	if cfg.SeedWindows != "" {
		w, err := ripeness.LoadWindows(cfg.SeedWindows)
		if err != nil {
			logging.Log.Warnf("[tuai] seed windows: %v, using defaults", err)
		} else {
			windows = w
		}
	}
	eval := ripeness.NewEvaluator(
		ripeness.WithWindows(windows),
		ripeness.WithPalette(ripeness.DefaultPalette.WithAmber(cfg.AmberColor)),
		ripeness.WithLocation(cfg.Location()),
	)

	// 4) Repos/Services/Controllers
	pRepo := plotRepoImp.New(db)
	pSvc := plotSvcImp.NewPlotService(pRepo, ripeness.NewRecolorer(eval))
	if pSvc.TuaiActive() {
		// mode restored from the db; recolor for today
		if err := pSvc.Refresh(); err != nil {
			logging.Log.Warnf("[tuai] startup refresh: %v", err)
		}
	}
	pCtrl := plotCtrlImp.New(pSvc)
	tCtrl := plotCtrlImp.NewTuai(pSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, eval)

	// 5) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			logging.Log.WithField("request_id", v.RequestID).
				Debugf("[http] %d %s %s", v.Status, v.URI, v.Latency)
			return nil
		},
	}))
	// Static map front-end, if present
	if _, err := os.Stat("static/index.html"); err == nil {
		e.Static("/static", "static")
		e.File("/", "static/index.html")
	}
	r := router.New(e, pCtrl, tCtrl, hCtrl)

	// 6) Tuai refresh timer
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if cfg.TuaiRefresh > 0 {
		go pSvc.RunRefresher(ctx, cfg.TuaiRefresh)
		logging.Log.Infof("[tuai] refresh every %s while active", cfg.TuaiRefresh)
	}

	// 7) Start
	go func() {
		logging.Log.Infof("listening on :%s", cfg.Port)
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatal(err)
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("shutdown: %v", err)
	}
}
