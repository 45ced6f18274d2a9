package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanflow-backend/internal/adapter/http"
	"loanflow-backend/internal/adapter/middleware"
	"loanflow-backend/internal/adapter/repository/mysql"
	"loanflow-backend/internal/audit"
	"loanflow-backend/internal/config"
	"loanflow-backend/internal/infrastructure/cache"
	"loanflow-backend/internal/infrastructure/db"
	"loanflow-backend/internal/notify"
	"loanflow-backend/internal/usecase/workflow"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	reviewers := mysql.NewReviewerRepository(gdb)
	ref := mysql.NewRefDataRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	recorder := audit.NewLogRecorder(log.New(os.Stdout, "", 0))
	dispatcher := notify.NewLogDispatcher(log.New(os.Stdout, "", 0))

	uc := workflow.NewUsecase(unit, reviewers, ref, recorder, dispatcher, workflow.Config{
		LoginBaseURL:      cfg.LoginBaseURL,
		InternalRecipient: cfg.NotifyInternalTo,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	h := httpadp.NewHandler()
	e.GET("/health", h.Health)
	httpadp.NewWorkflowHandler(uc).Register(e)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
