package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/config"
	"github.com/wanderly/travelmarket/internal/events"
	"github.com/wanderly/travelmarket/internal/httpserver"
	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/middleware"
	"github.com/wanderly/travelmarket/internal/oauth"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/search"
	"github.com/wanderly/travelmarket/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(middleware.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var verifier oauth.Verifier
	if cfg.GoogleClientID != "" {
		gv, err := oauth.NewGoogleVerifier(context.Background(), cfg.GoogleClientID)
		if err != nil {
			log.Fatalf("google verifier init error: %v", err)
		}
		verifier = gv
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	r := &repo.GormRepo{DB: db}

	accountSvc := &service.AccountService{Repo: r, Producer: producer}
	cartSvc := &service.CartService{Repo: r}
	userSvc := &service.UserService{Repo: r}
	listingSvc := &service.ListingService{Repo: r}

	searchHTTP := &httpserver.SearchHTTP{Index: search.ListingsIndex}
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		listingSvc.ES = es
		searchHTTP.ES = es
	}

	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:      accountSvc,
			Verifier: verifier,
			Secret:   cfg.JWTSecret,
			TokenTTL: cfg.TokenTTL,
		},
		Cart:     &httpserver.CartHTTP{Svc: cartSvc},
		Users:    &httpserver.UserHTTP{Svc: userSvc},
		Listings: &httpserver.ListingHTTP{Svc: listingSvc},
		Search:   searchHTTP,
		AuthMW:   middleware.NewAuth(cfg.JWTSecret),
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
