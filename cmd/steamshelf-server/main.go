package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/catalogstore"
	"github.com/crateloop/steamshelf/internal/handlers"
	"github.com/crateloop/steamshelf/internal/service/account"
	"github.com/crateloop/steamshelf/internal/service/audit"
	"github.com/crateloop/steamshelf/internal/service/auth"
	"github.com/crateloop/steamshelf/internal/service/library"
	"github.com/crateloop/steamshelf/internal/service/refresh"
	"github.com/crateloop/steamshelf/internal/service/resolver"
	"github.com/crateloop/steamshelf/internal/steam"
)

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	store, err := catalogstore.New(config)
	if err != nil {
		log.Fatalf("opening catalog store: %+v", err)
	}
	defer store.Close()

	steamClient := steam.New(config)
	recorder := audit.NewRecorder(store)

	authService := auth.New(config, store)
	libraryService := library.New(store, recorder)
	accountService := account.New(store,
		resolver.New(steamClient),
		refresh.New(steamClient, store),
		recorder)

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("steamshelf"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(config.Server.Origins, ","),
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.POST("/auth/register", handlers.Register(authService))
	server.POST("/auth/login", handlers.Login(authService))

	api := server.Group("", handlers.Authenticate(authService))
	api.POST("/libraries", handlers.CreateLibrary(libraryService))
	api.GET("/libraries", handlers.ListLibraries(libraryService))
	api.GET("/libraries/:libraryID", handlers.GetLibrary(libraryService))
	api.PUT("/libraries/:libraryID", handlers.UpdateLibrary(libraryService))
	api.DELETE("/libraries/:libraryID", handlers.DeleteLibrary(libraryService))
	api.GET("/libraries/:libraryID/members", handlers.ListMembers(libraryService))
	api.PUT("/libraries/:libraryID/members", handlers.SetMemberRole(libraryService))
	api.DELETE("/libraries/:libraryID/members/:userID", handlers.RemoveMember(libraryService))
	api.GET("/libraries/:libraryID/audit", handlers.LibraryAudit(libraryService))
	api.POST("/libraries/:libraryID/accounts", handlers.AddAccount(accountService))
	api.GET("/libraries/:libraryID/accounts", handlers.ListAccounts(accountService))
	api.GET("/libraries/:libraryID/accounts/:accountID", handlers.GetAccount(accountService))
	api.PUT("/libraries/:libraryID/accounts/:accountID", handlers.UpdateAccount(accountService))
	api.DELETE("/libraries/:libraryID/accounts/:accountID", handlers.DeleteAccount(accountService))
	api.POST("/libraries/:libraryID/accounts/:accountID/refresh", handlers.RefreshAccount(accountService))
	api.POST("/libraries/:libraryID/refresh", handlers.RefreshLibrary(accountService))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
