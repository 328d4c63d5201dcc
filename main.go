package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busdekho/internal/config"
	router "busdekho/internal/http"
	"busdekho/internal/logging"
	"busdekho/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	if err := logging.Init(env.AppEnv); err != nil {
		panic(err)
	}
	defer logging.Close()

	if _, err := intconfig.ConnectDB(env.DB); err != nil {
		logging.Fatal("Error connecting to the database", "error", err, "host", env.DB.Host, "database", env.DB.Name)
	}
	defer intconfig.CloseDB()

	reg := metrics.New(prometheus.DefaultRegisterer)
	r := router.NewRouter(env, router.Deps{Metrics: reg, Gatherer: prometheus.DefaultGatherer})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.Info("server listening", "addr", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("server shutdown failed", "error", err)
		return
	}

	logging.Info("server stopped")
}
