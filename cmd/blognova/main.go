package main

import (
	"compress/flate"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/api"
	"github.com/KiloProjects/blognova/internal/config"
	"github.com/KiloProjects/blognova/sudoapi"
	"github.com/KiloProjects/blognova/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	confPath = flag.String("config", "./config.toml", "Config path")
)

func main() {
	flag.Parse()
	if err := config.Load(*confPath); err != nil {
		panic(err)
	}

	// save the config for formatting
	if err := config.Save(*confPath); err != nil {
		panic(err)
	}

	slog.SetDefault(slog.New(blognova.GetSlogHandler(config.Common.Debug, os.Stdout)))

	if err := Blognova(); err != nil {
		slog.Error("Could not run server", slog.Any("err", err))
		os.Exit(1)
	}
}

func Blognova() error {
	fmt.Printf("Starting Blognova %s\n", blognova.Version)

	logDir := config.Common.LogDir
	debug := config.Common.Debug

	if debug {
		slog.Warn("Debug mode activated")
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logg := log.New(&lumberjack.Logger{
		Filename: path.Join(logDir, "access.log"),
	}, "", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base, err := sudoapi.InitializeBaseAPI(ctx)
	if err != nil {
		return err
	}
	defer base.Close()

	r := chi.NewRouter()

	r.Use(middleware.Compress(flate.DefaultCompression))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(20 * time.Second))
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logg,
		NoColor: true,
	}))

	r.Mount("/api", api.New(base).Handler())
	r.Mount("/", web.NewWeb(base).Handler())

	// for graceful setup and shutdown
	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen", slog.Any("err", err))
			cancel()
		}
	}()

	slog.Info("Successfully started", slog.String("addr", config.Server.ListenAddr))

	ctx, _ = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()

	slog.Info("Shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutCancel()
	if err := server.Shutdown(shutCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
