package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"judgecore/internal/httpapi"
	"judgecore/internal/judge/compiler"
	"judgecore/internal/judge/config"
	"judgecore/internal/judge/pool"
	"judgecore/internal/judge/runner"
	"judgecore/internal/judge/stage"
	"judgecore/pkg/utils/logger"
)

const defaultConfigPath = "config.toml"
const defaultShutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to recipe/process config file")
	listen := flag.String("listen", "", "Override the config file's listen address")
	flag.Parse()

	registry, doc, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	doc = doc.Defaults()
	if *listen != "" {
		doc.Listen = *listen
	}

	if err := logger.Init(logger.Config{
		Level:   doc.LogLevel,
		Format:  "console",
		Service: "judged",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, dir := range []string{doc.StagingRoot, doc.TestcaseRoot} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error(context.Background(), "prepare directory failed", zap.String("dir", dir), zap.Error(err))
			os.Exit(1)
		}
	}

	workerPool := pool.New(doc.Workers)
	workerPool.Resume()

	eng := &httpapi.Engine{
		Pool:         workerPool,
		Registry:     registry,
		Stager:       stage.NewStager(doc.StagingRoot),
		Compiler:     compiler.New(registry),
		Runner:       runner.New(registry),
		TestcaseRoot: doc.TestcaseRoot,
	}

	httpServer := httpapi.NewServer(httpapi.ServerConfig{
		Addr:         doc.Listen,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, eng)

	listener, err := net.Listen("tcp", doc.Listen)
	if err != nil {
		logger.Error(context.Background(), "init http listener failed", zap.Error(err))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "judge http server started", zap.String("addr", doc.Listen))
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "http server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpapi.Shutdown(ctx, httpServer); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}

	workerPool.Stop(false)
	workerPool.Join()
}
