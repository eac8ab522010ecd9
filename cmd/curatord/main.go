// Command curatord is the long-running watch daemon: it organizes files into
// the target directory as they appear in the source directory.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"curator/internal/config"
	"curator/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	watcher, sink, err := bootstrap(cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed", logging.Error(err))
		return
	}
	defer sink.Close()

	if err := watcher.Start(ctx); err != nil {
		logger.Error("start watcher", logging.Error(err))
		return
	}

	<-ctx.Done()
	if err := watcher.Stop(); err != nil {
		logger.Warn("stop watcher", logging.Error(err))
	}
	logger.Info("curatord shutting down")
}
