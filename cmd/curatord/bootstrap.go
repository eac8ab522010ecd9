package main

import (
	"log/slog"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/oplog"
	"curator/internal/organize"
)

// bootstrap wires the daemon's moving parts: classification model, journal
// sink, organizer, watcher. The caller owns the returned sink.
func bootstrap(cfg *config.Config, logger *slog.Logger) (*organize.Watcher, *oplog.Sink, error) {
	model, err := classify.NewModelFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	sink, err := oplog.NewSink(cfg.Paths.OperationLog)
	if err != nil {
		return nil, nil, err
	}
	organizer := organize.New(cfg, model, sink, logger)
	return organize.NewWatcher(cfg, organizer, logger), sink, nil
}
