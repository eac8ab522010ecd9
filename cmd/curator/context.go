package main

import (
	"log/slog"
	"strings"
	"sync"

	"curator/internal/classify"
	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/oplog"
	"curator/internal/organize"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds a console logger at the configured level. CLI runs log
// to stdout only; the daemon is the one that also writes the log file.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stdout"},
		})
	})
	return c.logger, c.loggerErr
}

// openSink opens the operation journal. Callers close it when the command
// finishes.
func (c *commandContext) openSink() (*oplog.Sink, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return oplog.NewSink(cfg.Paths.OperationLog)
}

// journal records a single already-performed operation, best effort.
func (c *commandContext) journal(operation string, details map[string]string) {
	sink, err := c.openSink()
	if err != nil {
		return
	}
	defer sink.Close()
	sink.Record(operation, details)
}

func (c *commandContext) buildOrganizer(sink *oplog.Sink) (*organize.Organizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	model, err := classify.NewModelFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return organize.New(cfg, model, sink, logger), nil
}
