// Package main is the entry point for planetgl.
package main

import (
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgl/internal/app"
	"github.com/Faultbox/planetgl/internal/config"
	"github.com/Faultbox/planetgl/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.DumpPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("config written to %s\n", path)
		return
	}

	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== planetgl ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		// Most likely no usable OpenGL 4.1 context. There is nothing to
		// render into, so say so where a user without a terminal sees it.
		logger.Error("failed to start", zap.Error(err))
		dialog.Message("planetgl could not start:\n\n%v", err).Title("planetgl").Error()
		logger.Sync()
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		logger.Error("render loop failed", zap.Error(err))
		a.Close()
		logger.Sync()
		os.Exit(1)
	}
	a.Close()

	logger.Info("closed normally")
}

func initLogger(cfg config.LoggingConfig) error {
	if cfg.LogFile == "" {
		return logger.Init(cfg.Level, "")
	}
	return logger.InitWithFileConfig(cfg.Level, logger.FileConfig{
		Path:       cfg.LogFile,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, true)
}
