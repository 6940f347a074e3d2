// Command printcalc estimates the cost of a 3D print job interactively.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Simplici0/printcalc/internal/config"
	"github.com/Simplici0/printcalc/internal/logging"
	"github.com/Simplici0/printcalc/internal/seed"
	"github.com/Simplici0/printcalc/internal/shell"
	"github.com/Simplici0/printcalc/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "printcalc: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "printcalc: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "printcalc: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	st, err := store.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer st.Close()

	settings, _ := seed.Run(st, cfg.DefaultSettings, logger)

	if _, err := shell.New(in, out, st, logger, cfg.Currency).Run(settings); err != nil {
		return err
	}

	logger.Info("run completed")
	return nil
}
