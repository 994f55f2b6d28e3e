// ABOUTME: history subcommand: lists saved conversations without starting a session

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nexushealth/nexus-chat/internal/config"
	"github.com/nexushealth/nexus-chat/internal/store"
)

func runHistory(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(setupLogger(cfg.Logging))

	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	printSidebar(ctx, st, os.Stdout)
	return nil
}
