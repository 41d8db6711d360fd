package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"hourline.app/server/common/logger"
	"hourline.app/server/core/config"
	"hourline.app/server/core/db"
)

const usage = `usage: migrate <command> [args]

commands:
  up          apply all pending migrations
  up-to N     apply migrations up to version N
  down        roll back the latest migration
  redo        roll back and re-apply the latest migration
  status      print the status of every migration
  version     print the current schema version
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	command := flag.Arg(0)
	if err := database.Migrate(ctx, command, flag.Args()[1:]...); err != nil {
		slog.ErrorContext(ctx, "migration failed", "command", command, "error", err)
		database.Close()
		os.Exit(1)
	}
	slog.InfoContext(ctx, "migration finished", "command", command)
}
