package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"coinprices/internal/aggregate"
	"coinprices/internal/config"
	"coinprices/internal/httpx"
	"coinprices/internal/launcher"
	"coinprices/internal/logger"
	"coinprices/internal/provider/coinbase"
	"coinprices/internal/symbol"
)

func main() {
	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "coinprices: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "coinprices: %v\n", err)
		os.Exit(1)
	}
}

// run fetches every supported symbol, keeps those whose code contains the
// optional query argument and writes launcher items to stdout.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flagArgs, rest := splitArgs(args)
	fs := flag.NewFlagSet("coinprices", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("CONFIG_FILE"), "path to config.yaml (optional)")
	if err := fs.Parse(flagArgs); err != nil {
		return err
	}
	var query string
	if len(rest) > 0 {
		query = launcher.NormalizeQuery(rest[0])
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	httpClient := httpx.New(time.Duration(cfg.Coinbase.RequestTimeoutSec) * time.Second)
	client := coinbase.NewClient(
		coinbase.WithHTTPClient(httpClient),
		coinbase.WithEndpoint(cfg.Coinbase.Endpoint),
		coinbase.WithLogger(log),
	)

	quotes, err := aggregate.Collect(ctx, client, symbol.All(), log)
	if err != nil {
		log.Error("collecting quotes", zap.Error(err))
		return err
	}
	aggregate.Sort(quotes)

	quotes = launcher.Filter(quotes, query)
	log.Debug("writing items", zap.String("query", query), zap.Int("items", len(quotes)))
	return launcher.Write(stdout, launcher.Items(quotes, cfg.Coinbase.LinkBase))
}

// splitArgs peels leading -config flags off args. Everything after them is
// the query, even when it starts with a dash.
func splitArgs(args []string) (flags, rest []string) {
	for len(args) > 0 {
		a := args[0]
		switch {
		case a == "-config" || a == "--config":
			if len(args) < 2 {
				return append(flags, a), nil
			}
			flags, args = append(flags, a, args[1]), args[2:]
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			flags, args = append(flags, a), args[1:]
		case a == "--":
			return flags, args[1:]
		default:
			return flags, args
		}
	}
	return flags, nil
}
