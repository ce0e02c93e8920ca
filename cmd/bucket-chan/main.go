package main

import (
	"bucket-chan/commands"
	"bucket-chan/contract"
	"bucket-chan/domain"
	"bucket-chan/infrastructure/websocket"
	"bucket-chan/internal"
	"bucket-chan/maps"
	"bucket-chan/moderation"
	"bucket-chan/repositories"
	"bucket-chan/runtime"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// room is the single chat room the bot lives in.
const room = domain.RoomID("103582791429594873")

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the bot and blocks in the reconnect loop until a signal arrives
// or the service rejects the credentials.
func run(args []string) (int, error) {
	// 1. Credentials & configuration
	if len(args) != 2 {
		return exitConfig, fmt.Errorf("usage: bucket-chan <username> <secret>")
	}
	credentials, err := domain.NewCredentials(args[0], args[1])
	if err != nil {
		return exitConfig, err
	}

	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Commands
	db, err := repositories.OpenInMemory()
	if err != nil {
		return exitRuntime, fmt.Errorf("map storage opening failed: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	mapRepository, err := repositories.NewMapRepository(db, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = mapRepository.Close()
	}()

	registry := commands.NewRegistry()
	if err := maps.NewCatalog(mapRepository, log).Register(registry); err != nil {
		return exitRuntime, fmt.Errorf("command registration failed: %w", err)
	}
	printCommands(os.Stdout, registry)

	filter, err := newFilter(config, log)
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	// 3. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	internal.StartDebugServer(ctx, config.DebugPort,
		internal.NewInspectHandler(db, repositories.MapPrefix, repositories.MapRow, processStats(log)), log)

	// 4. Connection loop, one fresh transport per session
	sup := runtime.NewSupervisor(log, func(id uuid.UUID) contract.ISession {
		transport := websocket.NewTransport(config.GatewayURL, config.DialTimeout, log)
		return runtime.NewSession(id, log, transport, registry, filter, runtime.SessionConfig{
			Room:          room,
			Credentials:   credentials,
			IdleThreshold: config.IdleThreshold,
			PollInterval:  config.PollInterval,
		})
	}, config.BackoffInterval)

	if err := sup.Run(ctx); err != nil {
		return exitRuntime, err
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}

// newFilter returns nil when no word is censored.
func newFilter(config internal.Config, log *slog.Logger) (contract.TextFilter, error) {
	words := config.CensoredWordList()
	if len(words) == 0 {
		return nil, nil
	}
	char, err := internal.CharacterRune(config.CensorCharacter)
	if err != nil {
		return nil, err
	}
	return moderation.NewModerator(words, char, log)
}

func processStats(log *slog.Logger) internal.StatsProvider {
	return func() map[string]any {
		stats, err := runtime.SelfStats()
		if err != nil {
			log.Debug("Process stats unavailable", "error", err)
			return map[string]any{}
		}
		return map[string]any{
			"pid":         stats.PID,
			"rss_bytes":   stats.RSSBytes,
			"cpu_percent": stats.CPUPercent,
			"goroutines":  stats.Goroutines,
		}
	}
}
