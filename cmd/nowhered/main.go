// Command nowhered is the OSINT investigation daemon: it builds the actor
// runtime (rate limiter, persistence actor), supervises the search-poll and
// LLM-normalize loops, and serves until a signal or internal shutdown fires.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/btcsuite/btclog"

	"github.com/roasbeef/nowhere/internal/actorcore"
	"github.com/roasbeef/nowhere/internal/actorsys"
	"github.com/roasbeef/nowhere/internal/builder"
	"github.com/roasbeef/nowhere/internal/config"
	"github.com/roasbeef/nowhere/internal/daemon"
	internallog "github.com/roasbeef/nowhere/internal/log"
	"github.com/roasbeef/nowhere/internal/llm"
	"github.com/roasbeef/nowhere/internal/persistence"
	"github.com/roasbeef/nowhere/internal/persistence/sqlite"
	"github.com/roasbeef/nowhere/internal/ratelimit"
	"github.com/roasbeef/nowhere/internal/supervisor"
	"github.com/roasbeef/nowhere/internal/twitter"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to the YAML config file (search path auto-discovery if empty)")
		dbPath     = flag.String("db", "", "Override the configured SQLite database file path")
		logDir     = flag.String("log-dir", "", "Override the configured log directory")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if *dbPath != "" {
		cfg.Persistence.DatabaseFile = *dbPath
	}
	if *logDir != "" {
		cfg.Log.Dir = *logDir
	}

	rootLogger, closeLog, err := internallog.Bootstrap(internallog.Options{
		Level:       parseLevel(cfg.Log.Level),
		FileLogging: cfg.Log.Dir != "",
		Rotator: internallog.RotatorConfig{
			Dir:       cfg.Log.Dir,
			MaxFiles:  cfg.Log.Rotation.MaxFiles,
			MaxSizeMB: cfg.Log.Rotation.MaxSizeMB,
		},
	})
	if err != nil {
		log.Fatalf("bootstrapping logging: %v", err)
	}
	defer closeLog()

	wireLoggers(rootLogger)

	store, err := sqlite.Open(sqlite.Config{DatabaseFile: cfg.Persistence.DatabaseFile})
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer store.Close()

	b := builder.New()

	limiterReserved := builder.Reserve[ratelimit.Msg](b, "ratelimit", cfg.Actor.DefaultMailboxSize)
	storeReserved := builder.Reserve[persistence.Msg](b, "persistence", cfg.Actor.DefaultMailboxSize)

	limiterHandle := builder.StartReserved[ratelimit.Msg](b, limiterReserved, ratelimit.NewLimiter())
	storeHandle := builder.StartReserved[persistence.Msg](b, storeReserved, persistence.NewStoreActor(store))

	limiterRef := ratelimit.NewRef(limiterHandle.Addr())
	storeRef := persistence.NewRef(storeHandle.Addr())

	ctx := context.Background()
	for key, rl := range cfg.RateLimits {
		if err := limiterRef.Upsert(ctx, ratelimit.Key(key), rl.QPS, rl.Burst); err != nil {
			log.Fatalf("provisioning rate-limit bucket %q: %v", key, err)
		}
	}

	llmClient := llm.NewHTTPClient(llm.HTTPConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	twitterClient := twitter.NewHTTPClient(twitter.HTTPConfig{
		BaseURL:     cfg.Twitter.BaseURL,
		BearerToken: cfg.Twitter.BearerToken,
		MaxResults:  cfg.Twitter.MaxResults,
		Timeout:     cfg.Twitter.Timeout,
	})

	rawQueue := make(chan daemon.RawJob, 64)
	shutdownHandle := b.ShutdownHandle()
	shutdown := shutdownHandle.Subscribe()

	searchLoop := daemon.NewSearchPollLoop(daemon.SearchPollConfig{
		Store: storeRef, Limiter: limiterRef, Client: twitterClient, Out: rawQueue,
	})
	normalizeLoop := daemon.NewLLMNormalizeLoop(daemon.LLMNormalizeConfig{
		Store: storeRef, Limiter: limiterRef, Client: llmClient, In: rawQueue,
	})

	go supervisor.Supervise(ctx, shutdown, searchLoop)
	go supervisor.Supervise(ctx, shutdown, normalizeLoop)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	external := make(chan struct{})
	go func() {
		sig := <-sigCh
		rootLogger.Infof("received %v, initiating graceful shutdown", sig)
		close(external)

		sig = <-sigCh
		rootLogger.Warnf("received %v again, forcing immediate exit", sig)
		os.Exit(1)
	}()

	if err := b.RunUntilSignal(ctx, external); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	loader := config.NewLoader()
	if path != "" {
		return loader.LoadFile(path)
	}
	return loader.AutoLoad()
}

func parseLevel(level config.LogLevel) btclog.Level {
	switch level {
	case config.LogLevelTrace:
		return btclog.LevelTrace
	case config.LogLevelDebug:
		return btclog.LevelDebug
	case config.LogLevelWarn:
		return btclog.LevelWarn
	case config.LogLevelError:
		return btclog.LevelError
	default:
		return btclog.LevelInfo
	}
}

func wireLoggers(root btclog.Logger) {
	actorcore.UseLogger(root.WithPrefix("ACTR"))
	actorsys.UseLogger(root.WithPrefix("ASYS"))
	builder.UseLogger(root.WithPrefix("BLDR"))
	ratelimit.UseLogger(root.WithPrefix("RTLM"))
	persistence.UseLogger(root.WithPrefix("STOR"))
	sqlite.UseLogger(root.WithPrefix("SQLT"))
	supervisor.UseLogger(root.WithPrefix("SPVR"))
	daemon.UseLogger(root.WithPrefix("DAEM"))
}
