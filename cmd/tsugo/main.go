package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsugo/server/internal/config"
	"github.com/tsugo/server/internal/core/event"
	coresys "github.com/tsugo/server/internal/core/system"
	"github.com/tsugo/server/internal/data"
	"github.com/tsugo/server/internal/handler"
	gonet "github.com/tsugo/server/internal/net"
	"github.com/tsugo/server/internal/net/packet"
	"github.com/tsugo/server/internal/persist"
	"github.com/tsugo/server/internal/scripting"
	"github.com/tsugo/server/internal/system"
	"github.com/tsugo/server/internal/task"
	"github.com/tsugo/server/internal/travel"
	"github.com/tsugo/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/server.toml", "path to server config")
	flag.Parse()
	if p := os.Getenv("TSUGO_CONFIG"); p != "" && *cfgPath == "config/server.toml" {
		*cfgPath = p
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting", zap.String("server", cfg.Server.Name))

	// Database is optional: without a DSN the server runs with bans and
	// the connection journal disabled.
	var banRepo *persist.BanRepo
	if cfg.Database.DSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		banRepo = persist.NewBanRepo(db)
		log.Info("database ready")
	} else {
		log.Warn("no database configured, running without bans")
	}

	// World definitions.
	hubs, err := data.LoadHubTable(cfg.Server.HubsFile)
	if err != nil {
		return fmt.Errorf("load hubs: %w", err)
	}
	zones, err := data.LoadZoneTable(cfg.Server.ZonesFile)
	if err != nil {
		return fmt.Errorf("load zones: %w", err)
	}

	bus := event.NewBus()
	state := world.NewState(log, bus)
	if err := data.BuildWorld(state, hubs, zones, data.TimerDefaults{
		AfkDelay:   cfg.Timers.AFKDelay,
		LurkLength: cfg.Timers.LurkLength,
	}); err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	log.Info("world loaded",
		zap.Int("hubs", len(hubs)), zap.Int("zones", len(zones)))

	luaEngine, err := scripting.NewEngine(cfg.Server.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	tasks := task.NewManager(log)
	travelSvc := &travel.Service{
		State:              state,
		Tasks:              tasks,
		Bus:                bus,
		Log:                log,
		Hooks:              luaEngine,
		BlackoutBackground: cfg.Server.BlackoutBackground,
	}

	pktReg := packet.NewRegistry(log)
	deps := &handler.Deps{
		Config: cfg,
		Log:    log,
		State:  state,
		Travel: travelSvc,
		Tasks:  tasks,
		Bus:    bus,
		Bans:   banRepo,
	}
	handler.RegisterAll(pktReg, deps)

	netServer, err := gonet.NewServer(cfg.Network, log)
	if err != nil {
		return fmt.Errorf("net server: %w", err)
	}
	go netServer.AcceptLoop()

	store := gonet.NewSessionStore()
	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(netServer, pktReg, store, cfg.Network.MaxPacketsPerTick, log))
	runner.Register(system.NewEventSystem(bus))
	runner.Register(system.NewTaskSystem(tasks))
	runner.Register(system.NewOutputSystem(store))
	runner.Register(system.NewCleanupSystem(netServer, store, state, tasks, log))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Network.TickRate)
	defer ticker.Stop()

	log.Info("listening",
		zap.String("addr", netServer.Addr()),
		zap.Duration("tick", cfg.Network.TickRate))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Network.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			netServer.Close()
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
