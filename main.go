package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mbonnet/phagegrid/config"
	"github.com/mbonnet/phagegrid/sim"
	"github.com/mbonnet/phagegrid/stream"
	"github.com/mbonnet/phagegrid/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 100, "Stop after N ticks (0 = unlimited)")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	serve := flag.Bool("serve", false, "Broadcast per-tick snapshots over websocket")
	addr := flag.String("addr", ":8080", "Listen address for -serve")
	tickDelay := flag.Duration("tick-delay", 0, "Pause between ticks (useful with -serve)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	state, err := sim.New(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to initialize simulation", "error", err)
		os.Exit(1)
	}

	// Use config stats window if not overridden by CLI
	windowTicks := cfg.Telemetry.WindowTicks
	if *statsWindow > 0 {
		windowTicks = *statsWindow
	}
	collector := telemetry.NewCollector(windowTicks)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to initialize output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	var hub *stream.Hub
	if *serve {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.HandleWS)
		go func() {
			slog.Info("serving snapshots", "addr", *addr)
			if err := http.ListenAndServe(*addr, mux); err != nil {
				slog.Error("snapshot server stopped", "error", err)
			}
		}()
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"grid_width", cfg.Grid.Width,
		"grid_height", cfg.Grid.Height,
		"bacteria", cfg.Population.Bacteria,
		"viruses", cfg.Population.Viruses,
		"groups", cfg.Population.Groups,
		"max_ticks", *maxTicks,
	)

	for *maxTicks == 0 || state.Tick < *maxTicks {
		ev := state.Step()
		collector.Record(ev)

		if hub != nil {
			hub.Broadcast(state.Snapshot())
		}

		if collector.ShouldFlush(state.Tick) {
			stats := collector.Flush(state.Tick, len(state.Bacteria), len(state.Virions),
				state.Biomasses(), state.Field.Total())
			stats.LogStats()
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("telemetry write failed", "error", err)
			}
		}

		if *tickDelay > 0 {
			time.Sleep(*tickDelay)
		}
	}

	if err := output.WriteSeries(state.Times, state.BacteriaCounts, state.VirionCounts); err != nil {
		slog.Error("series write failed", "error", err)
	}

	slog.Info("simulation finished",
		"ticks", state.Tick,
		"bacteria", len(state.Bacteria),
		"virions", len(state.Virions),
	)
}
