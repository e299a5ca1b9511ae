package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/gameid"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/tui"
)

// PlayCmd runs the interactive table. Flags override the config file.
type PlayCmd struct {
	Config    string         `short:"c" default:"holdem.hcl" type:"path" help:"HCL config file (missing file uses defaults)"`
	Players   int            `short:"p" help:"Players at the table, including you (2-8)"`
	Chips     int            `help:"Starting chips per player"`
	Seed      int64          `help:"Deterministic RNG seed (0 for random)"`
	ThinkTime *time.Duration `help:"How long bots think before acting"`
	Debug     bool           `help:"Enable debug logging"`
	LogFile   string         `help:"Log file (the terminal is used by the UI)"`
	NoColor   bool           `help:"Disable colours"`
	Thinking  bool           `help:"Show bot reasoning in the log"`
	History   string         `type:"path" help:"Save played hands to this PHHS file"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := newLogger(logFile, cfg.LogLevel())
	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	gameCfg := cfg.Game()
	if gameCfg.Seed == 0 {
		_, gameCfg.Seed = randutil.NewTimeSeeded()
	}
	logger.Info("Starting session", "players", gameCfg.PlayerCount, "chips", gameCfg.StartingChips,
		"blinds", fmt.Sprintf("%d/%d", gameCfg.SmallBlind, gameCfg.BigBlind), "seed", gameCfg.Seed)

	table, err := newTable(gameCfg, cfg.BotSpecs(), logger)
	if err != nil {
		return err
	}

	var recorder *phh.Recorder
	if path := cfg.UI.HistoryFile; path != "" {
		recorder = phh.NewRecorder(gameid.Generate(), nil)
		table.Subscribe(recorder)
		table.Subscribe(recorder.SaveHandler(path, func(err error) {
			logger.Error("Failed to save hand history", "file", path, "error", err)
		}))
		logger.Info("Recording hand history", "file", path)
	}

	model := tui.NewModel(table, logger,
		tui.WithThinkTime(cfg.ThinkTime()),
		tui.WithBotThinking(cfg.UI.ShowBotThinking),
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}

	for _, p := range table.Players() {
		logger.Info("Final stack", "player", p.Name, "chips", p.Chips)
	}
	if recorder != nil {
		if err := recorder.Save(cfg.UI.HistoryFile); err != nil {
			return fmt.Errorf("failed to save hand history: %w", err)
		}
	}
	return nil
}

// newTable seats one human and bots from specs. The deck is seeded from
// cfg.Seed, so a reset replays the same deck sequence; bots draw from a
// separate stream.
func newTable(cfg game.Config, specs []bot.Spec, logger *log.Logger) (*game.Table, error) {
	return game.NewTable(cfg,
		game.WithAgents(bot.Factory(1, specs, randutil.New(cfg.Seed+1), logger)),
		game.WithLogger(logger),
	)
}

// apply layers the command line flags over the file settings.
func (c *PlayCmd) apply(cfg *config.Config) error {
	if c.Players != 0 {
		cfg.Session.PlayerCount = c.Players
	}
	if c.Chips != 0 {
		cfg.Session.StartingChips = c.Chips
	}
	if c.Seed != 0 {
		cfg.Session.Seed = c.Seed
	}
	if c.ThinkTime != nil {
		cfg.Pacing.ThinkTime = c.ThinkTime.String()
	}
	if c.Debug {
		cfg.UI.LogLevel = log.DebugLevel.String()
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.NoColor {
		cfg.UI.NoColor = true
	}
	if c.Thinking {
		cfg.UI.ShowBotThinking = true
	}
	if c.History != "" {
		cfg.UI.HistoryFile = c.History
	}
	return cfg.Validate()
}
