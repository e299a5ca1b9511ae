// Package config loads session settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/pacer"
)

// DefaultFile is read when no config path is given.
const DefaultFile = "holdem.hcl"

// Config is the complete configuration file.
type Config struct {
	Session *SessionSettings `hcl:"session,block"`
	Bots    []BotConfig      `hcl:"bot,block"`
	Pacing  *PacingSettings  `hcl:"pacing,block"`
	UI      *UISettings      `hcl:"ui,block"`

	// LogLevel is shorthand for ui.log_level; the ui block wins when both
	// are set.
	LogLevel string `hcl:"log_level,optional"`
}

// SessionSettings describes the table.
type SessionSettings struct {
	PlayerCount    int      `hcl:"player_count,optional"`
	StartingChips  int      `hcl:"starting_chips,optional"`
	SmallBlind     int      `hcl:"small_blind,optional"`
	BigBlind       int      `hcl:"big_blind,optional"`
	PlayerNames    []string `hcl:"player_names,optional"`
	Seed           int64    `hcl:"seed,optional"`
	CompareKickers bool     `hcl:"compare_kickers,optional"`
}

// BotConfig describes one bot seat. Bots fill the seats after the human in
// the order they are declared.
type BotConfig struct {
	Name        string `hcl:"name,label"`
	Strategy    string `hcl:"strategy,optional"`
	Personality string `hcl:"personality,optional"`
}

// PacingSettings controls how quickly bots act in interactive play.
type PacingSettings struct {
	ThinkTime string `hcl:"think_time,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel        string `hcl:"log_level,optional"`
	LogFile         string `hcl:"log_file,optional"`
	NoColor         bool   `hcl:"no_color,optional"`
	ShowBotThinking bool   `hcl:"show_bot_thinking,optional"`
	HistoryFile     string `hcl:"history_file,optional"` // PHHS export, empty to disable
}

// Default returns the built-in configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration source; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Session == nil {
		c.Session = &SessionSettings{}
	}
	s := c.Session
	if s.PlayerCount == 0 {
		s.PlayerCount = max(game.DefaultPlayerCount, len(c.Bots)+1)
	}
	if s.StartingChips == 0 {
		s.StartingChips = game.DefaultStartingChips
	}
	if s.SmallBlind == 0 && s.BigBlind == 0 {
		s.SmallBlind = game.DefaultSmallBlind
		s.BigBlind = game.DefaultBigBlind
	}

	if c.Pacing == nil {
		c.Pacing = &PacingSettings{}
	}
	if c.Pacing.ThinkTime == "" {
		c.Pacing.ThinkTime = pacer.DefaultThinkTime.String()
	}

	if c.UI == nil {
		c.UI = &UISettings{}
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = c.LogLevel
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = "info"
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = "holdem.log"
	}

	for i := range c.Bots {
		if c.Bots[i].Strategy == "" {
			c.Bots[i].Strategy = string(bot.KindPolicy)
		}
		if c.Bots[i].Personality == "" {
			c.Bots[i].Personality = bot.Balanced.String()
		}
	}
}

// Validate checks every setting and returns the first problem. Session
// problems wrap game.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := c.Game().Validate(); err != nil {
		return err
	}
	if len(c.Bots) >= c.Session.PlayerCount {
		return fmt.Errorf("%w: %d bots leave no seat for the player", game.ErrInvalidConfiguration, len(c.Bots))
	}
	for _, b := range c.Bots {
		if _, err := bot.ParseKind(b.Strategy); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
		if _, err := bot.ParsePersonality(b.Personality); err != nil {
			return fmt.Errorf("bot %s: %w", b.Name, err)
		}
	}
	if d, err := time.ParseDuration(c.Pacing.ThinkTime); err != nil || d < 0 {
		return fmt.Errorf("invalid think_time %q", c.Pacing.ThinkTime)
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.UI.LogLevel, err)
	}
	return nil
}

// Game returns the session settings as a game config. Declared bot names
// fill the seats after the human.
func (c *Config) Game() game.Config {
	s := c.Session
	names := s.PlayerNames
	if len(names) == 0 && len(c.Bots) > 0 {
		names = make([]string, 1, len(c.Bots)+1)
		for _, b := range c.Bots {
			names = append(names, b.Name)
		}
	}
	return game.Config{
		PlayerCount:    s.PlayerCount,
		StartingChips:  s.StartingChips,
		SmallBlind:     s.SmallBlind,
		BigBlind:       s.BigBlind,
		PlayerNames:    names,
		CompareKickers: s.CompareKickers,
		Seed:           s.Seed,
	}
}

// BotSpecs returns the bot seats in declaration order.
func (c *Config) BotSpecs() []bot.Spec {
	specs := make([]bot.Spec, 0, len(c.Bots))
	for _, b := range c.Bots {
		kind, _ := bot.ParseKind(b.Strategy)
		personality, _ := bot.ParsePersonality(b.Personality)
		specs = append(specs, bot.Spec{Kind: kind, Personality: personality})
	}
	return specs
}

// ThinkTime returns the parsed bot think time.
func (c *Config) ThinkTime() time.Duration {
	d, err := time.ParseDuration(c.Pacing.ThinkTime)
	if err != nil {
		return pacer.DefaultThinkTime
	}
	return d
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
