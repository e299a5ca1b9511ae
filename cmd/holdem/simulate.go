package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// SimulateCmd plays bot-only sessions and prints per-seat results.
type SimulateCmd struct {
	Sessions       int      `default:"100" help:"Independent sessions to play"`
	Hands          int      `default:"200" help:"Hand limit per session"`
	Workers        int      `help:"Sessions played at once (default GOMAXPROCS)"`
	Seed           int64    `help:"RNG seed (0 for random)"`
	Players        int      `short:"p" default:"4" help:"Seats at the table (2-8)"`
	Chips          int      `default:"1000" help:"Starting chips per seat"`
	SmallBlind     int      `default:"5" help:"Small blind"`
	BigBlind       int      `default:"10" help:"Big blind"`
	Bots           []string `default:"policy:balanced" help:"Bot per seat as kind[:personality]; the last one fills the remaining seats"`
	CompareKickers bool     `help:"Break category ties at showdown with kickers"`
	Debug          bool     `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	specs := make([]bot.Spec, 0, len(c.Bots))
	for _, s := range c.Bots {
		spec, err := bot.ParseSpec(s)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Sessions: c.Sessions,
		Hands:    c.Hands,
		Workers:  c.Workers,
		Game: game.Config{
			PlayerCount:    c.Players,
			StartingChips:  c.Chips,
			SmallBlind:     c.SmallBlind,
			BigBlind:       c.BigBlind,
			CompareKickers: c.CompareKickers,
			Seed:           c.Seed,
		},
		Bots:   specs,
		Logger: logger,
	})

	start := time.Now()
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	printReport(os.Stdout, report, time.Since(start))
	return nil
}

func printReport(w io.Writer, report *simulator.Report, elapsed time.Duration) {
	fmt.Fprintln(w, titleStyle.Render(" ♠ ♥ Simulation Results ♦ ♣ "))
	fmt.Fprintf(w, "\n%d sessions, %d hands in %s\n\n", len(report.Sessions), report.TotalHands, elapsed.Round(time.Millisecond))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Seat", "Name", "Bot", "Hands", "Won", "Win %", "Net", "bb/hand", "95% CI", "Showdown", "Biggest pot").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, seat := range report.Seats {
		s := seat.Stats
		low, high := s.ConfidenceInterval95()
		t.Row(
			strconv.Itoa(seat.Seat+1),
			seat.Name,
			seat.Bot.String(),
			strconv.Itoa(s.Hands),
			strconv.Itoa(s.HandsWon),
			fmt.Sprintf("%.1f", s.WinRate()*100),
			fmt.Sprintf("%+d", s.TotalWinnings),
			fmt.Sprintf("%+.3f", s.Mean()),
			fmt.Sprintf("[%+.3f, %+.3f]", low, high),
			fmt.Sprintf("%d/%d", s.ShowdownWins, s.ShowdownWins+s.NonShowdownWins),
			strconv.Itoa(s.MaxPotChips),
		)
	}
	fmt.Fprintln(w, t)
}
