// Package simulator plays bot-only sessions in parallel and reports how
// each seat fared.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int // independent sessions
	Hands    int // hand limit per session
	Workers  int // sessions run at once; 0 uses GOMAXPROCS

	Game game.Config
	Bots []bot.Spec // one per seat, the last one repeats

	Logger *log.Logger
}

// SessionResult is the outcome of one session.
type SessionResult struct {
	Seed        int64
	HandsPlayed int
	FinalChips  []int
	Seats       []statistics.Statistics
}

// SeatReport aggregates one seat over every session.
type SeatReport struct {
	Seat  int
	Name  string
	Bot   bot.Spec
	Stats statistics.Statistics
}

// Report is the result of a simulation run.
type Report struct {
	Sessions   []SessionResult
	Seats      []SeatReport
	TotalHands int
}

// Simulator runs bot-only sessions.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Sessions <= 0 {
		config.Sessions = 1
	}
	return &Simulator{config: config}
}

// Run plays every session and aggregates the results. Session seeds are
// drawn from the game seed, so a run with a fixed seed is reproducible.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	if cfg.Hands <= 0 {
		return nil, fmt.Errorf("%w: hands must be positive, got %d", game.ErrInvalidConfiguration, cfg.Hands)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		_, seed = randutil.NewTimeSeeded()
	}
	seeds := randutil.New(seed)
	results := make([]SessionResult, cfg.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range results {
		sessionSeed := seeds.Int64()
		g.Go(func() error {
			result, err := s.playSession(ctx, i, sessionSeed)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i+1, sessionSeed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.aggregate(results), nil
}

func (s *Simulator) playSession(ctx context.Context, index int, seed int64) (SessionResult, error) {
	cfg := s.config.Game
	cfg.Seed = seed
	logger := s.config.Logger.With("session", index+1)

	table, err := game.NewTable(cfg,
		game.WithAgents(bot.Factory(0, s.config.Bots, randutil.New(seed+1), logger)),
		game.WithLogger(logger),
	)
	if err != nil {
		return SessionResult{}, err
	}

	trackers := make([]*statistics.Tracker, cfg.PlayerCount)
	for seat := range trackers {
		trackers[seat] = statistics.NewTracker(seat, cfg.BigBlind, nil)
		table.Subscribe(trackers[seat])
	}

	expected := cfg.PlayerCount * cfg.StartingChips
	played := 0
	for played < s.config.Hands {
		if err := ctx.Err(); err != nil {
			return SessionResult{}, err
		}
		if _, err := table.DealNewHand(); err != nil {
			if errors.Is(err, game.ErrNotEnoughPlayers) {
				break
			}
			return SessionResult{}, err
		}
		state, err := table.RunBots()
		if err != nil {
			return SessionResult{}, err
		}
		played++
		if state.Status != game.Finished {
			return SessionResult{}, fmt.Errorf("hand %d stalled on %s", state.HandNumber, state.Phase)
		}
		if total := table.TotalChips(); total != expected {
			return SessionResult{}, fmt.Errorf("chip conservation violated after hand %d: have %d, want %d", state.HandNumber, total, expected)
		}
	}

	result := SessionResult{Seed: seed, HandsPlayed: played}
	for _, p := range table.Players() {
		result.FinalChips = append(result.FinalChips, p.Chips)
	}
	for _, tr := range trackers {
		stats := tr.Statistics()
		if err := stats.Validate(); err != nil {
			return SessionResult{}, fmt.Errorf("statistics validation failed: %w", err)
		}
		result.Seats = append(result.Seats, stats)
	}
	logger.Debug("Session finished", "hands", played, "chips", result.FinalChips)
	return result, nil
}

func (s *Simulator) aggregate(results []SessionResult) *Report {
	cfg := s.config.Game
	names := cfg.Names()
	report := &Report{Sessions: results}
	for seat := 0; seat < cfg.PlayerCount; seat++ {
		spec := bot.Spec{Kind: bot.KindPolicy}
		if n := len(s.config.Bots); n > 0 {
			spec = s.config.Bots[min(seat, n-1)]
		}
		report.Seats = append(report.Seats, SeatReport{Seat: seat, Name: names[seat], Bot: spec})
	}
	for _, r := range results {
		report.TotalHands += r.HandsPlayed
		for seat, stats := range r.Seats {
			report.Seats[seat].Stats.Merge(stats)
		}
	}
	return report
}
