// Package game implements the Texas Hold'em round state machine and the
// table session that drives it.
//
// RoundState is a value. Every transition (DealNewHand, ApplyAction,
// AdvanceIfComplete) takes a state and returns a new one without touching
// its input, which keeps replays and tests deterministic:
//
//	s, err := game.DealNewHand(players, rules, deck.New(randutil.New(42)), 1)
//	s, err = game.ApplyAction(s, s.CurrentPlayer, game.Call, 0)
//
// Table owns the players and their stacks across hands, guards the current
// RoundState with a mutex, and routes bot seats through an Agent:
//
//	t, err := game.NewTable(cfg, game.WithAgents(factory), game.WithLogger(logger))
//	state, err := t.DealNewHand()
//	state, err = t.PlayerAction(0, game.Raise, 40)
//
// # Hand flow
//
// Seat order is fixed: the first funded seat posts the small blind, the
// next posts the big blind and the small blind acts first preflop. A street
// closes when every player still in the hand has acted and matched the
// table bet (players with no chips left are treated as matched). The pot is
// never split into side pots.
package game
