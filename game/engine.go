// Package game implémente les règles du jeu de capture de colonnes :
// plateau, prises, scores, amélioration différée et adversaire heuristique.
package game

import (
	"fmt"
	"time"
)

// Clock fournit l'heure courante à l'Engine.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapte une fonction en Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Engine possède l'état d'une partie et en est le seul écrivain.
// Il n'est pas synchronisé : un appelant concurrent doit sérialiser
// Capture, TickOpponent, AdvanceEffect et Reset.
type Engine struct {
	state GameState
	rules Rules
	gen   *Generator
	clock Clock
}

// NewEngine crée un moteur et démarre une partie.
func NewEngine(rules Rules, gen *Generator, clock Clock) *Engine {
	if gen == nil {
		gen = NewGenerator(time.Now().UnixNano())
	}
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	e := &Engine{rules: rules.normalized(), gen: gen, clock: clock}
	e.Reset()
	return e
}

// Rules retourne les paramètres de la partie.
func (e *Engine) Rules() Rules { return e.rules }

// State retourne une copie de l'état courant.
func (e *Engine) State() GameState { return e.state }

// Reset réinitialise entièrement la partie et annule tout délai en cours.
func (e *Engine) Reset() {
	version := e.state.Version
	e.state = GameState{
		Board:   e.gen.Board(false),
		Current: PlayerA,
		Mode:    e.rules.Mode,
		Version: version + 1,
	}
}

// SetBoard remplace le plateau (parties scénarisées, tests).
func (e *Engine) SetBoard(b Board) {
	e.state.Board = b
	e.state.Version++
}

// Capture fait prendre la colonne col au joueur courant.
// Elle retourne false, sans rien modifier, si la prise est illégale.
// GameOver n'est pas vérifié ici : l'appelant doit refuser la prise une fois
// la partie terminée.
func (e *Engine) Capture(col int) bool {
	return e.CaptureErr(col) == nil
}

// CaptureErr est Capture avec la raison du refus.
func (e *Engine) CaptureErr(col int) error {
	s := &e.state
	if col < 0 || col >= BoardSize {
		return fmt.Errorf("capture %d: %w", col, ErrColumnRange)
	}
	mover := s.Current
	if !s.CanCapture(mover, col) {
		return fmt.Errorf("capture %d by %s: %w", col, mover, ErrOwnColumn)
	}

	// Score du contenu avant la prise.
	ScoreColumn(s, col, mover)

	if s.Columns[col] == Unclaimed {
		s.Captured++
	}
	s.Columns[col] = OwnershipOf(mover)

	s.Board.SetColumn(col, e.gen.Column(s.UpgradeArmed))

	now := e.clock.Now()
	if s.Unclaimed() == ArmAtUnclaimed && !s.UpgradeArmed {
		s.UpgradeArmed = true
		s.Effect.Arm(now)
	}

	s.Moves++
	s.Version++

	if s.Captured == BoardSize {
		s.GameOver = true
		return nil
	}

	s.Current = mover.Other()
	if e.rules.HasOpponent() && s.Current == e.rules.Opponent {
		s.PendingOpponent = true
		s.OpponentArmedAt = now
	}
	return nil
}

// AdvanceEffect fait progresser l'amélioration différée. Retourne true si
// l'état a changé.
func (e *Engine) AdvanceEffect(now time.Time) bool {
	s := &e.state
	before := s.Effect.Stage
	s.Effect.Advance(now, e.rules.WaitDelay, e.rules.DarkenDelay, &s.Board)
	if s.Effect.Stage != before {
		s.Version++
		return true
	}
	return false
}

// EffectElapsed retourne le temps écoulé dans l'étape d'effet courante.
func (e *Engine) EffectElapsed(now time.Time) time.Duration {
	return e.state.Effect.Elapsed(now)
}

// EffectRemaining retourne le temps restant avant la fin de l'étape
// courante, pour un compte à rebours côté affichage.
func (e *Engine) EffectRemaining(now time.Time) time.Duration {
	var total time.Duration
	switch e.state.Effect.Stage {
	case EffectWaiting:
		total = e.rules.WaitDelay
	case EffectDarkening:
		total = e.rules.DarkenDelay
	default:
		return 0
	}
	if left := total - e.state.Effect.Elapsed(now); left > 0 {
		return left
	}
	return 0
}

// Winner retourne le vainqueur d'après les scores courants.
func (e *Engine) Winner() Player {
	return Winner(e.state.ScoreA, e.state.ScoreB)
}

// ScoreDrift compare les scores incrémentaux à un recalcul complet depuis le
// plateau. Un écart non nul est attendu après des reprises : seul le score
// incrémental fait foi, l'écart n'est jamais corrigé.
func (e *Engine) ScoreDrift() (driftA, driftB int) {
	a, b := RecomputeScores(&e.state)
	return e.state.ScoreA - a, e.state.ScoreB - b
}
