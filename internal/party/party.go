// Package party héberge les parties jouées en réseau : chaque partie possède
// son moteur, un verrou qui sérialise toutes les mutations et une boucle de
// contrôle cadencée qui fait jouer l'adversaire et avancer l'amélioration.
package party

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"colonnes/game"
	"colonnes/internal/input"
)

// Party est une partie identifiée par un code court.
type Party struct {
	ID        uuid.UUID
	Code      string
	CreatedAt time.Time

	mu          sync.Mutex
	engine      *game.Engine
	clock       game.Clock
	layout      input.Layout
	subscribers map[chan Snapshot]struct{}
	lastVersion int
	closed      bool
	cancel      context.CancelFunc
	done        chan struct{}
	logger      *zap.Logger
}

func newParty(code string, engine *game.Engine, clock game.Clock, logger *zap.Logger) *Party {
	id := uuid.New()
	return &Party{
		ID:          id,
		Code:        code,
		CreatedAt:   clock.Now(),
		engine:      engine,
		clock:       clock,
		layout:      input.DefaultLayout(),
		subscribers: make(map[chan Snapshot]struct{}),
		lastVersion: engine.State().Version,
		done:        make(chan struct{}),
		logger:      logger.With(zap.String("party", code), zap.String("party_id", id.String())),
	}
}

// humans retourne les camps joués par des personnes.
func (p *Party) humans() []game.Player {
	r := p.engine.Rules()
	if r.HasOpponent() {
		return []game.Player{r.Opponent.Other()}
	}
	return []game.Player{game.PlayerA, game.PlayerB}
}

func (p *Party) isHuman(pl game.Player) bool {
	for _, h := range p.humans() {
		if h == pl {
			return true
		}
	}
	return false
}

// Mode retourne le mode de jeu de la partie.
func (p *Party) Mode() game.Mode {
	return p.engine.Rules().Mode
}

// Snapshot retourne l'état courant.
func (p *Party) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked(p.clock.Now())
}

// Capture fait jouer la colonne col au camp pl.
func (p *Party) Capture(pl game.Player, col int) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkTurnLocked(pl); err != nil {
		return p.snapshotLocked(p.clock.Now()), err
	}
	return p.captureLocked(pl, col)
}

// Click convertit un clic dans une fenêtre width×height en prise de colonne.
func (p *Party) Click(pl game.Player, x, y, width, height float64) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.checkTurnLocked(pl); err != nil {
		return p.snapshotLocked(p.clock.Now()), err
	}
	col, ok := p.layout.ColumnAt(x, y, width, height)
	if !ok {
		return p.snapshotLocked(p.clock.Now()), fmt.Errorf("click (%.0f,%.0f) in %.0fx%.0f: %w", x, y, width, height, ErrOutsideBoard)
	}
	return p.captureLocked(pl, col)
}

func (p *Party) checkTurnLocked(pl game.Player) error {
	if pl != game.PlayerA && pl != game.PlayerB {
		return ErrBadPlayer
	}
	st := p.engine.State()
	if st.GameOver {
		return ErrGameOver
	}
	if !p.isHuman(pl) || !input.Allowed(st, pl) {
		return fmt.Errorf("player %s: %w", pl, ErrNotYourTurn)
	}
	return nil
}

func (p *Party) captureLocked(pl game.Player, col int) (Snapshot, error) {
	now := p.clock.Now()
	before := p.engine.State()
	if err := p.engine.CaptureErr(col); err != nil {
		return p.snapshotLocked(now), fmt.Errorf("%w: %w", ErrIllegalCapture, err)
	}
	after := p.engine.State()
	p.logger.Info("column captured",
		zap.String("player", pl.String()),
		zap.Int("column", col),
		zap.Int("score_a", after.ScoreA),
		zap.Int("score_b", after.ScoreB),
	)
	p.logTransitions(before, after)
	return p.publishLocked(now), nil
}

// Reset relance la partie sans condition.
func (p *Party) Reset() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.engine.Reset()
	p.logger.Info("party reset")
	return p.publishLocked(p.clock.Now())
}

// Tick fait jouer l'adversaire puis avance l'amélioration. Retourne true si
// l'état a changé.
func (p *Party) Tick(now time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	before := p.engine.State()
	if !p.engine.Tick(now) {
		return false
	}
	after := p.engine.State()
	if after.Moves != before.Moves {
		p.logger.Debug("opponent moved", zap.Int("moves", after.Moves))
	}
	p.logTransitions(before, after)
	p.publishLocked(now)
	return true
}

func (p *Party) logTransitions(before, after game.GameState) {
	if !before.UpgradeArmed && after.UpgradeArmed {
		p.logger.Info("board upgrade armed", zap.Int("unclaimed", after.Unclaimed()))
	}
	if before.Effect.Stage == game.EffectDarkening && after.Effect.Stage == game.EffectIdle {
		p.logger.Info("board upgrade applied")
	}
	if !before.GameOver && after.GameOver {
		p.logger.Info("game over",
			zap.String("winner", game.Winner(after.ScoreA, after.ScoreB).String()),
			zap.Int("score_a", after.ScoreA),
			zap.Int("score_b", after.ScoreB),
		)
		if da, db := p.engine.ScoreDrift(); da != 0 || db != 0 {
			p.logger.Debug("incremental score differs from board recompute",
				zap.Int("drift_a", da), zap.Int("drift_b", db))
		}
	}
}

// Subscribe retourne un canal recevant chaque nouvel état, et la fonction
// pour se désabonner. L'état courant est envoyé immédiatement.
func (p *Party) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 16)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	p.subscribers[ch] = struct{}{}
	ch <- p.snapshotLocked(p.clock.Now())
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if _, ok := p.subscribers[ch]; ok {
				delete(p.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Subscribers retourne le nombre de clients connectés.
func (p *Party) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subscribers)
}

func (p *Party) publishLocked(now time.Time) Snapshot {
	snap := p.snapshotLocked(now)
	if snap.State.Version != p.lastVersion {
		p.lastVersion = snap.State.Version
		p.broadcastLocked(snap)
	}
	return snap
}

func (p *Party) broadcastLocked(snap Snapshot) {
	for ch := range p.subscribers {
		select {
		case ch <- snap:
		default:
			// client trop lent : il recevra le prochain état
		}
	}
}

// run est la boucle de contrôle de la partie.
func (p *Party) run(ctx context.Context, every time.Duration) {
	defer close(p.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(p.clock.Now())
		}
	}
}

// close arrête la boucle et déconnecte les abonnés.
func (p *Party) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for ch := range p.subscribers {
		delete(p.subscribers, ch)
		close(ch)
	}
	cancel := p.cancel
	p.mu.Unlock()
	if cancel != nil {
		cancel()
		<-p.done
	}
}
