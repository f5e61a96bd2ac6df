package party

import (
	"time"

	"colonnes/game"
)

// Snapshot est la vue d'une partie envoyée aux clients.
type Snapshot struct {
	ID                string         `json:"id"`
	Code              string         `json:"code"`
	State             game.GameState `json:"state"`
	Winner            string         `json:"winner,omitempty"` // rempli en fin de partie
	Unclaimed         int            `json:"unclaimed"`
	EffectElapsedMs   int64          `json:"effectElapsedMs"`
	EffectRemainingMs int64          `json:"effectRemainingMs"`
	Humans            []string       `json:"humans"`
}

func (p *Party) snapshotLocked(now time.Time) Snapshot {
	st := p.engine.State()
	snap := Snapshot{
		ID:                p.ID.String(),
		Code:              p.Code,
		State:             st,
		Unclaimed:         st.Unclaimed(),
		EffectElapsedMs:   p.engine.EffectElapsed(now).Milliseconds(),
		EffectRemainingMs: p.engine.EffectRemaining(now).Milliseconds(),
	}
	if st.GameOver {
		snap.Winner = p.engine.Winner().String()
	}
	for _, h := range p.humans() {
		snap.Humans = append(snap.Humans, h.String())
	}
	return snap
}
