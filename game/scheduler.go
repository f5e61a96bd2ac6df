package game

import "time"

// TickOpponent joue le coup de l'heuristique une fois le délai de
// réflexion écoulé. Le drapeau d'attente est levé quel que soit le résultat.
// Retourne true si l'état a changé.
func (e *Engine) TickOpponent(now time.Time) bool {
	s := &e.state
	if !s.PendingOpponent || s.GameOver {
		return false
	}
	if now.Sub(s.OpponentArmedAt) < e.rules.OpponentDelay {
		return false
	}
	if col := SelectColumn(s, s.Current); col != NoMove {
		e.Capture(col)
	}
	s.PendingOpponent = false
	s.Version++
	return true
}

// Tick enchaîne, dans l'ordre, TickOpponent puis AdvanceEffect.
func (e *Engine) Tick(now time.Time) bool {
	moved := e.TickOpponent(now)
	advanced := e.AdvanceEffect(now)
	return moved || advanced
}
