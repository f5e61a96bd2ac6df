package game

import "time"

// ArmAtUnclaimed est le nombre de colonnes libres qui déclenche l'amélioration.
const ArmAtUnclaimed = 3

// Délais par défaut, en secondes d'horloge murale.
const (
	DefaultWaitDelay     = 500 * time.Millisecond
	DefaultDarkenDelay   = 2 * time.Second
	DefaultOpponentDelay = 1 * time.Second
)

// Rules regroupe les paramètres d'une partie.
type Rules struct {
	Mode          Mode
	Opponent      Player        // camp joué par l'heuristique en mode solo
	WaitDelay     time.Duration // Waiting -> Darkening
	DarkenDelay   time.Duration // Darkening -> amélioration appliquée
	OpponentDelay time.Duration // "réflexion" de l'heuristique
}

// DefaultRules reproduit le jeu d'origine : A humain contre B heuristique.
func DefaultRules() Rules {
	return Rules{
		Mode:          ModeSolo,
		Opponent:      PlayerB,
		WaitDelay:     DefaultWaitDelay,
		DarkenDelay:   DefaultDarkenDelay,
		OpponentDelay: DefaultOpponentDelay,
	}
}

// HasOpponent indique si un camp est piloté par l'heuristique.
func (r Rules) HasOpponent() bool {
	return r.Mode == ModeSolo && (r.Opponent == PlayerA || r.Opponent == PlayerB)
}

func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.Mode == "" {
		r.Mode = d.Mode
	}
	if r.Opponent != PlayerA && r.Opponent != PlayerB {
		r.Opponent = d.Opponent
	}
	if r.WaitDelay <= 0 {
		r.WaitDelay = d.WaitDelay
	}
	if r.DarkenDelay <= 0 {
		r.DarkenDelay = d.DarkenDelay
	}
	if r.OpponentDelay <= 0 {
		r.OpponentDelay = d.OpponentDelay
	}
	return r
}
