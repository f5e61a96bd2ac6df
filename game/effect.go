package game

import "time"

// EffectStage est l'étape de la machine d'amélioration différée.
type EffectStage int

const (
	EffectIdle      EffectStage = iota
	EffectWaiting               // attente courte avant l'assombrissement
	EffectDarkening             // assombrissement, l'amélioration tombe à la fin
)

func (s EffectStage) String() string {
	switch s {
	case EffectWaiting:
		return "waiting"
	case EffectDarkening:
		return "darkening"
	default:
		return "idle"
	}
}

// MarshalText permet d'exposer l'étape sous forme lisible en JSON.
func (s EffectStage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText est l'inverse de MarshalText.
func (s *EffectStage) UnmarshalText(b []byte) error {
	switch string(b) {
	case "waiting":
		*s = EffectWaiting
	case "darkening":
		*s = EffectDarkening
	default:
		*s = EffectIdle
	}
	return nil
}

// EffectTimer est la machine à deux étapes Idle -> Waiting -> Darkening -> Idle,
// cadencée par l'horloge murale et indépendante des tours.
type EffectTimer struct {
	Stage     EffectStage `json:"stage"`
	StartedAt time.Time   `json:"startedAt"` // début de l'étape en cours
}

// Arm démarre l'attente. Sans effet si la machine n'est pas au repos.
func (t *EffectTimer) Arm(now time.Time) bool {
	if t.Stage != EffectIdle {
		return false
	}
	t.Stage = EffectWaiting
	t.StartedAt = now
	return true
}

// Elapsed retourne le temps passé dans l'étape courante (zéro au repos).
func (t *EffectTimer) Elapsed(now time.Time) time.Duration {
	if t.Stage == EffectIdle {
		return 0
	}
	return now.Sub(t.StartedAt)
}

// Advance fait progresser la machine d'au plus une étape. Elle retourne true
// quand l'amélioration vient d'être appliquée au plateau.
func (t *EffectTimer) Advance(now time.Time, wait, darken time.Duration, b *Board) (applied bool) {
	switch t.Stage {
	case EffectWaiting:
		if t.Elapsed(now) >= wait {
			t.Stage = EffectDarkening
			t.StartedAt = now
		}
	case EffectDarkening:
		if t.Elapsed(now) >= darken {
			UpgradeBoard(b)
			t.Stage = EffectIdle
			t.StartedAt = time.Time{}
			return true
		}
	}
	return false
}
