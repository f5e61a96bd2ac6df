package game

import (
	"strings"
	"time"
)

// BoardSize est la taille N du plateau carré (N lignes, N colonnes).
const BoardSize = 6

// CellValue est le contenu d'une case.
type CellValue int8

const (
	Blank    CellValue = 0
	PlusOne  CellValue = 1
	MinusOne CellValue = -1
	PlusTwo  CellValue = 2 // n'apparaît qu'après l'amélioration du plateau
)

func (v CellValue) String() string {
	switch v {
	case PlusOne:
		return "+1"
	case MinusOne:
		return "-1"
	case PlusTwo:
		return "+2"
	default:
		return "."
	}
}

// Player identifie un camp. PlayerTie n'est qu'un résultat, jamais un tour.
type Player int

const (
	PlayerTie Player = 0
	PlayerA   Player = 1
	PlayerB   Player = 2
)

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	default:
		return "tie"
	}
}

// Other retourne le camp adverse.
func (p Player) Other() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// ParsePlayer accepte "A"/"B" (casse indifférente).
func ParsePlayer(s string) (Player, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return PlayerA, true
	case "B":
		return PlayerB, true
	}
	return PlayerTie, false
}

// Ownership est l'état d'une colonne.
type Ownership int

const (
	Unclaimed   Ownership = 0
	CapturedByA Ownership = 1
	CapturedByB Ownership = 2
)

// OwnershipOf retourne la valeur de possession correspondant au camp p.
func OwnershipOf(p Player) Ownership {
	switch p {
	case PlayerA:
		return CapturedByA
	case PlayerB:
		return CapturedByB
	}
	return Unclaimed
}

func (o Ownership) String() string {
	switch o {
	case CapturedByA:
		return "A"
	case CapturedByB:
		return "B"
	default:
		return "-"
	}
}

// Board est indexé [ligne][colonne].
type Board [BoardSize][BoardSize]CellValue

// Column retourne une copie des cases de la colonne col.
func (b Board) Column(col int) [BoardSize]CellValue {
	var out [BoardSize]CellValue
	for r := 0; r < BoardSize; r++ {
		out[r] = b[r][col]
	}
	return out
}

// SetColumn remplace les cases de la colonne col.
func (b *Board) SetColumn(col int, cells [BoardSize]CellValue) {
	for r := 0; r < BoardSize; r++ {
		b[r][col] = cells[r]
	}
}

// String donne un rendu texte du plateau, utile dans les logs.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b[r][c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Mode indique si le camp heuristique est joué par l'ordinateur.
type Mode string

const (
	ModeSolo  Mode = "solo"  // humain (A) contre l'heuristique (B)
	ModeMulti Mode = "multi" // deux humains
)

// ParseMode retourne le mode correspondant, ou false.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSolo:
		return ModeSolo, true
	case ModeMulti:
		return ModeMulti, true
	}
	return "", false
}

// GameState est l'agrégat complet d'une partie. Il appartient à l'Engine
// qui le fait évoluer ; State() en renvoie une copie.
type GameState struct {
	Board           Board                `json:"board"`
	Columns         [BoardSize]Ownership `json:"columns"`
	Current         Player               `json:"current"`
	ScoreA          int                  `json:"scoreA"`
	ScoreB          int                  `json:"scoreB"`
	GameOver        bool                 `json:"gameOver"`
	Captured        int                  `json:"captured"` // colonnes sorties au moins une fois de Unclaimed
	PendingOpponent bool                 `json:"pendingOpponent"`
	OpponentArmedAt time.Time            `json:"opponentArmedAt"`
	UpgradeArmed    bool                 `json:"upgradeArmed"`
	Effect          EffectTimer          `json:"effect"`
	Mode            Mode                 `json:"mode"`
	Moves           int                  `json:"moves"`
	Version         int                  `json:"version"`
}

// Unclaimed compte les colonnes encore libres.
func (s *GameState) Unclaimed() int {
	n := 0
	for _, o := range s.Columns {
		if o == Unclaimed {
			n++
		}
	}
	return n
}

// CanCapture indique si p peut (re)prendre la colonne col : une colonne ne
// peut être prise que par le camp qui ne la possède pas.
func (s *GameState) CanCapture(p Player, col int) bool {
	if col < 0 || col >= BoardSize {
		return false
	}
	return s.Columns[col] != OwnershipOf(p)
}

// Score retourne le score du camp p.
func (s *GameState) Score(p Player) int {
	if p == PlayerA {
		return s.ScoreA
	}
	return s.ScoreB
}
