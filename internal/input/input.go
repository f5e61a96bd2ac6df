// Package input traduit les gestes de l'interface (pointeur, touches) en
// appels au moteur de jeu.
package input

import (
	"strings"

	"colonnes/game"
)

// Layout décrit où le plateau est dessiné, en coordonnées normalisées
// (-1..1, y vers le haut).
type Layout struct {
	OriginX float64 // bord gauche
	OriginY float64 // bord haut
	Extent  float64 // largeur et hauteur du plateau
	Columns int
}

// DefaultLayout reprend la disposition du plateau d'origine.
func DefaultLayout() Layout {
	return Layout{OriginX: -0.8, OriginY: 0.8, Extent: 1.6, Columns: game.BoardSize}
}

// CellSize retourne la taille d'une case.
func (l Layout) CellSize() float64 {
	return l.Extent / float64(l.Columns)
}

// ColumnAt convertit une position de pointeur (pixels, origine en haut à
// gauche) dans une fenêtre width×height en indice de colonne. Le booléen est
// faux si le pointeur est hors du plateau.
func (l Layout) ColumnAt(px, py, width, height float64) (int, bool) {
	if width <= 0 || height <= 0 || l.Columns <= 0 {
		return -1, false
	}
	nx := 2*px/width - 1
	ny := 1 - 2*py/height
	if nx < l.OriginX || nx > l.OriginX+l.Extent {
		return -1, false
	}
	if ny > l.OriginY || ny < l.OriginY-l.Extent {
		return -1, false
	}
	col := int((nx - l.OriginX) / l.CellSize())
	if col == l.Columns {
		// bord droit inclus
		col = l.Columns - 1
	}
	if col < 0 || col >= l.Columns {
		return -1, false
	}
	return col, true
}

// Allowed indique si le camp human peut jouer maintenant.
func Allowed(s game.GameState, human game.Player) bool {
	return !s.GameOver && s.Current == human
}

// Action est l'effet d'une touche.
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionQuit
)

// KeyReset relance une partie, sans condition.
const (
	KeyReset = "r"
	KeyQuit  = "escape"
)

// ActionForKey retourne l'action associée à une touche.
func ActionForKey(key string) Action {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case KeyReset:
		return ActionReset
	case KeyQuit, "esc":
		return ActionQuit
	}
	return ActionNone
}
