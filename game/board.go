package game

import "math/rand"

// Source est la source d'aléa du générateur. *rand.Rand la satisfait.
type Source interface {
	Intn(n int) int
}

// Generator tire le contenu des colonnes.
type Generator struct {
	src Source
}

// NewGenerator construit un générateur reproductible à partir d'une graine.
func NewGenerator(seed int64) *Generator {
	return &Generator{src: rand.New(rand.NewSource(seed))}
}

// NewGeneratorFrom utilise la source fournie (tests, séquences fixes).
func NewGeneratorFrom(src Source) *Generator {
	return &Generator{src: src}
}

// Cell tire une case uniformément parmi {Blank, +1 ou +2, -1}.
func (g *Generator) Cell(upgradeActive bool) CellValue {
	switch g.src.Intn(3) {
	case 1:
		if upgradeActive {
			return PlusTwo
		}
		return PlusOne
	case 2:
		return MinusOne
	default:
		return Blank
	}
}

// Column tire les N cases d'une colonne, indépendamment.
func (g *Generator) Column(upgradeActive bool) [BoardSize]CellValue {
	var out [BoardSize]CellValue
	for i := range out {
		out[i] = g.Cell(upgradeActive)
	}
	return out
}

// Board remplit un plateau complet, colonne par colonne.
func (g *Generator) Board(upgradeActive bool) Board {
	var b Board
	for c := 0; c < BoardSize; c++ {
		b.SetColumn(c, g.Column(upgradeActive))
	}
	return b
}

// UpgradeBoard transforme toutes les cases +1 du plateau en +2.
func UpgradeBoard(b *Board) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c] == PlusOne {
				b[r][c] = PlusTwo
				n++
			}
		}
	}
	return n
}
