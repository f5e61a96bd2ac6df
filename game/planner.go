package game

// NoMove est retourné quand aucune colonne n'est jouable.
const NoMove = -1

// SelectColumn choisit la colonne que le camp side doit prendre.
//
// S'il ne reste qu'une colonne libre et que side mène strictement, il la
// prend pour verrouiller la victoire. Sinon, parmi les colonnes légales, il
// préfère le moins de cases vides, puis la meilleure valeur de colonne ; la
// première colonne rencontrée l'emporte en cas d'égalité complète.
func SelectColumn(s *GameState, side Player) int {
	if s.Unclaimed() == 1 && s.Score(side) > s.Score(side.Other()) {
		for c, o := range s.Columns {
			if o == Unclaimed {
				return c
			}
		}
	}

	best := NoMove
	bestBlanks := BoardSize + 1
	bestValue := 0
	for c := 0; c < BoardSize; c++ {
		if !s.CanCapture(side, c) {
			continue
		}
		cells := s.Board.Column(c)
		blanks := 0
		for _, v := range cells {
			if v == Blank {
				blanks++
			}
		}
		value := ColumnValue(cells)
		if blanks < bestBlanks || (blanks == bestBlanks && value > bestValue) {
			best, bestBlanks, bestValue = c, blanks, value
		}
	}
	return best
}
