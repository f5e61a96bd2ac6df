package game

// ColumnDelta calcule les variations de score produites par la prise d'une
// colonne : le preneur gagne 1 par +1 et 2 par +2, l'adversaire perd 1 par -1.
func ColumnDelta(cells [BoardSize]CellValue) (mover, opponent int) {
	for _, v := range cells {
		switch v {
		case PlusOne:
			mover++
		case PlusTwo:
			mover += 2
		case MinusOne:
			opponent--
		}
	}
	return mover, opponent
}

// applyDelta crédite le preneur et débite son adversaire.
func applyDelta(s *GameState, mover Player, moverDelta, opponentDelta int) {
	if mover == PlayerA {
		s.ScoreA += moverDelta
		s.ScoreB += opponentDelta
	} else {
		s.ScoreB += moverDelta
		s.ScoreA += opponentDelta
	}
}

// ScoreColumn applique au score cumulé le contenu actuel de la colonne col,
// vu par le camp mover. Le score n'est jamais recalculé globalement.
func ScoreColumn(s *GameState, col int, mover Player) {
	m, o := ColumnDelta(s.Board.Column(col))
	applyDelta(s, mover, m, o)
}

// ColumnValue est l'évaluation d'une colonne du point de vue du preneur :
// +1, +2 et -1 pour chaque case correspondante.
func ColumnValue(cells [BoardSize]CellValue) int {
	v := 0
	for _, c := range cells {
		v += int(c)
	}
	return v
}

// RecomputeScores recalcule les scores à partir du contenu actuel des colonnes
// possédées. Ce n'est qu'un diagnostic : le contenu a été régénéré depuis la
// prise, donc le résultat diverge du score incrémental, qui fait foi.
func RecomputeScores(s *GameState) (a, b int) {
	for c, o := range s.Columns {
		var owner Player
		switch o {
		case CapturedByA:
			owner = PlayerA
		case CapturedByB:
			owner = PlayerB
		default:
			continue
		}
		m, opp := ColumnDelta(s.Board.Column(c))
		if owner == PlayerA {
			a += m
			b += opp
		} else {
			b += m
			a += opp
		}
	}
	return a, b
}
