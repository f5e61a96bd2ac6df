package game

// Winner retourne le camp ayant le plus haut score, ou PlayerTie à égalité.
func Winner(scoreA, scoreB int) Player {
	switch {
	case scoreA > scoreB:
		return PlayerA
	case scoreB > scoreA:
		return PlayerB
	}
	return PlayerTie
}
