package pick

// Grade computes the result of a pick from the picked team's score, the
// opponent's score and the frozen spread, if any. The spread is signed from
// the picked team's own perspective: negative means the team is favored and
// gives points. Pure and total; every input combination maps to exactly one
// result.
func Grade(spread *float64, teamScore, opponentScore int) Result {
	if spread != nil {
		adjusted := float64(teamScore) + *spread
		switch {
		case adjusted > float64(opponentScore):
			return ResultWin
		case adjusted < float64(opponentScore):
			return ResultLoss
		default:
			return ResultPush
		}
	}

	switch {
	case teamScore > opponentScore:
		return ResultWin
	case teamScore < opponentScore:
		return ResultLoss
	default:
		return ResultPush
	}
}
