package holdem

// Contender is one player's evaluated hand at showdown
type Contender struct {
	PlayerID   string
	Evaluation HandEvaluation
}

// DetermineWinners returns the ids of every contender holding the strongest
// hand, in input order. A stronger hand replaces the current winners and an
// equal one joins them, so any number of players can split.
func DetermineWinners(contenders []Contender) []string {
	if len(contenders) == 0 {
		return nil
	}

	best := contenders[0].Evaluation
	winners := []string{contenders[0].PlayerID}

	for _, c := range contenders[1:] {
		switch Compare(c.Evaluation, best) {
		case 1:
			best = c.Evaluation
			winners = []string{c.PlayerID}
		case 0:
			winners = append(winners, c.PlayerID)
		}
	}

	return winners
}
